package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gogas/gogas-backend/internal/authz"
	"github.com/gogas/gogas-backend/internal/data/repos"
	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/pkg/errs"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type UserService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	// Delete removes the user and, first, every review the user authored
	// across all stations. Reviews go first: they reference a user id that
	// must stay resolvable until they are gone.
	Delete(ctx context.Context, userID uuid.UUID) (*types.User, error)
	SetAdmin(ctx context.Context, userID uuid.UUID, admin bool) (*types.User, error)
}

type userService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	tokenRepo    repos.UserTokenRepo
	favoriteRepo repos.FavoriteRepo
	reviewRepo   repos.ReviewRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, tokenRepo repos.UserTokenRepo, favoriteRepo repos.FavoriteRepo, reviewRepo repos.ReviewRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		favoriteRepo: favoriteRepo,
		reviewRepo:   reviewRepo,
	}
}

func (us *userService) Get(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return us.userRepo.GetByID(ctx, nil, userID)
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	if err := authz.Decide(callerFrom(ctx), authz.ActionListUsers, authz.Target{}); err != nil {
		return nil, err
	}
	return us.userRepo.List(ctx, nil)
}

func (us *userService) Delete(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	if err := authz.Decide(callerFrom(ctx), authz.ActionDeleteUser, authz.Target{}); err != nil {
		return nil, err
	}

	var deleted *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		theUser, uErr := us.userRepo.GetByID(ctx, tx, userID)
		if uErr != nil {
			return uErr
		}

		removed, rErr := us.reviewRepo.DeleteByUser(ctx, tx, userID)
		if rErr != nil {
			// Review removal failed: the user delete must not proceed.
			return rErr
		}
		if fErr := us.favoriteRepo.DeleteByUser(ctx, tx, userID); fErr != nil {
			return fmt.Errorf("removed %d reviews, favorite cleanup failed: %w (%v)", removed, errs.ErrPartialCascade, fErr)
		}
		if tErr := us.tokenRepo.DeleteByUser(ctx, tx, userID); tErr != nil {
			return fmt.Errorf("removed %d reviews, token cleanup failed: %w (%v)", removed, errs.ErrPartialCascade, tErr)
		}
		if dErr := us.userRepo.Delete(ctx, tx, userID); dErr != nil {
			return fmt.Errorf("removed %d reviews, user delete failed: %w (%v)", removed, errs.ErrPartialCascade, dErr)
		}
		us.log.Info("Deleted user with cascading review removal", "user_id", userID.String(), "reviews_removed", removed)
		deleted = theUser
		return nil
	}); err != nil {
		return nil, err
	}
	return deleted, nil
}

func (us *userService) SetAdmin(ctx context.Context, userID uuid.UUID, admin bool) (*types.User, error) {
	action := authz.ActionGrantAdmin
	if !admin {
		action = authz.ActionRevokeAdmin
	}
	if err := authz.Decide(callerFrom(ctx), action, authz.Target{}); err != nil {
		return nil, err
	}
	if err := us.userRepo.SetAdmin(ctx, nil, userID, admin); err != nil {
		return nil, err
	}
	return us.userRepo.GetByID(ctx, nil, userID)
}
