package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gogas/gogas-backend/internal/data/repos"
	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/pkg/ctxutil"
	"github.com/gogas/gogas-backend/internal/pkg/errs"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

// FavoriteService manages a user's favorite stations. Favoriting is
// self-service: the caller may only touch their own list, enforced here at
// the boundary rather than in the policy table.
type FavoriteService interface {
	Add(ctx context.Context, userID, stationID uuid.UUID) (*types.User, error)
	Remove(ctx context.Context, userID, stationID uuid.UUID) (*types.User, error)
}

type favoriteService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	stationRepo  repos.StationRepo
	favoriteRepo repos.FavoriteRepo
}

func NewFavoriteService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, stationRepo repos.StationRepo, favoriteRepo repos.FavoriteRepo) FavoriteService {
	serviceLog := log.With("service", "FavoriteService")
	return &favoriteService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		stationRepo:  stationRepo,
		favoriteRepo: favoriteRepo,
	}
}

func (fs *favoriteService) checkSelf(ctx context.Context, userID uuid.UUID) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return errs.ErrUnauthorized
	}
	if rd.UserID != userID {
		return errs.ErrForbidden
	}
	return nil
}

func (fs *favoriteService) Add(ctx context.Context, userID, stationID uuid.UUID) (*types.User, error) {
	if err := fs.checkSelf(ctx, userID); err != nil {
		return nil, err
	}

	if err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, uErr := fs.userRepo.GetByID(ctx, tx, userID); uErr != nil {
			return uErr
		}
		station, sErr := fs.stationRepo.GetByID(ctx, tx, stationID)
		if sErr != nil {
			return sErr
		}
		exists, eErr := fs.favoriteRepo.Exists(ctx, tx, userID, stationID)
		if eErr != nil {
			return eErr
		}
		if exists {
			return fmt.Errorf("station already in favorites: %w", errs.ErrConflict)
		}

		prices, reviews, mErr := snapshotJSON(station)
		if mErr != nil {
			return mErr
		}
		_, aErr := fs.favoriteRepo.Add(ctx, tx, &types.Favorite{
			UserID:         userID,
			StationID:      stationID,
			StationName:    station.Name,
			StationAddress: station.Address,
			StationPrices:  prices,
			StationReviews: reviews,
		})
		return aErr
	}); err != nil {
		return nil, err
	}
	return fs.userRepo.GetByID(ctx, nil, userID)
}

func (fs *favoriteService) Remove(ctx context.Context, userID, stationID uuid.UUID) (*types.User, error) {
	if err := fs.checkSelf(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := fs.userRepo.GetByID(ctx, nil, userID); err != nil {
		return nil, err
	}
	if _, err := fs.stationRepo.GetByID(ctx, nil, stationID); err != nil {
		return nil, err
	}
	if err := fs.favoriteRepo.RemoveByStation(ctx, nil, userID, stationID); err != nil {
		return nil, err
	}
	return fs.userRepo.GetByID(ctx, nil, userID)
}

// snapshotJSON serializes the station's price and review history for the
// denormalized favorite columns.
func snapshotJSON(station *types.Station) (datatypes.JSON, datatypes.JSON, error) {
	prices, err := json.Marshal(station.Prices)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal price snapshot: %w", err)
	}
	reviews, err := json.Marshal(station.Reviews)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal review snapshot: %w", err)
	}
	return datatypes.JSON(prices), datatypes.JSON(reviews), nil
}
