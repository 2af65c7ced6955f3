package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/pkg/errs"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type FavoriteRepo interface {
	Add(ctx context.Context, tx *gorm.DB, favorite *types.Favorite) (*types.Favorite, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, stationID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Favorite, error)
	RemoveByStation(ctx context.Context, tx *gorm.DB, userID, stationID uuid.UUID) error
	// UpdateSnapshot overwrites only the price/review snapshot fields.
	// Name and address are identity fields and are never re-copied.
	UpdateSnapshot(ctx context.Context, tx *gorm.DB, favoriteID uuid.UUID, prices, reviews datatypes.JSON) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	repoLog := baseLog.With("repo", "FavoriteRepo")
	return &favoriteRepo{db: db, log: repoLog}
}

func (fr *favoriteRepo) Add(ctx context.Context, tx *gorm.DB, favorite *types.Favorite) (*types.Favorite, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("station already in favorites: %w", errs.ErrConflict)
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return favorite, nil
}

func (fr *favoriteRepo) Exists(ctx context.Context, tx *gorm.DB, userID, stationID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("user_id = ? AND station_id = ?", userID, stationID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return count > 0, nil
}

func (fr *favoriteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Favorite, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.Favorite
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return results, nil
}

func (fr *favoriteRepo) RemoveByStation(ctx context.Context, tx *gorm.DB, userID, stationID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND station_id = ?", userID, stationID).
		Delete(&types.Favorite{}).Error; err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}

func (fr *favoriteRepo) UpdateSnapshot(ctx context.Context, tx *gorm.DB, favoriteID uuid.UUID, prices, reviews datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("id = ?", favoriteID).
		Updates(map[string]any{
			"station_prices":  prices,
			"station_reviews": reviews,
		}).Error; err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}

func (fr *favoriteRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Favorite{}).Error; err != nil {
		return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}
