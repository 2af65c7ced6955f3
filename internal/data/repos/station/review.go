package station

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/pkg/errs"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type ReviewRepo interface {
	Append(ctx context.Context, tx *gorm.DB, stationID, userID uuid.UUID, rating int, comment string) (*types.Review, error)
	GetByID(ctx context.Context, tx *gorm.DB, stationID, reviewID uuid.UUID) (*types.Review, error)
	// Delete removes one review and returns its prior field values.
	Delete(ctx context.Context, tx *gorm.DB, stationID, reviewID uuid.UUID) (*types.Review, error)
	// DeleteByUser removes the user's reviews across every station. Used
	// only by the cascading user delete.
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	ListByStation(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) ([]*types.Review, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	repoLog := baseLog.With("repo", "ReviewRepo")
	return &reviewRepo{db: db, log: repoLog}
}

func (rr *reviewRepo) Append(ctx context.Context, tx *gorm.DB, stationID, userID uuid.UUID, rating int, comment string) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	review := &types.Review{
		ID:        uuid.New(),
		StationID: stationID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := transaction.WithContext(ctx).Create(review).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return review, nil
}

func (rr *reviewRepo) GetByID(ctx context.Context, tx *gorm.DB, stationID, reviewID uuid.UUID) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Review
	err := transaction.WithContext(ctx).
		Where("station_id = ? AND id = ?", stationID, reviewID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return &result, nil
}

func (rr *reviewRepo) Delete(ctx context.Context, tx *gorm.DB, stationID, reviewID uuid.UUID) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	deleted, err := rr.GetByID(ctx, transaction, stationID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).
		Where("station_id = ? AND id = ?", stationID, reviewID).
		Delete(&types.Review{}).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return deleted, nil
}

func (rr *reviewRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	res := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Review{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, res.Error)
	}
	return res.RowsAffected, nil
}

func (rr *reviewRepo) ListByStation(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return results, nil
}
