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

type PriceRepo interface {
	// Append inserts a new price row. The store assigns the id; callers
	// never choose sub-entry identities.
	Append(ctx context.Context, tx *gorm.DB, stationID, userID uuid.UUID, value float64) (*types.Price, error)
	// Current returns the last price by append order, or nil when the
	// station has no price history.
	Current(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) (*types.Price, error)
	ListByStation(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) ([]*types.Price, error)
}

type priceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPriceRepo(db *gorm.DB, baseLog *logger.Logger) PriceRepo {
	repoLog := baseLog.With("repo", "PriceRepo")
	return &priceRepo{db: db, log: repoLog}
}

func (pr *priceRepo) Append(ctx context.Context, tx *gorm.DB, stationID, userID uuid.UUID, value float64) (*types.Price, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	price := &types.Price{
		ID:        uuid.New(),
		StationID: stationID,
		UserID:    userID,
		Value:     value,
	}
	if err := transaction.WithContext(ctx).Create(price).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return price, nil
}

func (pr *priceRepo) Current(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) (*types.Price, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Price
	err := transaction.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("created_at DESC, id DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return &result, nil
}

func (pr *priceRepo) ListByStation(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) ([]*types.Price, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Price
	if err := transaction.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return results, nil
}
