// Package station is the station aggregate store. The aggregate owns its
// price and review rows; appends are plain INSERTs so two concurrent appends
// on the same station both land, with no read-modify-write of the parent.
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

type StationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, station *types.Station) (*types.Station, error)
	GetByID(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) (*types.Station, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Station, error)
	Delete(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) (*types.Station, error)
}

type stationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStationRepo(db *gorm.DB, baseLog *logger.Logger) StationRepo {
	repoLog := baseLog.With("repo", "StationRepo")
	return &stationRepo{db: db, log: repoLog}
}

func (sr *stationRepo) Create(ctx context.Context, tx *gorm.DB, station *types.Station) (*types.Station, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if station.ID == uuid.Nil {
		station.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(station).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return station, nil
}

func (sr *stationRepo) GetByID(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) (*types.Station, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.Station
	err := transaction.WithContext(ctx).
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&result, "id = ?", stationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return &result, nil
}

func (sr *stationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Station, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Station
	if err := transaction.WithContext(ctx).
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return results, nil
}

func (sr *stationRepo) Delete(ctx context.Context, tx *gorm.DB, stationID uuid.UUID) (*types.Station, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	deleted, err := sr.GetByID(ctx, transaction, stationID)
	if err != nil {
		return nil, err
	}

	// Sub-entries go first so the delete also holds on stores without the
	// FK cascade (the sqlite test store).
	if err := transaction.WithContext(ctx).Where("station_id = ?", stationID).Delete(&types.Price{}).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	if err := transaction.WithContext(ctx).Where("station_id = ?", stationID).Delete(&types.Review{}).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	if err := transaction.WithContext(ctx).Delete(&types.Station{}, "id = ?", stationID).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return deleted, nil
}
