package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gogas/gogas-backend/internal/authz"
	"github.com/gogas/gogas-backend/internal/data/repos"
	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
	"github.com/gogas/gogas-backend/internal/pricing"
)

type CreateStationInput struct {
	Name        string
	Address     string
	LatLng      float64
	StationType string
	PumpHours   string
}

// PriceWithUser and ReviewWithUser annotate sub-entries with their author
// for station detail reads. The credential field is excluded by the User
// json tags.
type PriceWithUser struct {
	types.Price
	User *types.User `json:"user,omitempty"`
}

type ReviewWithUser struct {
	types.Review
	User *types.User `json:"user,omitempty"`
}

type StationDetail struct {
	types.Station
	Prices  []PriceWithUser  `json:"prices"`
	Reviews []ReviewWithUser `json:"reviews"`
}

// PostPriceResult distinguishes an accepted append from a plausibility
// rejection. Rejection is a normal outcome: Station carries the unchanged
// aggregate so the caller can redisplay the bounds.
type PostPriceResult struct {
	Decision pricing.Decision `json:"decision"`
	Price    *types.Price     `json:"price,omitempty"`
	Station  *types.Station   `json:"station,omitempty"`
}

// StationService orchestrates the station aggregate: it consults the
// authorization policy before every mutation and the price validator before
// every price append.
type StationService interface {
	Create(ctx context.Context, in CreateStationInput) (*types.Station, error)
	List(ctx context.Context) ([]*types.Station, error)
	Get(ctx context.Context, stationID uuid.UUID) (*StationDetail, error)
	Delete(ctx context.Context, stationID uuid.UUID) (*types.Station, error)
	PostPrice(ctx context.Context, stationID uuid.UUID, rawPrice float64) (*PostPriceResult, error)
	PostReview(ctx context.Context, stationID uuid.UUID, rating int, comment string) (*types.Review, error)
	DeleteReview(ctx context.Context, stationID, reviewID uuid.UUID) (*types.Review, error)
}

type stationService struct {
	db          *gorm.DB
	log         *logger.Logger
	stationRepo repos.StationRepo
	priceRepo   repos.PriceRepo
	reviewRepo  repos.ReviewRepo
	userRepo    repos.UserRepo
}

func NewStationService(db *gorm.DB, log *logger.Logger, stationRepo repos.StationRepo, priceRepo repos.PriceRepo, reviewRepo repos.ReviewRepo, userRepo repos.UserRepo) StationService {
	serviceLog := log.With("service", "StationService")
	return &stationService{
		db:          db,
		log:         serviceLog,
		stationRepo: stationRepo,
		priceRepo:   priceRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
	}
}

func (ss *stationService) Create(ctx context.Context, in CreateStationInput) (*types.Station, error) {
	if err := authz.Decide(callerFrom(ctx), authz.ActionCreateStation, authz.Target{}); err != nil {
		return nil, err
	}
	station := &types.Station{
		Name:        in.Name,
		Address:     in.Address,
		LatLng:      in.LatLng,
		StationType: in.StationType,
		PumpHours:   in.PumpHours,
	}
	return ss.stationRepo.Create(ctx, nil, station)
}

func (ss *stationService) List(ctx context.Context) ([]*types.Station, error) {
	return ss.stationRepo.List(ctx, nil)
}

func (ss *stationService) Get(ctx context.Context, stationID uuid.UUID) (*StationDetail, error) {
	station, err := ss.stationRepo.GetByID(ctx, nil, stationID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(station.Prices)+len(station.Reviews))
	seen := map[uuid.UUID]struct{}{}
	for _, p := range station.Prices {
		if _, ok := seen[p.UserID]; !ok {
			seen[p.UserID] = struct{}{}
			userIDs = append(userIDs, p.UserID)
		}
	}
	for _, r := range station.Reviews {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			userIDs = append(userIDs, r.UserID)
		}
	}

	users, err := ss.userRepo.GetByIDs(ctx, nil, userIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	detail := &StationDetail{Station: *station}
	for _, p := range station.Prices {
		detail.Prices = append(detail.Prices, PriceWithUser{Price: p, User: byID[p.UserID]})
	}
	for _, r := range station.Reviews {
		detail.Reviews = append(detail.Reviews, ReviewWithUser{Review: r, User: byID[r.UserID]})
	}
	return detail, nil
}

func (ss *stationService) Delete(ctx context.Context, stationID uuid.UUID) (*types.Station, error) {
	if err := authz.Decide(callerFrom(ctx), authz.ActionDeleteStation, authz.Target{}); err != nil {
		return nil, err
	}
	var deleted *types.Station
	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, dErr := ss.stationRepo.Delete(ctx, tx, stationID)
		if dErr != nil {
			return dErr
		}
		deleted = d
		return nil
	}); err != nil {
		return nil, err
	}
	return deleted, nil
}

func (ss *stationService) PostPrice(ctx context.Context, stationID uuid.UUID, rawPrice float64) (*PostPriceResult, error) {
	caller := callerFrom(ctx)
	if err := authz.Decide(caller, authz.ActionCreatePrice, authz.Target{}); err != nil {
		return nil, err
	}

	station, err := ss.stationRepo.GetByID(ctx, nil, stationID)
	if err != nil {
		return nil, err
	}

	var current *float64
	if n := len(station.Prices); n > 0 {
		current = &station.Prices[n-1].Value
	}
	decision := pricing.Evaluate(current, rawPrice)
	if !decision.Accepted {
		ss.log.Debug("Price rejected by plausibility check",
			"station_id", stationID.String(),
			"proposed", decision.Value,
			"lower", decision.LowerBound,
			"upper", decision.UpperBound,
		)
		return &PostPriceResult{Decision: decision, Station: station}, nil
	}

	// Append is a single insert; concurrent posts on the same station both
	// land without touching the parent row.
	price, err := ss.priceRepo.Append(ctx, nil, stationID, caller.ID, decision.Value)
	if err != nil {
		return nil, err
	}
	return &PostPriceResult{Decision: decision, Price: price}, nil
}

func (ss *stationService) PostReview(ctx context.Context, stationID uuid.UUID, rating int, comment string) (*types.Review, error) {
	caller := callerFrom(ctx)
	if err := authz.Decide(caller, authz.ActionCreateReview, authz.Target{}); err != nil {
		return nil, err
	}
	if _, err := ss.stationRepo.GetByID(ctx, nil, stationID); err != nil {
		return nil, err
	}
	return ss.reviewRepo.Append(ctx, nil, stationID, caller.ID, rating, comment)
}

func (ss *stationService) DeleteReview(ctx context.Context, stationID, reviewID uuid.UUID) (*types.Review, error) {
	// Locate first so a missing review is NotFound, then authorize against
	// the review's owner.
	review, err := ss.reviewRepo.GetByID(ctx, nil, stationID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(callerFrom(ctx), authz.ActionDeleteReview, authz.Target{ReviewOwnerID: review.UserID}); err != nil {
		return nil, err
	}
	return ss.reviewRepo.Delete(ctx, nil, stationID, reviewID)
}
