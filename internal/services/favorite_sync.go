package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gogas/gogas-backend/internal/data/repos"
	"github.com/gogas/gogas-backend/internal/pkg/errs"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

// FavoriteSyncService keeps favorite snapshots reasonably fresh by polling
// the station store on a fixed cadence, one background task per active
// session. It is pull-based and best-effort: no transactional link ties a
// snapshot to any particular price append, and the staleness window is about
// one interval.
type FavoriteSyncService interface {
	// Start sets the root context new session tasks hang off. Cancelling
	// it stops every running task.
	Start(ctx context.Context)
	// Track registers one more live session for the user and starts the
	// refresh task if it is the user's first.
	Track(userID uuid.UUID)
	// Untrack drops one session. The refresh task keeps running until the
	// user's last session is gone, so logging out on one device does not
	// stop syncing for the others.
	Untrack(userID uuid.UUID)
	// RunCycle performs one refresh pass for the user.
	RunCycle(ctx context.Context, userID uuid.UUID) error
}

type favoriteSyncService struct {
	log          *logger.Logger
	favoriteRepo repos.FavoriteRepo
	stationRepo  repos.StationRepo
	interval     time.Duration

	mu       sync.Mutex
	root     context.Context
	sessions map[uuid.UUID]*syncSession
}

// syncSession counts a user's live sessions sharing one refresh task.
type syncSession struct {
	cancel context.CancelFunc
	refs   int
}

func NewFavoriteSyncService(log *logger.Logger, favoriteRepo repos.FavoriteRepo, stationRepo repos.StationRepo, interval time.Duration) FavoriteSyncService {
	serviceLog := log.With("service", "FavoriteSyncService")
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &favoriteSyncService{
		log:          serviceLog,
		favoriteRepo: favoriteRepo,
		stationRepo:  stationRepo,
		interval:     interval,
		sessions:     make(map[uuid.UUID]*syncSession),
	}
}

func (fss *favoriteSyncService) Start(ctx context.Context) {
	fss.mu.Lock()
	defer fss.mu.Unlock()
	fss.root = ctx
}

func (fss *favoriteSyncService) Track(userID uuid.UUID) {
	fss.mu.Lock()
	defer fss.mu.Unlock()
	if session, running := fss.sessions[userID]; running {
		session.refs++
		return
	}
	root := fss.root
	if root == nil {
		root = context.Background()
	}
	ctx, cancel := context.WithCancel(root)
	fss.sessions[userID] = &syncSession{cancel: cancel, refs: 1}
	go fss.run(ctx, userID)
}

func (fss *favoriteSyncService) Untrack(userID uuid.UUID) {
	fss.mu.Lock()
	defer fss.mu.Unlock()
	session, running := fss.sessions[userID]
	if !running {
		return
	}
	session.refs--
	if session.refs > 0 {
		return
	}
	session.cancel()
	delete(fss.sessions, userID)
}

func (fss *favoriteSyncService) run(ctx context.Context, userID uuid.UUID) {
	ticker := time.NewTicker(fss.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fss.RunCycle(ctx, userID); err != nil {
				fss.log.Warn("Favorite sync cycle failed", "user_id", userID.String(), "error", err)
			}
		}
	}
}

func (fss *favoriteSyncService) RunCycle(ctx context.Context, userID uuid.UUID) error {
	favorites, err := fss.favoriteRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, fav := range favorites {
		g.Go(func() error {
			station, sErr := fss.stationRepo.GetByID(gctx, nil, fav.StationID)
			if errors.Is(sErr, errs.ErrNotFound) {
				// Raced with a station delete: leave the stale snapshot
				// untouched and let a later lookup failure prune it.
				return nil
			}
			if sErr != nil {
				fss.log.Warn("Favorite sync could not load station", "station_id", fav.StationID.String(), "error", sErr)
				return nil
			}
			prices, reviews, mErr := snapshotJSON(station)
			if mErr != nil {
				return mErr
			}
			return fss.favoriteRepo.UpdateSnapshot(gctx, nil, fav.ID, prices, reviews)
		})
	}
	return g.Wait()
}
