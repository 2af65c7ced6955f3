package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/gogas/gogas-backend/internal/data/repos"
	"github.com/gogas/gogas-backend/internal/data/repos/testutil"
	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/pkg/ctxutil"
)

type testEnv struct {
	db *gorm.DB

	userRepo     repos.UserRepo
	tokenRepo    repos.UserTokenRepo
	favoriteRepo repos.FavoriteRepo
	stationRepo  repos.StationRepo
	priceRepo    repos.PriceRepo
	reviewRepo   repos.ReviewRepo

	auth     AuthService
	station  StationService
	user     UserService
	favorite FavoriteService
	sync     FavoriteSyncService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:           db,
		userRepo:     repos.NewUserRepo(db, log),
		tokenRepo:    repos.NewUserTokenRepo(db, log),
		favoriteRepo: repos.NewFavoriteRepo(db, log),
		stationRepo:  repos.NewStationRepo(db, log),
		priceRepo:    repos.NewPriceRepo(db, log),
		reviewRepo:   repos.NewReviewRepo(db, log),
	}
	env.auth = NewAuthService(db, log, env.userRepo, env.tokenRepo, nil, "test-secret", time.Hour, 24*time.Hour)
	env.station = NewStationService(db, log, env.stationRepo, env.priceRepo, env.reviewRepo, env.userRepo)
	env.user = NewUserService(db, log, env.userRepo, env.tokenRepo, env.favoriteRepo, env.reviewRepo)
	env.favorite = NewFavoriteService(db, log, env.userRepo, env.stationRepo, env.favoriteRepo)
	env.sync = NewFavoriteSyncService(log, env.favoriteRepo, env.stationRepo, 10*time.Millisecond)
	return env
}

// ctxFor builds a request context as the session layer would after resolving
// a token for the given user.
func ctxFor(u *types.User) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		UserID: u.ID,
		Admin:  u.Admin,
	})
}
