package app

import (
	"gorm.io/gorm"

	"github.com/gogas/gogas-backend/internal/data/repos"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Favorite  repos.FavoriteRepo
	Station   repos.StationRepo
	Price     repos.PriceRepo
	Review    repos.ReviewRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Favorite:  repos.NewFavoriteRepo(db, log),
		Station:   repos.NewStationRepo(db, log),
		Price:     repos.NewPriceRepo(db, log),
		Review:    repos.NewReviewRepo(db, log),
	}
}
