package repos

import (
	"gorm.io/gorm"

	"github.com/gogas/gogas-backend/internal/data/repos/station"
	"github.com/gogas/gogas-backend/internal/data/repos/user"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = user.UserTokenRepo
type FavoriteRepo = user.FavoriteRepo

type StationRepo = station.StationRepo
type PriceRepo = station.PriceRepo
type ReviewRepo = station.ReviewRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }
func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return user.NewUserTokenRepo(db, log)
}
func NewFavoriteRepo(db *gorm.DB, log *logger.Logger) FavoriteRepo {
	return user.NewFavoriteRepo(db, log)
}
func NewStationRepo(db *gorm.DB, log *logger.Logger) StationRepo {
	return station.NewStationRepo(db, log)
}
func NewPriceRepo(db *gorm.DB, log *logger.Logger) PriceRepo { return station.NewPriceRepo(db, log) }
func NewReviewRepo(db *gorm.DB, log *logger.Logger) ReviewRepo {
	return station.NewReviewRepo(db, log)
}
