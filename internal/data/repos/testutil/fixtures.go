package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/gogas/gogas-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, admin bool) *types.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &types.User{
		ID:       uuid.New(),
		Username: fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		Password: string(hash),
		Name:     "Test User",
		Zip:      "10115",
		Admin:    admin,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedStation(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Station {
	tb.Helper()
	s := &types.Station{
		ID:          uuid.New(),
		Name:        name,
		Address:     "1 Main St",
		LatLng:      52.52,
		StationType: "full",
		PumpHours:   "24/7",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed station: %v", err)
	}
	return s
}

func SeedPrice(tb testing.TB, ctx context.Context, tx *gorm.DB, stationID, userID uuid.UUID, value float64) *types.Price {
	tb.Helper()
	p := &types.Price{
		ID:        uuid.New(),
		StationID: stationID,
		UserID:    userID,
		Value:     value,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed price: %v", err)
	}
	return p
}

func SeedReview(tb testing.TB, ctx context.Context, tx *gorm.DB, stationID, userID uuid.UUID, rating int, comment string) *types.Review {
	tb.Helper()
	r := &types.Review{
		ID:        uuid.New(),
		StationID: stationID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed review: %v", err)
	}
	return r
}
