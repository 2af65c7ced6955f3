package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogas/gogas-backend/internal/data/repos/testutil"
	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/pkg/errs"
)

func TestUserTokenRepoLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, false)

	created, err := repo.Create(ctx, tx, &types.UserToken{
		UserID:       u.ID,
		AccessToken:  "access-abc",
		RefreshToken: "refresh-abc",
		ExpiresAt:    time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	byAccess, err := repo.GetByAccessToken(ctx, tx, "access-abc")
	if err != nil || byAccess.ID != created.ID {
		t.Fatalf("GetByAccessToken: err=%v", err)
	}
	byRefresh, err := repo.GetByRefreshToken(ctx, tx, "refresh-abc")
	if err != nil || byRefresh.ID != created.ID {
		t.Fatalf("GetByRefreshToken: err=%v", err)
	}

	if err := repo.Delete(ctx, tx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByAccessToken(ctx, tx, "access-abc"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("GetByAccessToken after delete: got %v, want ErrNotFound", err)
	}
}

func TestUserTokenRepoDeleteByUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, false)
	for _, suffix := range []string{"one", "two"} {
		if _, err := repo.Create(ctx, tx, &types.UserToken{
			UserID:       u.ID,
			AccessToken:  "access-" + suffix,
			RefreshToken: "refresh-" + suffix,
			ExpiresAt:    time.Now().Add(time.Hour),
		}); err != nil {
			t.Fatalf("Create(%s): %v", suffix, err)
		}
	}

	if err := repo.DeleteByUser(ctx, tx, u.ID); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}
	if _, err := repo.GetByAccessToken(ctx, tx, "access-one"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("GetByAccessToken after DeleteByUser: got %v, want ErrNotFound", err)
	}
}
