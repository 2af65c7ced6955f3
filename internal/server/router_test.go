package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gogas/gogas-backend/internal/data/repos"
	"github.com/gogas/gogas-backend/internal/data/repos/testutil"
	"github.com/gogas/gogas-backend/internal/http/handlers"
	"github.com/gogas/gogas-backend/internal/http/middleware"
	"github.com/gogas/gogas-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	tokenRepo := repos.NewUserTokenRepo(db, log)
	favoriteRepo := repos.NewFavoriteRepo(db, log)
	stationRepo := repos.NewStationRepo(db, log)
	priceRepo := repos.NewPriceRepo(db, log)
	reviewRepo := repos.NewReviewRepo(db, log)

	authService := services.NewAuthService(db, log, userRepo, tokenRepo, nil, "router-test-secret", time.Hour, 24*time.Hour)
	stationService := services.NewStationService(db, log, stationRepo, priceRepo, reviewRepo, userRepo)
	userService := services.NewUserService(db, log, userRepo, tokenRepo, favoriteRepo, reviewRepo)
	favoriteService := services.NewFavoriteService(db, log, userRepo, stationRepo, favoriteRepo)
	favoriteSync := services.NewFavoriteSyncService(log, favoriteRepo, stationRepo, time.Second)

	return NewRouter(RouterConfig{
		Log:             log,
		AuthMiddleware:  middleware.NewAuthMiddleware(log, authService),
		AuthHandler:     handlers.NewAuthHandler(authService, favoriteSync),
		StationHandler:  handlers.NewStationHandler(stationService),
		UserHandler:     handlers.NewUserHandler(userService),
		FavoriteHandler: handlers.NewFavoriteHandler(favoriteService),
		HealthHandler:   handlers.NewHealthHandler(db),
	})
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterPublicEndpoints(t *testing.T) {
	router := newTestRouter(t)

	if rec := do(t, router, http.MethodGet, "/healthcheck", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("GET /healthcheck: status=%d body=%s", rec.Code, rec.Body.String())
	}
	if rec := do(t, router, http.MethodGet, "/stations", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("GET /stations: status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouterProtectedRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method, path string
	}{
		{http.MethodPost, "/station"},
		{http.MethodPost, "/price"},
		{http.MethodPost, "/review"},
		{http.MethodGet, "/users"},
		{http.MethodDelete, "/logout"},
	}
	for _, p := range paths {
		rec := do(t, router, p.method, p.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: status=%d, want 401", p.method, p.path, rec.Code)
		}
	}

	rec := do(t, router, http.MethodGet, "/users", "garbage-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("GET /users with bad token: status=%d, want 401", rec.Code)
	}
}

func TestRouterRegisterLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	username := fmt.Sprintf("flow-%d@example.com", time.Now().UnixNano())
	rec := do(t, router, http.MethodPost, "/user", "", gin.H{
		"username": username,
		"password": "hunter22",
		"name":     "Flow User",
		"zip":      "20095",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /user: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/session", "", gin.H{
		"username": username,
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("POST /session with wrong password: status=%d, want 401", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/session", "", gin.H{
		"username": username,
		"password": "hunter22",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /session: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var session struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil || session.AccessToken == "" {
		t.Fatalf("POST /session: no access token in %s", rec.Body.String())
	}

	// Authenticated but not admin: station creation is forbidden, not
	// unauthorized.
	rec = do(t, router, http.MethodPost, "/station", session.AccessToken, gin.H{
		"name":         "Forbidden Station",
		"address":      "Nope 1",
		"lat_lng":      50.94,
		"station_type": "full",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("POST /station as member: status=%d, want 403", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/session", session.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /session: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodDelete, "/logout", session.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE /logout: status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = do(t, router, http.MethodGet, "/session", session.AccessToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("GET /session after logout: status=%d, want 401", rec.Code)
	}
}

func login(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/session", "", gin.H{
		"username": username,
		"password": "pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /session for %s: status=%d body=%s", username, rec.Code, rec.Body.String())
	}
	var session struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil || session.AccessToken == "" {
		t.Fatalf("POST /session: no access token in %s", rec.Body.String())
	}
	return session.AccessToken
}

func TestRouterZeroValuesBindAsPresent(t *testing.T) {
	router := newTestRouter(t)
	db := testutil.DB(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, ctx, db, true)
	adminToken := login(t, router, admin.Username)

	// A station on the equator/prime meridian is a valid create, not a
	// missing field.
	rec := do(t, router, http.MethodPost, "/station", adminToken, gin.H{
		"name":         "Null Island Fuels",
		"address":      "0 Meridian Way",
		"lat_lng":      0,
		"station_type": "full",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /station with lat_lng 0: status=%d body=%s", rec.Code, rec.Body.String())
	}

	member := testutil.SeedUser(t, ctx, db, false)
	memberToken := login(t, router, member.Username)
	st := testutil.SeedStation(t, ctx, db, "Free Fuel Station")

	// A first price of 0 is non-negative and must reach the plausibility
	// check, which accepts it.
	rec = do(t, router, http.MethodPost, "/price", memberToken, gin.H{
		"station_id": st.ID,
		"price":      0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /price with first price 0: status=%d body=%s", rec.Code, rec.Body.String())
	}

	// Omitting the price entirely is still malformed.
	rec = do(t, router, http.MethodPost, "/price", memberToken, gin.H{
		"station_id": st.ID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST /price without price: status=%d, want 400", rec.Code)
	}
}

func TestRouterFavoriteAddReturnsUpdatedUser(t *testing.T) {
	router := newTestRouter(t)
	db := testutil.DB(t)
	ctx := context.Background()

	member := testutil.SeedUser(t, ctx, db, false)
	token := login(t, router, member.Username)
	st := testutil.SeedStation(t, ctx, db, "Favorite Flow Station")

	path := fmt.Sprintf("/user/%s/favorites/%s", member.ID, st.ID)
	rec := do(t, router, http.MethodPost, path, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST %s: status=%d body=%s, want 200 + updated user", path, rec.Code, rec.Body.String())
	}
	var updated struct {
		Favorites []struct {
			StationName string `json:"station_name"`
		} `json:"favorites"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated user: %v", err)
	}
	if len(updated.Favorites) != 1 || updated.Favorites[0].StationName != st.Name {
		t.Fatalf("POST %s: body must carry the updated favorites list, got %s", path, rec.Body.String())
	}
}

func TestRouterMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/user", "", gin.H{"username": "incomplete@example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST /user with missing fields: status=%d, want 400", rec.Code)
	}
}
