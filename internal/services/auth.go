package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	redisclient "github.com/gogas/gogas-backend/internal/clients/redis"
	"github.com/gogas/gogas-backend/internal/data/repos"
	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/pkg/ctxutil"
	"github.com/gogas/gogas-backend/internal/pkg/errs"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

// AuthService is the credential-verification and session collaborator. The
// aggregate services never look at credentials; they trust the RequestData
// this service attaches to the request context.
type AuthService interface {
	Register(ctx context.Context, user *types.User) (*types.User, error)
	Login(ctx context.Context, username, password string) (*types.User, string, string, error)
	Refresh(ctx context.Context) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	tokenRepo    repos.UserTokenRepo
	sessionCache redisclient.SessionCache
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

type jwtClaims struct {
	jwt.RegisteredClaims
}

// sessionCache may be nil; the token table is always authoritative.
func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, tokenRepo repos.UserTokenRepo, sessionCache redisclient.SessionCache, jwtSecretKey string, accessTTL, refreshTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		sessionCache: sessionCache,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, user *types.User) (*types.User, error) {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Name = strings.TrimSpace(user.Name)
	if user.Username == "" || user.Password == "" || user.Name == "" {
		return nil, fmt.Errorf("username, password and name are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)
	user.Admin = false

	var created *types.User
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, cErr := as.userRepo.Create(ctx, tx, user)
		if cErr != nil {
			return cErr
		}
		created = u
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (*types.User, string, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	theUser, err := as.userRepo.GetByUsername(ctx, nil, username)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, "", "", errs.ErrUnauthorized
	}
	if err != nil {
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(theUser.Password), []byte(password)) != nil {
		return nil, "", "", errs.ErrUnauthorized
	}

	accessToken, err := as.generateAccessToken(theUser)
	if err != nil {
		return nil, "", "", fmt.Errorf("generate access token: %w", err)
	}
	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		UserID:       theUser.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, err := as.tokenRepo.Create(ctx, nil, userToken); err != nil {
		return nil, "", "", err
	}
	as.cacheSession(ctx, accessToken, theUser)
	return theUser, accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context) (string, string, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return "", "", errs.ErrUnauthorized
	}

	var newAccess, newRefresh string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, ftErr := as.tokenRepo.GetByAccessToken(ctx, tx, rd.TokenString)
		if errors.Is(ftErr, errs.ErrNotFound) {
			return errs.ErrUnauthorized
		}
		if ftErr != nil {
			return ftErr
		}
		if existing.ExpiresAt.Before(time.Now()) {
			_ = as.tokenRepo.Delete(ctx, tx, existing.ID)
			return errs.ErrUnauthorized
		}
		theUser, uErr := as.userRepo.GetByID(ctx, tx, existing.UserID)
		if uErr != nil {
			return uErr
		}
		tok, genErr := as.generateAccessToken(theUser)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		newAccess = tok
		newRefresh = uuid.New().String()
		if _, cErr := as.tokenRepo.Create(ctx, tx, &types.UserToken{
			UserID:       theUser.ID,
			AccessToken:  newAccess,
			RefreshToken: newRefresh,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}); cErr != nil {
			return cErr
		}
		if dErr := as.tokenRepo.Delete(ctx, tx, existing.ID); dErr != nil {
			return dErr
		}
		as.cacheSession(ctx, newAccess, theUser)
		as.invalidateSession(ctx, rd.TokenString)
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return newAccess, newRefresh, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return errs.ErrUnauthorized
	}
	existing, err := as.tokenRepo.GetByAccessToken(ctx, nil, rd.TokenString)
	if errors.Is(err, errs.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := as.tokenRepo.Delete(ctx, nil, existing.ID); err != nil {
		return err
	}
	as.invalidateSession(ctx, rd.TokenString)
	return nil
}

// SetContextFromToken resolves an access token to the caller identity and
// attaches it as RequestData. Any failure here means Unauthorized.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*jwtClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}

	if as.sessionCache != nil {
		if entry, cErr := as.sessionCache.Get(ctx, tokenString); cErr == nil && entry.UserID == userID {
			return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
				TokenString: tokenString,
				UserID:      entry.UserID,
				Admin:       entry.Admin,
			}), nil
		}
	}

	// Logout deletes the token row, so a valid JWT alone is not enough.
	if _, tErr := as.tokenRepo.GetByAccessToken(ctx, nil, tokenString); tErr != nil {
		return ctx, fmt.Errorf("session revoked or unknown: %w", tErr)
	}
	theUser, uErr := as.userRepo.GetByID(ctx, nil, userID)
	if uErr != nil {
		return ctx, fmt.Errorf("session user unresolvable: %w", uErr)
	}
	as.cacheSession(ctx, tokenString, theUser)
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      theUser.ID,
		Admin:       theUser.Admin,
	}), nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) cacheSession(ctx context.Context, accessToken string, user *types.User) {
	if as.sessionCache == nil {
		return
	}
	entry := redisclient.SessionEntry{UserID: user.ID, Admin: user.Admin}
	if err := as.sessionCache.Set(ctx, accessToken, entry, as.accessTTL); err != nil {
		as.log.Warn("Failed to cache session", "error", err)
	}
}

func (as *authService) invalidateSession(ctx context.Context, accessToken string) {
	if as.sessionCache == nil {
		return
	}
	if err := as.sessionCache.Invalidate(ctx, accessToken); err != nil {
		as.log.Warn("Failed to invalidate cached session", "error", err)
	}
}
