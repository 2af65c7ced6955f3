package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/gogas/gogas-backend/internal/authz"
	"github.com/gogas/gogas-backend/internal/pkg/ctxutil"
)

// callerFrom maps the session layer's RequestData to a policy caller. A nil
// result means the request is unauthenticated.
func callerFrom(ctx context.Context) *authz.Caller {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil
	}
	return &authz.Caller{ID: rd.UserID, Admin: rd.Admin}
}
