package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData is the identity the session layer attached to a request. The
// rest of the backend trusts it as-is; a nil RequestData means the request
// is unauthenticated.
type RequestData struct {
	TokenString  string
	RefreshToken string
	UserID       uuid.UUID
	Admin        bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, ok := ctx.Value(requestDataKey{}).(*RequestData)
	if !ok {
		return nil
	}
	return rd
}
