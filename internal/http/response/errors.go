package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gogas/gogas-backend/internal/pkg/errs"
)

// RespondFromError maps the shared error taxonomy onto HTTP status codes.
// Unauthorized and Forbidden stay distinct, and store failures surface as a
// generic 503 with the cause preserved in logs, not in the body.
func RespondFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", errs.ErrUnauthorized)
	case errors.Is(err, errs.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", errs.ErrForbidden)
	case errors.Is(err, errs.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, errs.ErrConflict):
		RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, errs.ErrPartialCascade):
		RespondError(c, http.StatusInternalServerError, "partial_cascade", err)
	case errors.Is(err, errs.ErrStoreUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "store_unavailable", errs.ErrStoreUnavailable)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
