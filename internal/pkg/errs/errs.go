// Package errs defines the sentinel errors every layer of the backend agrees
// on. The HTTP layer maps them to status codes; services return them wrapped
// with context via fmt.Errorf("...: %w", ...).
package errs

import "errors"

var (
	// ErrUnauthorized means the request carried no valid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the session is valid but the caller lacks the
	// privilege for the action. Never conflated with ErrUnauthorized.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a referenced station, user, or review id is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers duplicate favorites and duplicate usernames.
	ErrConflict = errors.New("conflict")
	// ErrStoreUnavailable wraps persistence failures. Callers must not
	// retry blindly: a repeated write with an append could double-apply.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrPartialCascade marks a cascading delete that removed dependent
	// rows but failed before the root delete, so operators can re-run
	// cleanup instead of silently losing the inconsistency.
	ErrPartialCascade = errors.New("partial cascade failure")
)
