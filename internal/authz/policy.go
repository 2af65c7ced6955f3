// Package authz is the pure authorization policy consulted by every mutating
// operation. It holds no state and touches no store: the decision is a
// function of the caller identity, the action, and the target.
package authz

import (
	"github.com/google/uuid"

	"github.com/gogas/gogas-backend/internal/pkg/errs"
)

type Action int

const (
	ActionCreateStation Action = iota
	ActionDeleteStation
	ActionCreatePrice
	ActionCreateReview
	ActionDeleteReview
	ActionDeleteUser
	ActionGrantAdmin
	ActionRevokeAdmin
	ActionListUsers
)

// Caller is the identity the session layer attached to the request. A nil
// *Caller means the request carried no valid session.
type Caller struct {
	ID    uuid.UUID
	Admin bool
}

// Target carries the parts of the target aggregate the policy needs.
// Only review deletion looks at it.
type Target struct {
	ReviewOwnerID uuid.UUID
}

// Decide returns nil when the action is allowed, errs.ErrUnauthorized when
// there is no caller, and errs.ErrForbidden when the caller lacks privilege.
// Reads are unrestricted and never consulted here.
func Decide(caller *Caller, action Action, target Target) error {
	if caller == nil {
		return errs.ErrUnauthorized
	}
	switch action {
	case ActionCreatePrice, ActionCreateReview:
		return nil
	case ActionDeleteReview:
		if caller.Admin || caller.ID == target.ReviewOwnerID {
			return nil
		}
		return errs.ErrForbidden
	case ActionCreateStation,
		ActionDeleteStation,
		ActionDeleteUser,
		ActionGrantAdmin,
		ActionRevokeAdmin,
		ActionListUsers:
		if caller.Admin {
			return nil
		}
		return errs.ErrForbidden
	default:
		return errs.ErrForbidden
	}
}
