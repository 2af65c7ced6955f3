package authz

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/gogas/gogas-backend/internal/pkg/errs"
)

func TestDecideNoCaller(t *testing.T) {
	// Every action without a session is Unauthorized, never Forbidden.
	actions := []Action{
		ActionCreateStation, ActionDeleteStation,
		ActionCreatePrice, ActionCreateReview, ActionDeleteReview,
		ActionDeleteUser, ActionGrantAdmin, ActionRevokeAdmin, ActionListUsers,
	}
	for _, a := range actions {
		if err := Decide(nil, a, Target{}); !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("Decide(nil, %d): got %v, want ErrUnauthorized", a, err)
		}
	}
}

func TestDecideTable(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	member := &Caller{ID: userID}
	admin := &Caller{ID: uuid.New(), Admin: true}

	cases := []struct {
		name   string
		caller *Caller
		action Action
		target Target
		want   error
	}{
		{"member creates price", member, ActionCreatePrice, Target{}, nil},
		{"member creates review", member, ActionCreateReview, Target{}, nil},
		{"member creates station", member, ActionCreateStation, Target{}, errs.ErrForbidden},
		{"admin creates station", admin, ActionCreateStation, Target{}, nil},
		{"member deletes station", member, ActionDeleteStation, Target{}, errs.ErrForbidden},
		{"admin deletes station", admin, ActionDeleteStation, Target{}, nil},
		{"member deletes own review", member, ActionDeleteReview, Target{ReviewOwnerID: userID}, nil},
		{"member deletes foreign review", member, ActionDeleteReview, Target{ReviewOwnerID: otherID}, errs.ErrForbidden},
		{"admin deletes foreign review", admin, ActionDeleteReview, Target{ReviewOwnerID: otherID}, nil},
		{"member deletes user", member, ActionDeleteUser, Target{}, errs.ErrForbidden},
		{"admin deletes user", admin, ActionDeleteUser, Target{}, nil},
		{"member grants admin", member, ActionGrantAdmin, Target{}, errs.ErrForbidden},
		{"admin grants admin", admin, ActionGrantAdmin, Target{}, nil},
		{"member revokes admin", member, ActionRevokeAdmin, Target{}, errs.ErrForbidden},
		{"admin revokes admin", admin, ActionRevokeAdmin, Target{}, nil},
		{"member lists users", member, ActionListUsers, Target{}, errs.ErrForbidden},
		{"admin lists users", admin, ActionListUsers, Target{}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Decide(tc.caller, tc.action, tc.target)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("got %v, want allow", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}
