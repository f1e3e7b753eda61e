package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the verification status shared by vendors, affiliates, winga and
// products. The active/inactive distinction the dashboard shows is not a
// separate status: it is the IsActive flag, meaningful only once approved.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Action string

const (
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
)

var (
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrAlreadyInState       = errors.New("entity already in requested state")
	ErrReasonRequired       = errors.New("rejection reason required")
	ErrDocumentsNotApproved = errors.New("all verification documents must be approved first")
)

// State is the workflow-relevant slice of an entity.
type State struct {
	Status   Status
	IsActive bool
}

// Options carry the per-entity variations. Vendors gate approval on their
// verification documents; affiliates and products do not.
type Options struct {
	RequireDocumentsApproved bool
}

// ApplyInput is the side payload a transition needs.
type ApplyInput struct {
	Reason            string
	DocumentsApproved bool
	Options           Options
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ActionFor derives the action that takes cur to target. The REST payload is
// status-shaped ({status, is_active}); the engine reasons in actions.
func ActionFor(cur, target State) (Action, error) {
	if !ValidStatus(target.Status) {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target.Status)
	}
	if cur.Status == target.Status && cur.IsActive == target.IsActive {
		return "", ErrAlreadyInState
	}

	switch target.Status {
	case StatusApproved:
		if cur.Status == StatusApproved {
			if target.IsActive {
				return ActionActivate, nil
			}
			return ActionDeactivate, nil
		}
		return ActionApprove, nil
	case StatusRejected:
		return ActionReject, nil
	default:
		// Nothing transitions back to pending.
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, target.Status)
	}
}

// Apply validates and executes a single transition, returning the next state.
func Apply(cur State, action Action, in ApplyInput) (State, error) {
	switch action {
	case ActionApprove:
		if cur.Status == StatusApproved {
			return cur, ErrAlreadyInState
		}
		if cur.Status != StatusPending {
			return cur, fmt.Errorf("%w: cannot approve from %s", ErrInvalidTransition, cur.Status)
		}
		if in.Options.RequireDocumentsApproved && !in.DocumentsApproved {
			return cur, ErrDocumentsNotApproved
		}
		return State{Status: StatusApproved, IsActive: true}, nil

	case ActionReject:
		if cur.Status == StatusRejected {
			return cur, ErrAlreadyInState
		}
		if strings.TrimSpace(in.Reason) == "" {
			return cur, ErrReasonRequired
		}
		return State{Status: StatusRejected, IsActive: false}, nil

	case ActionActivate:
		if cur.Status != StatusApproved {
			return cur, fmt.Errorf("%w: cannot activate from %s", ErrInvalidTransition, cur.Status)
		}
		if cur.IsActive {
			return cur, ErrAlreadyInState
		}
		return State{Status: StatusApproved, IsActive: true}, nil

	case ActionDeactivate:
		if cur.Status != StatusApproved {
			return cur, fmt.Errorf("%w: cannot deactivate from %s", ErrInvalidTransition, cur.Status)
		}
		if !cur.IsActive {
			return cur, ErrAlreadyInState
		}
		return State{Status: StatusApproved, IsActive: false}, nil

	default:
		return cur, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
}

// AllowedActions is the action menu for a row in the dashboard tables.
func AllowedActions(cur State) []Action {
	switch cur.Status {
	case StatusPending:
		return []Action{ActionApprove, ActionReject}
	case StatusApproved:
		if cur.IsActive {
			return []Action{ActionDeactivate, ActionReject}
		}
		return []Action{ActionActivate, ActionReject}
	default:
		return []Action{}
	}
}
