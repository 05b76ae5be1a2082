package reservation

import "studiohub/internal/domain/workflow"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal statuses accept no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Blocking statuses occupy the studio slot for the non-overlap invariant.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

const (
	ActionConfirm  workflow.Action = "confirm"
	ActionCancel   workflow.Action = "cancel"
	ActionComplete workflow.Action = "complete"
)

const (
	RoleOwner     workflow.Role = "owner"     // the studio owner
	RoleRequester workflow.Role = "requester" // the booking requester
)
