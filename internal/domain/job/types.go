package job

import "studiohub/internal/domain/workflow"

type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

const (
	ActionAccept   workflow.Action = "accept"
	ActionReject   workflow.Action = "reject"
	ActionStart    workflow.Action = "start"
	ActionComplete workflow.Action = "complete"
	ActionCancel   workflow.Action = "cancel"
)

const (
	RoleClient   workflow.Role = "client"
	RoleProvider workflow.Role = "provider"
)
