package job

import "studiohub/internal/domain/workflow"

// Transitions drives the service-request lifecycle. The provider owns the
// accept/reject/start/complete path; only the client may cancel, and only
// before work starts.
var Transitions = workflow.NewEngine([]workflow.Rule[Status]{
	{From: StatusPending, Action: ActionAccept, To: StatusAccepted, Allowed: []workflow.Role{RoleProvider}},
	{From: StatusPending, Action: ActionReject, To: StatusRejected, Allowed: []workflow.Role{RoleProvider}},
	{From: StatusAccepted, Action: ActionStart, To: StatusInProgress, Allowed: []workflow.Role{RoleProvider}},
	{From: StatusInProgress, Action: ActionComplete, To: StatusCompleted, Allowed: []workflow.Role{RoleProvider}},
	{From: StatusPending, Action: ActionCancel, To: StatusCancelled, Allowed: []workflow.Role{RoleClient}},
	{From: StatusAccepted, Action: ActionCancel, To: StatusCancelled, Allowed: []workflow.Role{RoleClient}},
})
