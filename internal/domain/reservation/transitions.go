package reservation

import "studiohub/internal/domain/workflow"

// Transitions is the declarative status table for reservations. Completed
// and cancelled are terminal: no rule leads out of them.
var Transitions = workflow.NewEngine([]workflow.Rule[Status]{
	{From: StatusPending, Action: ActionConfirm, To: StatusConfirmed, Allowed: []workflow.Role{RoleOwner}},
	{From: StatusPending, Action: ActionCancel, To: StatusCancelled, Allowed: []workflow.Role{RoleOwner, RoleRequester}},
	{From: StatusConfirmed, Action: ActionCancel, To: StatusCancelled, Allowed: []workflow.Role{RoleOwner, RoleRequester}},
	{From: StatusConfirmed, Action: ActionComplete, To: StatusCompleted, Allowed: []workflow.Role{RoleOwner}},
})
