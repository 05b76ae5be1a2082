package workflow

import "errors"

var (
	ErrInvalidTransition = errors.New("transition not defined from current state")
	ErrForbidden         = errors.New("actor role may not trigger this transition")
)

type (
	Role   string
	Action string
)

// Rule declares a single row of a transition table: who may move an entity
// from one state to another with a given action.
type Rule[S ~string] struct {
	From    S
	Action  Action
	To      S
	Allowed []Role
}

type ruleKey[S ~string] struct {
	from   S
	action Action
}

type compiledRule[S ~string] struct {
	to      S
	allowed map[Role]struct{}
}

// Engine is a declarative finite-state engine. Undefined (state, action)
// pairs fail before the role check, so ErrForbidden always means the
// transition exists but the caller is the wrong party.
type Engine[S ~string] struct {
	rules map[ruleKey[S]]compiledRule[S]
}

func NewEngine[S ~string](rules []Rule[S]) *Engine[S] {
	compiled := make(map[ruleKey[S]]compiledRule[S], len(rules))
	for _, r := range rules {
		allowed := make(map[Role]struct{}, len(r.Allowed))
		for _, role := range r.Allowed {
			allowed[role] = struct{}{}
		}
		compiled[ruleKey[S]{from: r.From, action: r.Action}] = compiledRule[S]{to: r.To, allowed: allowed}
	}
	return &Engine[S]{rules: compiled}
}

// Next returns the state reached by applying action as role.
func (e *Engine[S]) Next(from S, action Action, role Role) (S, error) {
	var zero S
	r, ok := e.rules[ruleKey[S]{from: from, action: action}]
	if !ok {
		return zero, ErrInvalidTransition
	}
	if _, ok := r.allowed[role]; !ok {
		return zero, ErrForbidden
	}
	return r.to, nil
}

// Defined reports whether any role could apply action from the given state.
func (e *Engine[S]) Defined(from S, action Action) bool {
	_, ok := e.rules[ruleKey[S]{from: from, action: action}]
	return ok
}
