package job

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle    = errors.New("job title cannot be empty")
	ErrSameParty     = errors.New("client and provider must be different parties")
	ErrInvalidBudget = errors.New("budget must be positive")
)

// Job is a bilateral service engagement between a client and a provider
// (mixing, mastering, session work and the like).
type Job struct {
	id          uuid.UUID
	clientID    uuid.UUID
	providerID  uuid.UUID
	title       string
	description string
	budgetCents *int64
	deadline    *time.Time
	status      Status
	response    string
	respondedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewJob(
	clientID, providerID uuid.UUID,
	title, description string,
	budgetCents *int64,
	deadline *time.Time,
) (*Job, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if clientID == providerID {
		return nil, ErrSameParty
	}
	if budgetCents != nil && *budgetCents <= 0 {
		return nil, ErrInvalidBudget
	}

	return &Job{
		id:          uuid.New(),
		clientID:    clientID,
		providerID:  providerID,
		title:       title,
		description: description,
		budgetCents: budgetCents,
		deadline:    deadline,
		status:      StatusPending,
	}, nil
}

func ReconstructJob(
	id, clientID, providerID uuid.UUID,
	title, description string,
	budgetCents *int64,
	deadline *time.Time,
	status Status,
	response string,
	respondedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Job {
	return &Job{
		id:          id,
		clientID:    clientID,
		providerID:  providerID,
		title:       title,
		description: description,
		budgetCents: budgetCents,
		deadline:    deadline,
		status:      status,
		response:    response,
		respondedAt: respondedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (j *Job) ID() uuid.UUID           { return j.id }
func (j *Job) ClientID() uuid.UUID     { return j.clientID }
func (j *Job) ProviderID() uuid.UUID   { return j.providerID }
func (j *Job) Title() string           { return j.title }
func (j *Job) Description() string     { return j.description }
func (j *Job) BudgetCents() *int64     { return j.budgetCents }
func (j *Job) Deadline() *time.Time    { return j.deadline }
func (j *Job) Status() Status          { return j.status }
func (j *Job) Response() string        { return j.response }
func (j *Job) RespondedAt() *time.Time { return j.respondedAt }
func (j *Job) CreatedAt() time.Time    { return j.createdAt }
func (j *Job) UpdatedAt() time.Time    { return j.updatedAt }
