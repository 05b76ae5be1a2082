package request

import (
	"time"

	"studiohub/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	ProviderID  uuid.UUID  `json:"provider_id" binding:"required"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description,omitempty"`
	BudgetCents *int64     `json:"budget_cents,omitempty" binding:"omitempty,gt=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

func (r CreateJobRequest) ToInput() commands.CreateJobInput {
	return commands.CreateJobInput{
		ProviderID:  r.ProviderID,
		Title:       r.Title,
		Description: r.Description,
		BudgetCents: r.BudgetCents,
		Deadline:    r.Deadline,
	}
}

// RespondJobRequest carries the provider's reply on accept or reject.
type RespondJobRequest struct {
	Response string `json:"response,omitempty" binding:"max=2000"`
}
