package response

import (
	"time"

	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID           uuid.UUID  `json:"id"`
	ClientID     uuid.UUID  `json:"client_id"`
	ClientName   string     `json:"client_name"`
	ProviderID   uuid.UUID  `json:"provider_id"`
	ProviderName string     `json:"provider_name"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	BudgetCents  *int64     `json:"budget_cents,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       string     `json:"status"`
	Response     *string    `json:"response,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func FromJobView(v *queries.JobView) *JobResponse {
	return &JobResponse{
		ID:           v.ID,
		ClientID:     v.ClientID,
		ClientName:   v.ClientName,
		ProviderID:   v.ProviderID,
		ProviderName: v.ProviderName,
		Title:        v.Title,
		Description:  v.Description,
		BudgetCents:  v.BudgetCents,
		Deadline:     v.Deadline,
		Status:       v.Status,
		Response:     v.Response,
		RespondedAt:  v.RespondedAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromJobViews(views []*queries.JobView) []*JobResponse {
	out := make([]*JobResponse, len(views))
	for i, v := range views {
		out[i] = FromJobView(v)
	}
	return out
}
