package response

import (
	"time"

	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
)

type StudioResponse struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	OwnerName       string    `json:"owner_name"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromStudioView(v *queries.StudioView) *StudioResponse {
	return &StudioResponse{
		ID:              v.ID,
		OwnerID:         v.OwnerID,
		OwnerName:       v.OwnerName,
		Name:            v.Name,
		Description:     v.Description,
		HourlyRateCents: v.HourlyRateCents,
		IsActive:        v.IsActive,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func FromStudioViews(views []*queries.StudioView) []*StudioResponse {
	out := make([]*StudioResponse, len(views))
	for i, v := range views {
		out[i] = FromStudioView(v)
	}
	return out
}
