package request

import (
	"studiohub/internal/usecase/commands"
)

type CreateStudioRequest struct {
	Name            string `json:"name" binding:"required,max=120"`
	Description     string `json:"description,omitempty"`
	HourlyRateCents int64  `json:"hourly_rate_cents" binding:"required,gt=0"`
}

func (r CreateStudioRequest) ToInput() commands.CreateStudioInput {
	return commands.CreateStudioInput{
		Name:            r.Name,
		Description:     r.Description,
		HourlyRateCents: r.HourlyRateCents,
	}
}

type UpdateStudioRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	HourlyRateCents *int64  `json:"hourly_rate_cents,omitempty"`
}

func (r UpdateStudioRequest) ToInput() commands.UpdateStudioInput {
	return commands.UpdateStudioInput{
		Name:            r.Name,
		Description:     r.Description,
		HourlyRateCents: r.HourlyRateCents,
	}
}
