package request

import (
	"strings"
	"time"

	"studiohub/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	StudioID  uuid.UUID `json:"studio_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Note      *string   `json:"note,omitempty"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	note := ""
	if r.Note != nil {
		note = strings.TrimSpace(*r.Note)
	}
	return commands.CreateReservationInput{
		StudioID:  r.StudioID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Note:      note,
	}
}
