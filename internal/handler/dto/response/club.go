package response

import (
	"time"

	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
)

type ClubResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ClubType    string    `json:"club_type"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromClubView(v *queries.ClubView) *ClubResponse {
	return &ClubResponse{
		ID:          v.ID,
		Name:        v.Name,
		ClubType:    v.ClubType,
		OwnerID:     v.OwnerID,
		Description: v.Description,
		Icon:        v.Icon,
		MemberCount: v.MemberCount,
		CreatedAt:   v.CreatedAt,
	}
}

func FromClubViews(views []*queries.ClubView) []*ClubResponse {
	out := make([]*ClubResponse, len(views))
	for i, v := range views {
		out[i] = FromClubView(v)
	}
	return out
}
