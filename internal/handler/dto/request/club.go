package request

import (
	"studiohub/internal/usecase/commands"
)

type CreateClubRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	ClubType    string `json:"club_type" binding:"required,oneof=recording production rental creative management distribution"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

func (r CreateClubRequest) ToInput() commands.CreateClubInput {
	return commands.CreateClubInput{
		Name:        r.Name,
		ClubType:    r.ClubType,
		Description: r.Description,
		Icon:        r.Icon,
	}
}
