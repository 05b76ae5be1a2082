package club

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyClubName   = errors.New("club name cannot be empty")
	ErrInvalidClubType = errors.New("invalid club type")
)

// Club is a workspace: a named group whose type determines the role its
// owner is granted at creation.
type Club struct {
	id          uuid.UUID
	name        string
	clubType    Type
	ownerID     uuid.UUID
	description string
	icon        string
	createdAt   time.Time
}

func NewClub(ownerID uuid.UUID, name string, clubType Type, description, icon string) (*Club, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyClubName
	}
	if !clubType.IsValid() {
		return nil, ErrInvalidClubType
	}
	return &Club{
		id:          uuid.New(),
		name:        name,
		clubType:    clubType,
		ownerID:     ownerID,
		description: description,
		icon:        icon,
	}, nil
}

func ReconstructClub(
	id uuid.UUID,
	name string,
	clubType Type,
	ownerID uuid.UUID,
	description, icon string,
	createdAt time.Time,
) *Club {
	return &Club{
		id:          id,
		name:        name,
		clubType:    clubType,
		ownerID:     ownerID,
		description: description,
		icon:        icon,
		createdAt:   createdAt,
	}
}

// GrantedRole is the role the owner receives when this club is created.
func (c *Club) GrantedRole() RoleType {
	return RoleFor(c.clubType)
}

func (c *Club) ID() uuid.UUID        { return c.id }
func (c *Club) Name() string         { return c.name }
func (c *Club) ClubType() Type       { return c.clubType }
func (c *Club) OwnerID() uuid.UUID   { return c.ownerID }
func (c *Club) Description() string  { return c.description }
func (c *Club) Icon() string         { return c.icon }
func (c *Club) CreatedAt() time.Time { return c.createdAt }

// Member is one entry of a club's member list.
type Member struct {
	ClubID   uuid.UUID
	UserID   uuid.UUID
	Role     string
	JoinedAt time.Time
}

// RoleGrant is a durable (party, role) permission record. The pair is
// unique; re-granting updates the club back-reference instead of
// duplicating.
type RoleGrant struct {
	UserID    uuid.UUID
	Role      RoleType
	ClubID    uuid.UUID
	GrantedAt time.Time
}
