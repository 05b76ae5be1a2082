package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyDisplayName = errors.New("display name cannot be empty")

// User is a Party: an authenticated identity able to own studios, make
// requests, and receive notifications.
type User struct {
	id           uuid.UUID
	email        Email
	displayName  string
	capabilities Capabilities
	active       bool
	lastLogin    *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, displayName string, capabilities Capabilities) (*User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, ErrEmptyDisplayName
	}
	return &User{
		id:           uuid.New(),
		email:        email,
		displayName:  displayName,
		capabilities: capabilities,
		active:       true,
	}, nil
}

func ReconstructUser(
	id uuid.UUID,
	email Email,
	displayName string,
	capabilities Capabilities,
	active bool,
	lastLogin *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		displayName:  displayName,
		capabilities: capabilities,
		active:       active,
		lastLogin:    lastLogin,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID              { return u.id }
func (u *User) Email() Email               { return u.email }
func (u *User) DisplayName() string        { return u.displayName }
func (u *User) Capabilities() Capabilities { return u.capabilities }
func (u *User) IsActive() bool             { return u.active }
func (u *User) LastLogin() *time.Time      { return u.lastLogin }
func (u *User) CreatedAt() time.Time       { return u.createdAt }
func (u *User) UpdatedAt() time.Time       { return u.updatedAt }
