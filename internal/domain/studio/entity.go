package studio

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyStudioName   = errors.New("studio name cannot be empty")
	ErrStudioNameTooLong = errors.New("studio name is too long (max 255 characters)")
	ErrInvalidHourlyRate = errors.New("hourly rate must be positive")
)

const MaxStudioNameLength = 255

// Studio is a bookable resource. It is owned by a single party and is
// soft-deactivated rather than deleted while reservations reference it.
type Studio struct {
	id              uuid.UUID
	ownerID         uuid.UUID
	name            string
	description     string
	hourlyRateCents int64
	active          bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewStudio(ownerID uuid.UUID, name, description string, hourlyRateCents int64) (*Studio, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if hourlyRateCents <= 0 {
		return nil, ErrInvalidHourlyRate
	}
	return &Studio{
		id:              uuid.New(),
		ownerID:         ownerID,
		name:            strings.TrimSpace(name),
		description:     description,
		hourlyRateCents: hourlyRateCents,
		active:          true,
	}, nil
}

func ReconstructStudio(
	id, ownerID uuid.UUID,
	name, description string,
	hourlyRateCents int64,
	active bool,
	createdAt, updatedAt time.Time,
) *Studio {
	return &Studio{
		id:              id,
		ownerID:         ownerID,
		name:            name,
		description:     description,
		hourlyRateCents: hourlyRateCents,
		active:          active,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (s *Studio) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	s.name = strings.TrimSpace(name)
	return nil
}

func (s *Studio) SetDescription(description string) {
	s.description = description
}

// ChangeRate affects future reservations only; amounts already captured
// on existing reservations are never recomputed.
func (s *Studio) ChangeRate(hourlyRateCents int64) error {
	if hourlyRateCents <= 0 {
		return ErrInvalidHourlyRate
	}
	s.hourlyRateCents = hourlyRateCents
	return nil
}

func (s *Studio) Deactivate() {
	s.active = false
}

func (s *Studio) IsOwnedBy(partyID uuid.UUID) bool {
	return s.ownerID == partyID
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyStudioName
	}
	if len(name) > MaxStudioNameLength {
		return ErrStudioNameTooLong
	}
	return nil
}

func (s *Studio) ID() uuid.UUID          { return s.id }
func (s *Studio) OwnerID() uuid.UUID     { return s.ownerID }
func (s *Studio) Name() string           { return s.name }
func (s *Studio) Description() string    { return s.description }
func (s *Studio) HourlyRateCents() int64 { return s.hourlyRateCents }
func (s *Studio) IsActive() bool         { return s.active }
func (s *Studio) CreatedAt() time.Time   { return s.createdAt }
func (s *Studio) UpdatedAt() time.Time   { return s.updatedAt }
