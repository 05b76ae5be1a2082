package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification and ActivityRecord are append-only and best-effort: they
// are written after the primary transition commits and their failure is
// never promoted to the caller.

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      string
	Title     string
	Message   string
	RefKind   string
	RefID     uuid.UUID
	Read      bool
	CreatedAt time.Time
}

func New(userID uuid.UUID, kind, title, message, refKind string, refID uuid.UUID) *Notification {
	return &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Kind:    kind,
		Title:   title,
		Message: message,
		RefKind: refKind,
		RefID:   refID,
	}
}

type ActivityRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      string
	Title     string
	Message   string
	RefKind   string
	RefID     uuid.UUID
	CreatedAt time.Time
}

func NewActivity(userID uuid.UUID, kind, title, message, refKind string, refID uuid.UUID) *ActivityRecord {
	return &ActivityRecord{
		ID:      uuid.New(),
		UserID:  userID,
		Kind:    kind,
		Title:   title,
		Message: message,
		RefKind: refKind,
		RefID:   refID,
	}
}
