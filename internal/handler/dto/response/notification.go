package response

import (
	"time"

	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RefKind   string    `json:"ref_kind"`
	RefID     uuid.UUID `json:"ref_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func FromNotificationView(v *queries.NotificationView) *NotificationResponse {
	return &NotificationResponse{
		ID:        v.ID,
		Kind:      v.Kind,
		Title:     v.Title,
		Message:   v.Message,
		RefKind:   v.RefKind,
		RefID:     v.RefID,
		IsRead:    v.IsRead,
		CreatedAt: v.CreatedAt,
	}
}

func FromNotificationViews(views []*queries.NotificationView) []*NotificationResponse {
	out := make([]*NotificationResponse, len(views))
	for i, v := range views {
		out[i] = FromNotificationView(v)
	}
	return out
}
