package response

import (
	"time"

	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	StudioID      uuid.UUID `json:"studio_id"`
	StudioName    string    `json:"studio_name"`
	RequesterID   uuid.UUID `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	AmountCents   int64     `json:"amount_cents"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReservationListResponse struct {
	Items      []*ReservationListItemResponse `json:"items"`
	NextCursor *string                        `json:"next_cursor,omitempty"`
}

type ReservationListItemResponse struct {
	ID          uuid.UUID `json:"id"`
	StudioID    uuid.UUID `json:"studio_id"`
	StudioName  string    `json:"studio_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            v.ID,
		StudioID:      v.StudioID,
		StudioName:    v.StudioName,
		RequesterID:   v.RequesterID,
		RequesterName: v.RequesterName,
		StartTime:     v.StartTime,
		EndTime:       v.EndTime,
		Status:        v.Status,
		AmountCents:   v.AmountCents,
		Note:          v.Note,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) *ReservationListResponse {
	out := &ReservationListResponse{
		Items: make([]*ReservationListItemResponse, len(items)),
	}
	for i, v := range items {
		out.Items[i] = &ReservationListItemResponse{
			ID:          v.ID,
			StudioID:    v.StudioID,
			StudioName:  v.StudioName,
			StartTime:   v.StartTime,
			EndTime:     v.EndTime,
			Status:      v.Status,
			AmountCents: v.AmountCents,
			CreatedAt:   v.CreatedAt,
		}
	}
	if next != nil {
		out.NextCursor = &next.After
	}
	return out
}
