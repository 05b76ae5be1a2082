//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"studiohub/internal/handler/dto/response"
	"studiohub/tests/common/authtest"
	"studiohub/tests/common/dbtest"
	"studiohub/tests/common/httptest"
	"studiohub/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	availabilityURL = "/api/studios/%s/availability"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) createStudio(ownerEmail string) (uuid.UUID, uuid.UUID) {
	t := s.T()
	ownerID := dbtest.CreateTestUser(t, s.DB, ownerEmail, dbtest.UserCaps{CanCreateStudios: true})
	studioID := dbtest.CreateTestStudio(t, s.DB, ownerID, "Test Studio", 6000)
	return ownerID, studioID
}

func (s *ReservationSuite) reservationBody(studioID uuid.UUID, start, end time.Time) map[string]any {
	return map[string]any{
		"studio_id":  studioID.String(),
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	}
}

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("books a free slot and reads it back", func() {
		t := s.T()

		_, studioID := s.createStudio("owner@example.com")
		_, token := authtest.CreateAndLogin(t, s.DB, s.Router, "artist@example.com", dbtest.UserCaps{})

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Hour)
		end := start.Add(2 * time.Hour)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			s.reservationBody(studioID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.NotEmpty(t, created["id"])

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+created["id"], nil, token)
		require.Equal(t, http.StatusOK, dw.Code, dw.Body.String())

		var actual response.ReservationResponse
		httptest.AssertSuccessResponse(t, dw, http.StatusOK, &actual)

		expected := &response.ReservationResponse{
			StudioID:      studioID,
			StudioName:    "Test Studio",
			RequesterName: "artist",
			Status:        "pending",
			// 2 hours at 6000 cents/hour
			AmountCents: 12000,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ReservationResponse{},
				"ID", "RequesterID", "StartTime", "EndTime", "Note", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("reservation detail mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("rejects an overlapping slot", func() {
		t := s.T()

		_, studioID := s.createStudio("owner@example.com")
		_, token := authtest.CreateAndLogin(t, s.DB, s.Router, "artist@example.com", dbtest.UserCaps{})

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Hour)
		end := start.Add(2 * time.Hour)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			s.reservationBody(studioID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// shifted by one hour, still intersects
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			s.reservationBody(studioID, start.Add(time.Hour), end.Add(time.Hour)), token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "overlaps")
	})

	s.Run("allows back-to-back slots", func() {
		t := s.T()

		_, studioID := s.createStudio("owner@example.com")
		_, token := authtest.CreateAndLogin(t, s.DB, s.Router, "artist@example.com", dbtest.UserCaps{})

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Hour)
		mid := start.Add(2 * time.Hour)
		end := mid.Add(2 * time.Hour)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			s.reservationBody(studioID, start, mid), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// [start, mid) and [mid, end) share only the boundary instant
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			s.reservationBody(studioID, mid, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("exactly one of many racing requests wins the slot", func() {
		t := s.T()

		_, studioID := s.createStudio("owner@example.com")
		_, token := authtest.CreateAndLogin(t, s.DB, s.Router, "artist@example.com", dbtest.UserCaps{})

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Hour)
		end := start.Add(2 * time.Hour)
		body := s.reservationBody(studioID, start, end)

		const racers = 8
		statuses := make(chan int, racers)
		var wg sync.WaitGroup
		for range racers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, token)
				statuses <- w.Code
			}()
		}
		wg.Wait()
		close(statuses)

		var created, conflicted int
		for code := range statuses {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				t.Errorf("unexpected status %d", code)
			}
		}
		require.Equal(t, 1, created, "exactly one booking must win")
		require.Equal(t, racers-1, conflicted)
	})
}

func (s *ReservationSuite) TestAvailability() {
	s.Run("reports a booked slot as unavailable", func() {
		t := s.T()

		_, studioID := s.createStudio("owner@example.com")
		_, token := authtest.CreateAndLogin(t, s.DB, s.Router, "artist@example.com", dbtest.UserCaps{})

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Hour)
		end := start.Add(2 * time.Hour)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			s.reservationBody(studioID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		url := fmt.Sprintf(availabilityURL, studioID.String()) +
			"?start=" + start.Format(time.RFC3339) + "&end=" + end.Format(time.RFC3339)
		aw := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")

		var result struct {
			Available bool `json:"available"`
		}
		httptest.AssertSuccessResponse(t, aw, http.StatusOK, &result)
		require.False(t, result.Available)

		// the hour after the booking is free
		url = fmt.Sprintf(availabilityURL, studioID.String()) +
			"?start=" + end.Format(time.RFC3339) + "&end=" + end.Add(time.Hour).Format(time.RFC3339)
		aw = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		httptest.AssertSuccessResponse(t, aw, http.StatusOK, &result)
		require.True(t, result.Available)
	})
}

func (s *ReservationSuite) TestLifecycle() {
	s.Run("owner confirms then completes, requester sees status", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", dbtest.UserCaps{CanCreateStudios: true})
		studioID := dbtest.CreateTestStudio(t, s.DB, ownerID, "Test Studio", 6000)
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", authtest.TestPassword)
		_, artistToken := authtest.CreateAndLogin(t, s.DB, s.Router, "artist@example.com", dbtest.UserCaps{})

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Hour)
		end := start.Add(time.Hour)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			s.reservationBody(studioID, start, end), artistToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		id := created["id"]

		// requester may not confirm
		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/confirm", nil, artistToken)
		httptest.AssertErrorResponse(t, cw, http.StatusForbidden, "")

		cw = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/confirm", nil, ownerToken)
		require.Equal(t, http.StatusNoContent, cw.Code, cw.Body.String())

		cw = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/complete", nil, ownerToken)
		require.Equal(t, http.StatusNoContent, cw.Code, cw.Body.String())

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+id, nil, artistToken)
		var detail response.ReservationResponse
		httptest.AssertSuccessResponse(t, dw, http.StatusOK, &detail)
		require.Equal(t, "completed", detail.Status)
	})

	s.Run("cancelling frees the slot", func() {
		t := s.T()

		_, studioID := s.createStudio("owner@example.com")
		_, token := authtest.CreateAndLogin(t, s.DB, s.Router, "artist@example.com", dbtest.UserCaps{})

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Hour)
		end := start.Add(time.Hour)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			s.reservationBody(studioID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+created["id"]+"/cancel", nil, token)
		require.Equal(t, http.StatusNoContent, cw.Code, cw.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			s.reservationBody(studioID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}
