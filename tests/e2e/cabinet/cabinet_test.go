//go:build e2e

package cabinet_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"cabinet-keeper/internal/handler/dto/response"
	"cabinet-keeper/tests/common/dbtest"
	"cabinet-keeper/tests/common/httptest"
	"cabinet-keeper/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	cabinetsURL = "/api/cabinets"
	rentURL     = "/api/cabinets/%d/rent"
	returnURL   = "/api/cabinets/%d/return"
)

type CabinetSuite struct {
	e2e.SharedSuite
}

func (s *CabinetSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCabinetSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CabinetSuite))
}

// =============================================================================
// TestRentCabinet - Cabinet rent API tests
// =============================================================================

func (s *CabinetSuite) TestRentCabinet() {
	s.Run("Normal case: User can rent an available cabinet", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "renter@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusOK, w.Code, "Should rent cabinet successfully: %s", w.Body.String())

		var ticket response.RentResponse
		err := httptest.DecodeResponseBody(t, w.Body, &ticket)
		require.NoError(t, err)
		require.Equal(t, "success", ticket.Status)
		require.Equal(t, cabinetID, ticket.CabinetID)

		// Cabinet is now held by the renter
		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("%s/%d", cabinetsURL, cabinetID), nil, uuid.Nil)
		require.Equal(t, http.StatusOK, gw.Code)

		var view response.CabinetResponse
		err = httptest.DecodeResponseBody(t, gw.Body, &view)
		require.NoError(t, err)

		expected := &response.CabinetResponse{
			ID:       cabinetID,
			Status:   "USING",
			HolderID: &userID,
			Payable:  true,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.CabinetResponse{}, "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &view, opts...); diff != "" {
			t.Errorf("Cabinet view mismatch (-want +got):\n%s", diff)
		}

		// Rent opens a rental history entry
		var openCount int
		err = s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM rental_histories WHERE cabinet_id = $1 AND ended_at IS NULL", cabinetID).Scan(&openCount)
		require.NoError(t, err)
		require.Equal(t, 1, openCount, "Should have exactly one open rental entry")
	})

	s.Run("Error case: Renting an already rented cabinet conflicts", func() {
		t := s.T()

		firstUserID := dbtest.CreateTestUser(t, s.DB, "first@example.com")
		secondUserID := dbtest.CreateTestUser(t, s.DB, "second@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, firstUserID)
		require.Equal(t, http.StatusOK, w1.Code, w1.Body.String())

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, secondUserID)
		require.Equal(t, http.StatusConflict, w2.Code, "Second rent on the same cabinet should conflict")
	})

	s.Run("Error case: User with an open rental cannot rent another cabinet", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "greedy@example.com")
		firstCabinetID := dbtest.CreateTestCabinet(t, s.DB)
		secondCabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, firstCabinetID), nil, userID)
		require.Equal(t, http.StatusOK, w1.Code, w1.Body.String())

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, secondCabinetID), nil, userID)
		require.Equal(t, http.StatusConflict, w2.Code, "One open rental per user")
	})

	s.Run("Error case: Broken cabinet cannot be rented", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "renter@example.com")
		reason := "door jammed"
		cabinetID := dbtest.CreateTestCabinetWithStatus(t, s.DB, "BROKEN", nil, &reason)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusBadRequest, w.Code, "Broken cabinet should be rejected")
	})

	s.Run("Error case: Returns 404 for non-existent cabinet", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "renter@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, int64(999999)), nil, userID)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: Returns 404 for unknown user identity", func() {
		t := s.T()

		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, uuid.New())
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Auth test - Unauthorized without identity header", func() {
		t := s.T()

		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, uuid.Nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "Should reject missing identity")
	})
}

// =============================================================================
// TestReturnCabinet - Cabinet return API tests
// =============================================================================

func (s *CabinetSuite) TestReturnCabinet() {
	s.Run("Normal case: Holder can return their cabinet", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "holder@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(returnURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusOK, w.Code, "Should return cabinet successfully: %s", w.Body.String())

		var view response.CabinetResponse
		err := httptest.DecodeResponseBody(t, w.Body, &view)
		require.NoError(t, err)
		require.Equal(t, "AVAILABLE", view.Status)
		require.Nil(t, view.HolderID)

		// Rental history entry is closed
		var endedAt *time.Time
		err = s.DB.QueryRow(context.Background(),
			"SELECT ended_at FROM rental_histories WHERE cabinet_id = $1 ORDER BY created_at DESC LIMIT 1", cabinetID).Scan(&endedAt)
		require.NoError(t, err)
		require.NotNil(t, endedAt, "Rental entry should be closed")
	})

	s.Run("Normal case: Cabinet can be re-rented after return", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "again@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusOK, w1.Code, w1.Body.String())

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(returnURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

		w3 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusOK, w3.Code, "Should rent again after return: %s", w3.Body.String())
	})

	s.Run("Error case: Non-holder cannot return the cabinet", func() {
		t := s.T()

		holderID := dbtest.CreateTestUser(t, s.DB, "holder@example.com")
		otherID := dbtest.CreateTestUser(t, s.DB, "other@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rentURL, cabinetID), nil, holderID)
		require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(returnURL, cabinetID), nil, otherID)
		require.Equal(t, http.StatusBadRequest, w.Code, "Only the holder may return")
	})

	s.Run("Error case: Returning a cabinet that is not rented fails", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "returner@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(returnURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusBadRequest, w.Code, "Nothing to return")
	})

	s.Run("Auth test - Unauthorized without identity header", func() {
		t := s.T()

		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(returnURL, cabinetID), nil, uuid.Nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestListCabinets - Cabinet list/detail API tests
// =============================================================================

func (s *CabinetSuite) TestListCabinets() {
	s.Run("Normal case: List returns all cabinets ordered by ID", func() {
		t := s.T()

		first := dbtest.CreateTestCabinet(t, s.DB)
		second := dbtest.CreateTestCabinet(t, s.DB)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, cabinetsURL, nil, uuid.Nil)
		require.Equal(t, http.StatusOK, w.Code)

		var views []*response.CabinetResponse
		err := httptest.DecodeResponseBody(t, w.Body, &views)
		require.NoError(t, err)
		require.Len(t, views, 2)
		require.Equal(t, first, views[0].ID)
		require.Equal(t, second, views[1].ID)
	})

	s.Run("Normal case: Status filter narrows the list", func() {
		t := s.T()

		dbtest.CreateTestCabinet(t, s.DB)
		reason := "rusted hinge"
		brokenID := dbtest.CreateTestCabinetWithStatus(t, s.DB, "BROKEN", nil, &reason)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, cabinetsURL+"?status=broken", nil, uuid.Nil)
		require.Equal(t, http.StatusOK, w.Code)

		var views []*response.CabinetResponse
		err := httptest.DecodeResponseBody(t, w.Body, &views)
		require.NoError(t, err)
		require.Len(t, views, 1)
		require.Equal(t, brokenID, views[0].ID)
		require.Equal(t, "BROKEN", views[0].Status)
	})

	s.Run("Error case: Invalid status filter is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, cabinetsURL+"?status=bogus", nil, uuid.Nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: Detail returns 404 for non-existent cabinet", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, cabinetsURL+"/999999", nil, uuid.Nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
