//go:build e2e

package bookmark_test

import (
	"fmt"
	"net/http"
	"testing"

	"cabinet-keeper/internal/handler/dto/response"
	"cabinet-keeper/tests/common/dbtest"
	"cabinet-keeper/tests/common/httptest"
	"cabinet-keeper/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookmarksURL   = "/api/bookmarks"
	bookmarkAddURL = "/api/bookmarks/%d"
)

type BookmarkSuite struct {
	e2e.SharedSuite
}

func (s *BookmarkSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookmarkSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookmarkSuite))
}

// =============================================================================
// TestAddBookmark - Bookmark creation API tests
// =============================================================================

func (s *BookmarkSuite) TestAddBookmark() {
	s.Run("Normal case: User bookmarks a cabinet and sees it in the list", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "bookmarker@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookmarksURL, nil, userID)
		require.Equal(t, http.StatusOK, lw.Code)

		var views []*response.BookmarkResponse
		err := httptest.DecodeResponseBody(t, lw.Body, &views)
		require.NoError(t, err)
		require.Len(t, views, 1)
		require.Equal(t, cabinetID, views[0].CabinetID)
		require.Equal(t, "AVAILABLE", views[0].CabinetStatus)
	})

	s.Run("Error case: Duplicate bookmark conflicts", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "bookmarker@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusCreated, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusConflict, w2.Code, "Second bookmark on the same cabinet should conflict")
	})

	s.Run("Error case: Broken cabinet cannot be bookmarked", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "bookmarker@example.com")
		reason := "shelf collapsed"
		cabinetID := dbtest.CreateTestCabinetWithStatus(t, s.DB, "BROKEN", nil, &reason)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: Returns 404 for non-existent cabinet", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "bookmarker@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, int64(999999)), nil, userID)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Auth test - Unauthorized without identity header", func() {
		t := s.T()

		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, uuid.Nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestRemoveBookmark - Bookmark deletion API tests
// =============================================================================

func (s *BookmarkSuite) TestRemoveBookmark() {
	s.Run("Normal case: User removes their bookmark", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "bookmarker@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusCreated, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusNoContent, w2.Code)

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookmarksURL, nil, userID)
		require.Equal(t, http.StatusOK, lw.Code)

		var views []*response.BookmarkResponse
		err := httptest.DecodeResponseBody(t, lw.Body, &views)
		require.NoError(t, err)
		require.Empty(t, views, "Removed bookmark should not be listed")
	})

	s.Run("Normal case: Re-bookmarking after removal succeeds", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "bookmarker@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusCreated, w1.Code)
		w2 := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusNoContent, w2.Code)

		w3 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusCreated, w3.Code)
	})

	s.Run("Error case: Removing a non-existent bookmark fails", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "bookmarker@example.com")
		cabinetID := dbtest.CreateTestCabinet(t, s.DB)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(bookmarkAddURL, cabinetID), nil, userID)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestListBookmarks - Bookmark listing API tests
// =============================================================================

func (s *BookmarkSuite) TestListBookmarks() {
	s.Run("Normal case: List is scoped to the requesting user and ordered by cabinet ID", func() {
		t := s.T()

		user1 := dbtest.CreateTestUser(t, s.DB, "user1@example.com")
		user2 := dbtest.CreateTestUser(t, s.DB, "user2@example.com")
		first := dbtest.CreateTestCabinet(t, s.DB)
		second := dbtest.CreateTestCabinet(t, s.DB)

		for _, id := range []int64{second, first} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, id), nil, user1)
			require.Equal(t, http.StatusCreated, w.Code)
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(bookmarkAddURL, first), nil, user2)
		require.Equal(t, http.StatusCreated, w.Code)

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookmarksURL, nil, user1)
		require.Equal(t, http.StatusOK, lw.Code)

		var views []*response.BookmarkResponse
		err := httptest.DecodeResponseBody(t, lw.Body, &views)
		require.NoError(t, err)
		require.Len(t, views, 2)
		require.Equal(t, first, views[0].CabinetID)
		require.Equal(t, second, views[1].CabinetID)
	})

	s.Run("Normal case: Empty list when user has no bookmarks", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "lonely@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookmarksURL, nil, userID)
		require.Equal(t, http.StatusOK, w.Code)

		var views []*response.BookmarkResponse
		err := httptest.DecodeResponseBody(t, w.Body, &views)
		require.NoError(t, err)
		require.Empty(t, views)
	})
}
