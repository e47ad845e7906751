package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewsController(t *testing.T) {
	router := setupTestRouter(t, "")
	book := createBook(t, router, "Dune")
	reviewsPath := "/books/" + book.ID + "/reviews"

	var reviewID string

	t.Run("create", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, reviewsPath, map[string]any{
			"rating":      0,
			"review_text": "Too much sand",
			"user_uid":    "reader-7",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		review := decodeBody[ReviewResponse](t, w)
		assert.True(t, strings.HasPrefix(review.ID, "rev-"))
		assert.Equal(t, 0, review.Rating)
		require.NotNil(t, review.UserUID)
		assert.Equal(t, "reader-7", *review.UserUID)
		reviewID = review.ID
	})

	t.Run("rating five is rejected", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, reviewsPath, map[string]any{"rating": 5, "review_text": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errBody := decodeBody[errorBody](t, w)
		assert.Equal(t, "VALIDATION", errBody.Code)
		assert.Contains(t, errBody.Details, "rating")
	})

	t.Run("missing rating is rejected", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, reviewsPath, map[string]any{"review_text": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody[errorBody](t, w).Details, "rating")
	})

	t.Run("unknown book", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/books/0f8fad5b-d9cb-469f-a165-70867728950e/reviews",
			map[string]any{"rating": 3, "review_text": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(t, router, http.MethodGet, "/books/0f8fad5b-d9cb-469f-a165-70867728950e/reviews", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, reviewsPath, nil)
		require.Equal(t, http.StatusOK, w.Code)
		reviews := decodeBody[[]ReviewResponse](t, w)
		require.Len(t, reviews, 1)
		assert.Equal(t, reviewID, reviews[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPut, "/reviews/"+reviewID, map[string]any{"rating": 4})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		review := decodeBody[ReviewResponse](t, w)
		assert.Equal(t, 4, review.Rating)
		assert.Equal(t, "Too much sand", review.ReviewText)
		assert.True(t, review.UpdatedAt.After(review.CreatedAt))
	})

	t.Run("delete", func(t *testing.T) {
		w := doRequest(t, router, http.MethodDelete, "/reviews/"+reviewID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doRequest(t, router, http.MethodGet, "/reviews/"+reviewID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
