package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/mrlokans/bookshelf/internal/errors"
)

type sampleRequest struct {
	Title  string   `json:"title" validate:"required,max=10"`
	Rating *int     `json:"rating,omitempty" validate:"omitempty,gte=0,lt=5"`
	Text   string   `json:"review_text" validate:"notblank"`
	TagIDs []string `json:"tag_ids" validate:"omitempty,dive,uuid"`
}

func intPtr(v int) *int { return &v }

func TestValidator_Validate(t *testing.T) {
	v := New()

	t.Run("valid request passes", func(t *testing.T) {
		err := v.Validate(sampleRequest{Title: "Dune", Rating: intPtr(4), Text: "Great"})
		assert.NoError(t, err)
	})

	t.Run("failures are keyed by json name", func(t *testing.T) {
		err := v.Validate(sampleRequest{Title: "", Rating: intPtr(5), Text: "   "})
		require.Error(t, err)

		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

		details, ok := domainErr.Details.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "is required", details["title"])
		assert.Equal(t, "must be less than 5", details["rating"])
		assert.Equal(t, "must not be blank", details["review_text"])
	})

	t.Run("string length message", func(t *testing.T) {
		err := v.Validate(sampleRequest{Title: "a very long title", Text: "ok"})

		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		details := domainErr.Details.(map[string]string)
		assert.Equal(t, "must not exceed 10 characters", details["title"])
	})

	t.Run("dive reports element field", func(t *testing.T) {
		err := v.Validate(sampleRequest{Title: "ok", Text: "ok", TagIDs: []string{"nope"}})

		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		details := domainErr.Details.(map[string]string)
		assert.Equal(t, "must be a valid UUID", details["tag_ids[0]"])
	})
}
