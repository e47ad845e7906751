package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeForStatus(http.StatusUnprocessableEntity))
	assert.Equal(t, CodeValidation, CodeForStatus(http.StatusBadRequest))
	assert.Equal(t, CodeNotFound, CodeForStatus(http.StatusNotFound))
	assert.Equal(t, CodeConflict, CodeForStatus(http.StatusConflict))
	assert.Equal(t, CodeRateLimited, CodeForStatus(http.StatusTooManyRequests))
	assert.Equal(t, CodeValidation, CodeForStatus(http.StatusUnsupportedMediaType))
	assert.Equal(t, CodeInternal, CodeForStatus(http.StatusBadGateway))
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("book %s not found", "abc")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrConflict))

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, Is(wrapped, ErrNotFound))
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to load book")

	assert.Equal(t, "failed to load book: connection refused", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestError_WithDetails(t *testing.T) {
	base := Validation("validation failed")
	detailed := base.WithDetails(map[string]string{"rating": "must be less than 5"})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"rating": "must be less than 5"}, detailed.Details)
	assert.Equal(t, CodeValidation, detailed.Code)
}
