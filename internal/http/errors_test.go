package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookshelf/internal/entities"
	domainerrors "github.com/mrlokans/bookshelf/internal/errors"
	"github.com/mrlokans/bookshelf/internal/services"
)

// failingTags returns err from every call.
type failingTags struct {
	TagService
	err error
}

func (f failingTags) ListTags(context.Context) ([]entities.Tag, error) {
	return nil, f.err
}

func (f failingTags) CreateTag(context.Context, services.TagRequest) (*entities.Tag, error) {
	return nil, f.err
}

func newTestAPI(t *testing.T, tags TagService) humatest.TestAPI {
	t.Helper()
	RegisterErrorHandler()
	_, api := humatest.New(t, newHumaConfig(RouterConfig{Title: "Test API", Version: "1.0.0"}))
	NewTagsController(tags).Register(api)
	return api
}

func TestRegisterErrorHandler_InternalErrorsAreHidden(t *testing.T) {
	api := newTestAPI(t, failingTags{err: fmt.Errorf("dial tcp: connection refused")})

	resp := api.Get("/tags")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"code":"INTERNAL","message":"internal server error"}`, resp.Body.String())
}

func TestRegisterErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"conflict", domainerrors.Conflict("a tag with this name already exists"), http.StatusConflict, "CONFLICT"},
		{"not found", domainerrors.NotFound("tag not found"), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped validation", fmt.Errorf("create: %w", domainerrors.Validation("bad")), http.StatusBadRequest, "VALIDATION"},
		{"wrapped internal", domainerrors.Wrap(fmt.Errorf("disk full"), domainerrors.CodeInternal, "failed"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, failingTags{err: tt.err})

			resp := api.Post("/tags", map[string]any{"name": "sci-fi"})

			assert.Equal(t, tt.status, resp.Code)
			assert.Contains(t, resp.Body.String(), `"code":"`+tt.code+`"`)
		})
	}
}

func TestRegisterErrorHandler_SchemaValidationIsBadRequest(t *testing.T) {
	api := newTestAPI(t, failingTags{})

	resp := api.Post("/tags", map[string]any{"name": 42})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), `"code":"VALIDATION"`)
	assert.Contains(t, resp.Body.String(), `"name"`)
}

func TestDetailField(t *testing.T) {
	assert.Equal(t, "title", detailField(&huma.ErrorDetail{Location: "body.title", Message: "expected string"}))
	assert.Equal(t, "authors[0]", detailField(&huma.ErrorDetail{Location: "body.authors[0]"}))
	assert.Equal(t, "author", detailField(&huma.ErrorDetail{
		Location: "body",
		Message:  "expected required property author to be present",
	}))
	assert.Equal(t, "with_tags", detailField(&huma.ErrorDetail{Location: "query.with_tags"}))
}

func TestRegisterErrorHandler_InstallsOnce(t *testing.T) {
	RegisterErrorHandler()
	installed := huma.NewError
	t.Cleanup(func() { huma.NewError = installed })

	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		return &huma.ErrorModel{Status: status, Detail: message}
	}

	RegisterErrorHandler()
	NewAPI(gin.New(), RouterConfig{})

	assert.IsType(t, &huma.ErrorModel{}, huma.NewError(http.StatusBadRequest, "bad"))
}
