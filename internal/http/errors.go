package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gin-gonic/gin"

	domainerrors "github.com/mrlokans/bookshelf/internal/errors"
)

const internalErrorMessage = "internal server error"

// APIError is the single error body shape of the API. It implements
// huma.StatusError so huma writes it as-is.
type APIError struct {
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// NewAPIError converts any error into an APIError. Domain errors keep their
// code and details; internal causes are logged and replaced by a generic
// message.
func NewAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var domainErr *domainerrors.Error
	if !errors.As(err, &domainErr) {
		domainErr = domainerrors.Wrap(err, domainerrors.CodeInternal, internalErrorMessage)
	}

	if domainErr.Code == domainerrors.CodeInternal || domainErr.HTTPStatus() >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		return &APIError{
			status:  http.StatusInternalServerError,
			Code:    string(domainerrors.CodeInternal),
			Message: internalErrorMessage,
		}
	}

	return &APIError{
		status:  domainErr.HTTPStatus(),
		Code:    string(domainErr.Code),
		Message: domainErr.Message,
		Details: domainErr.Details,
	}
}

var errorHandlerOnce sync.Once

// RegisterErrorHandler configures huma to render every error, including its
// own request validation failures, as an APIError. huma.NewError is a package
// global, so it is installed only on the first call. Call it before
// registering operations.
func RegisterErrorHandler() {
	errorHandlerOnce.Do(func() {
		huma.NewError = newHumaError
	})
}

func newHumaError(status int, message string, errs ...error) huma.StatusError {
	fields := map[string]string{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var detail *huma.ErrorDetail
		if errors.As(err, &detail) {
			fields[detailField(detail)] = detail.Message
			continue
		}
		if isDomainError(err) || status >= http.StatusInternalServerError {
			return NewAPIError(err)
		}
	}

	code := domainerrors.CodeForStatus(status)
	if code == domainerrors.CodeValidation {
		status = http.StatusBadRequest
	}
	if code == domainerrors.CodeInternal {
		message = internalErrorMessage
	}

	apiErr := &APIError{status: status, Code: string(code), Message: message}
	if len(fields) > 0 {
		apiErr.Details = fields
	}
	return apiErr
}

func isDomainError(err error) bool {
	var domainErr *domainerrors.Error
	var apiErr *APIError
	return errors.As(err, &domainErr) || errors.As(err, &apiErr)
}

const requiredPrefix, requiredSuffix = "expected required property ", " to be present"

// detailField turns a huma location such as "body.title" into the JSON
// field path the client sent. Missing properties are reported against their
// parent object, so the name is taken from the message instead.
func detailField(detail *huma.ErrorDetail) string {
	location := detail.Location
	if name, ok := strings.CutPrefix(detail.Message, requiredPrefix); ok {
		name = strings.TrimSuffix(name, requiredSuffix)
		if location == "" || location == "body" {
			location = "body." + name
		} else {
			location += "." + name
		}
	}
	for _, prefix := range []string{"body.", "path.", "query."} {
		if strings.HasPrefix(location, prefix) {
			return strings.TrimPrefix(location, prefix)
		}
	}
	if location == "" {
		return "body"
	}
	return location
}

// abortWithError writes an APIError from plain gin handlers and middleware.
func abortWithError(c *gin.Context, err *domainerrors.Error) {
	apiErr := NewAPIError(err)
	c.AbortWithStatusJSON(apiErr.GetStatus(), apiErr)
}
