package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/text-insights/internal/domain/insights"
	apperrors "github.com/yanqian/text-insights/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Stage   string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromPipelineError maps a pipeline failure to its transport status, keeping
// the failing stage so the client can tell which step broke.
func fromPipelineError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := apperrors.CodeOf(err)
	switch code {
	case insights.CodeEmptyInput:
		status = http.StatusUnprocessableEntity
	case insights.CodeInvalidConfig:
		status = http.StatusBadRequest
	case insights.CodeModelUnavailable:
		status = http.StatusServiceUnavailable
	case insights.CodeSummarizationFailed, insights.CodeKeywordExtractionFailed:
		status = http.StatusBadGateway
	default:
		code = "internal_error"
	}
	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: apperrors.MessageOf(err),
		Stage:   apperrors.StageOf(err),
		Err:     err,
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
