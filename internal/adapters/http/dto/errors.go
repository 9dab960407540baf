// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/platform/logging"
)

// TraceIDKey is the gin context key holding an explicit trace id.
const TraceIDKey = "trace_id"

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details maps request fields to their validation messages.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeNotFound         = "NOT_FOUND"
	ErrorCodeValidation       = "VALIDATION_ERROR"
	ErrorCodeForbidden        = "FORBIDDEN"
	ErrorCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrorCodeUnavailable      = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal         = "INTERNAL_ERROR"
	ErrorCodeTimeout          = "TIMEOUT"
	ErrorCodeTooLarge         = "REQUEST_TOO_LARGE"
)

// Messages for responses that carry no domain context.
const (
	MsgValidationFailed = "request validation failed"
	MsgInternal         = "an internal error occurred"
	MsgUnavailable      = "service temporarily unavailable"
	MsgNotAuthenticated = "authentication credentials were not provided"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation:
		return http.StatusBadRequest
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrorCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to an HTTP status code and error
// response. Integrity violations and unknown errors become a generic 500.
func MapDomainError(err error) (int, *ErrorResponse) {
	var maxErr *http.MaxBytesError

	switch {
	case err == nil:
		return http.StatusOK, nil

	case domain.IsNotFound(err):
		msg := "not found"

		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			msg = nf.Error()
		}

		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, msg)

	case domain.IsValidation(err):
		return http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation, MsgValidationFailed, FieldDetails(err))

	case domain.IsForbidden(err):
		msg := MsgNotAuthenticated

		var fe *domain.ForbiddenError
		if errors.As(err, &fe) && fe.Reason != "" {
			msg = fe.Reason
		}

		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, msg)

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded")

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, MsgUnavailable)

	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, NewErrorResponse(ErrorCodeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, MsgInternal)
	}
}

// FieldDetails extracts per-field messages from a validation error.
func FieldDetails(err error) map[string]string {
	var fields domain.FieldErrors
	if errors.As(err, &fields) {
		details := make(map[string]string, len(fields))
		for k, v := range fields {
			details[k] = v
		}

		return details
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		return map[string]string{ve.Field: ve.Message}
	}

	return nil
}

// GetTraceID returns the trace id for the current request. An explicit
// trace_id context value wins over the active span, then X-Request-ID.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(TraceIDKey); ok {
		id, _ := v.(string)
		return id
	}

	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError writes the error envelope for err. Server-side failures are
// logged with the request logger.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Int("status", status),
			slog.String("error", err.Error()),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// AbortWithError aborts the handler chain and writes the envelope for err.
func AbortWithError(c *gin.Context, err error) {
	HandleError(c, err)
	c.Abort()
}

// AbortWithCode aborts the handler chain with a specific error code.
func AbortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code),
		NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}
