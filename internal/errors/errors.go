package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/domain"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"

	// Validation errors
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeInvalidFormat = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"

	// Business logic errors
	ErrCodeRuleViolation    = "RULE_VIOLATION"
	ErrCodeOperationFailed  = "OPERATION_FAILED"
	ErrCodeUpstreamFailure  = "UPSTREAM_FAILURE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeServiceDisabled  = "SERVICE_DISABLED"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// FieldDetails names the request parameter a validation error is about
type FieldDetails struct {
	Param string `json:"param"`
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// UnprocessableEntity sends a 422 response for a broken business rule
func UnprocessableEntity(c *gin.Context, message string) {
	if message == "" {
		message = "Business rule violation"
	}
	RespondWithError(c, http.StatusUnprocessableEntity, NewAPIError(ErrCodeRuleViolation, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// BadGateway sends a 502 response when an upstream dependency fails
func BadGateway(c *gin.Context, message string) {
	if message == "" {
		message = "Upstream service failed"
	}
	RespondWithError(c, http.StatusBadGateway, NewAPIError(ErrCodeUpstreamFailure, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceDisabled, message))
}

// RespondDomainError writes the response for a *domain.Error found in err's
// chain and reports whether it did.
func RespondDomainError(c *gin.Context, err error) bool {
	var derr *domain.Error
	if !stderrors.As(err, &derr) {
		return false
	}

	switch derr.Kind {
	case domain.KindInvalidArgument, domain.KindNullArgument:
		code := ErrCodeInvalidInput
		if derr.Kind == domain.KindNullArgument {
			code = ErrCodeMissingField
		}
		var details interface{}
		if derr.Param != "" {
			details = FieldDetails{Param: derr.Param}
		}
		RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(code, derr.Message, details))
	case domain.KindRuleViolation:
		UnprocessableEntity(c, derr.Message)
	case domain.KindForbidden:
		RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeInsufficientPermissions, derr.Message))
	case domain.KindNotFound:
		NotFound(c, derr.Message)
	default:
		InternalError(c, "")
	}
	return true
}
