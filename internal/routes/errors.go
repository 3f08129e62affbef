package routes

import (
	"errors"
	"net/http"

	"pantry-timeclock/internal/auth"
	"pantry-timeclock/internal/timeclock"
)

// HTTPError represents an error with an associated HTTP status code and user message
type HTTPError struct {
	Err        error    // The underlying error
	StatusCode int      // HTTP status code
	Message    string   // User-friendly message
	StopCodes  []string // Optional stop codes for client-side handling
	Internal   bool     // Whether this is an internal error (hide details from user)
}

// ErrorInfo contains error metadata for user-facing errors
type ErrorInfo struct {
	Message   string   // User-friendly message
	StopCodes []string // Optional stop codes for client-side application
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(statusCode int, err error, message string, stopCodes ...string) *HTTPError {
	return &HTTPError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
		StopCodes:  stopCodes,
		Internal:   statusCode >= 500,
	}
}

// Routes-specific errors (that don't conflict with other packages)
var (
	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidRequest   = errors.New("invalid request")
	ErrMissingParameter = errors.New("missing required parameter")

	// Internal errors
	ErrInternalServer = errors.New("internal server error")
)

// errorStatusMap maps errors to HTTP status codes
var errorStatusMap = map[error]int{
	// 400 Bad Request
	ErrInvalidRequest:              http.StatusBadRequest,
	ErrMissingParameter:            http.StatusBadRequest,
	timeclock.ErrInvalidArgument:   http.StatusBadRequest,
	timeclock.ErrInvalidTransition: http.StatusBadRequest,

	// 401 Unauthorized
	ErrUnauthorized:           http.StatusUnauthorized,
	auth.ErrNonValidToken:     http.StatusUnauthorized,
	timeclock.ErrInvalidToken: http.StatusUnauthorized,

	// 403 Forbidden
	timeclock.ErrNotAuthorized: http.StatusForbidden,

	// 404 Not Found
	timeclock.ErrNotFound: http.StatusNotFound,

	// 409 Conflict
	timeclock.ErrTokenAlreadyUsed: http.StatusConflict,
	timeclock.ErrShiftConflict:    http.StatusConflict,

	// 410 Gone
	timeclock.ErrTokenExpired: http.StatusGone,

	// 500 Internal Server Error
	ErrInternalServer: http.StatusInternalServerError,
}

// errorInfoMap maps errors to user-friendly messages and optional stop codes
var errorInfoMap = map[error]ErrorInfo{
	ErrUnauthorized: {
		Message:   "Authentication required",
		StopCodes: []string{"AUTH_REQUIRED"},
	},
	auth.ErrNonValidToken: {
		Message:   "Invalid or expired authentication token",
		StopCodes: []string{"AUTH_INVALID_TOKEN"},
	},

	timeclock.ErrNotAuthorized: {
		Message:   "You don't have permission to perform this action",
		StopCodes: []string{"FORBIDDEN"},
	},
	timeclock.ErrInvalidToken: {
		Message:   "Invalid QR code",
		StopCodes: []string{"CLOCK_TOKEN_INVALID"},
	},
	timeclock.ErrTokenExpired: {
		Message:   "Expired QR code",
		StopCodes: []string{"CLOCK_TOKEN_EXPIRED"},
	},
	timeclock.ErrTokenAlreadyUsed: {
		Message:   "This QR code has already been used",
		StopCodes: []string{"CLOCK_TOKEN_USED"},
	},
	timeclock.ErrShiftConflict: {
		Message:   "Another scan is already being processed for this shift",
		StopCodes: []string{"SHIFT_CONFLICT"},
	},
	timeclock.ErrInvalidTransition: {
		Message:   "Shift status change not allowed",
		StopCodes: []string{"INVALID_TRANSITION"},
	},
	timeclock.ErrNotFound: {
		Message:   "Not found",
		StopCodes: []string{"NOT_FOUND"},
	},
	timeclock.ErrInvalidArgument: {
		Message:   "Invalid parameter value",
		StopCodes: []string{"INVALID_PARAMETER"},
	},

	ErrInvalidRequest: {
		Message:   "Invalid request format",
		StopCodes: []string{"INVALID_REQUEST"},
	},
	ErrMissingParameter: {
		Message:   "Required parameter is missing",
		StopCodes: []string{"MISSING_PARAMETER"},
	},

	// Internal (no stop codes for internal errors)
	ErrInternalServer: {
		Message: "An internal error occurred",
	},
}

// GetErrorStatus returns the HTTP status code for an error
func GetErrorStatus(err error) int {
	// Check if it's already an HTTPError
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	// Check direct match
	if status, ok := errorStatusMap[err]; ok {
		return status
	}

	// Check if error wraps a known error
	for knownErr, status := range errorStatusMap {
		if errors.Is(err, knownErr) {
			return status
		}
	}

	// Default to 500 Internal Server Error
	return http.StatusInternalServerError
}

// GetErrorInfo returns error information including message and stop codes
func GetErrorInfo(err error) ErrorInfo {
	// Check if it's an HTTPError with custom info
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{
			Message:   httpErr.Message,
			StopCodes: httpErr.StopCodes,
		}
	}

	// Check direct match
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Check if error wraps a known error
	for knownErr, info := range errorInfoMap {
		if errors.Is(err, knownErr) {
			return info
		}
	}

	// For unknown errors, return a generic message for 5xx, specific for others
	status := GetErrorStatus(err)
	if status >= 500 {
		return ErrorInfo{Message: "An internal error occurred"}
	}
	return ErrorInfo{Message: err.Error()}
}

// GetErrorMessage returns a user-friendly message for an error
func GetErrorMessage(err error) string {
	return GetErrorInfo(err).Message
}
