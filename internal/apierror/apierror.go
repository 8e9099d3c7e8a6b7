package apierror

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	ErrNotFound          ErrorCode = "NOT_FOUND"
	ErrConflict          ErrorCode = "CONFLICT"
	ErrBadRequest        ErrorCode = "BAD_REQUEST"
	ErrInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrResolution        ErrorCode = "RESOLUTION_ERROR"
	ErrUnsupportedStatus ErrorCode = "UNSUPPORTED_STATUS"
	ErrInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrInvalidOutcome    ErrorCode = "INVALID_OUTCOME"
	ErrUnauthenticated   ErrorCode = "UNAUTHENTICATED"
	ErrNotOwner          ErrorCode = "NOT_OWNER"
	ErrNotParticipant    ErrorCode = "NOT_PARTICIPANT"
	ErrForbiddenOutcome  ErrorCode = "FORBIDDEN_OUTCOME"
	ErrInvalidLitterSize ErrorCode = "INVALID_LITTER_SIZE"
	ErrNotesRequired     ErrorCode = "NOTES_REQUIRED"
	ErrInternalServer    ErrorCode = "INTERNAL_SERVER_ERROR"
)

type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	logrus.Error(details)
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// IsCode reports whether err is an APIError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	apiErr, ok := err.(APIError)
	return ok && apiErr.Code == code
}

func MapErrorToHTTPStatus(err error) int {
	if apiErr, ok := err.(APIError); ok {
		switch apiErr.Code {
		case ErrNotFound:
			return http.StatusNotFound
		case ErrConflict, ErrInvalidTransition:
			return http.StatusConflict
		case ErrBadRequest, ErrInvalidInput, ErrUnsupportedStatus, ErrInvalidOutcome,
			ErrInvalidLitterSize, ErrNotesRequired:
			return http.StatusBadRequest
		case ErrUnauthenticated:
			return http.StatusUnauthorized
		case ErrNotOwner, ErrNotParticipant, ErrForbiddenOutcome:
			return http.StatusForbidden
		case ErrResolution:
			return http.StatusUnprocessableEntity
		case ErrInternalServer:
			return http.StatusInternalServerError
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
