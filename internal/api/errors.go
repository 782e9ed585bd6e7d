package api

import (
	"errors"
	"net/http"

	"github.com/mediahub/mediahub-api/internal/api/middleware"
	"github.com/mediahub/mediahub-api/internal/api/shared"
	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/service"
	"github.com/mediahub/mediahub-api/internal/service/auth"
	"github.com/mediahub/mediahub-api/internal/store"
)

// Client-facing messages.
const (
	msgValidationFailed   = "Validation failed"
	msgInvalidRequest     = "Invalid request format"
	msgMissingAuth        = "Authorization header required"
	msgInvalidToken       = "Invalid token"
	msgExpiredToken       = "Token expired"
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Unauthorized"
	msgForbidden          = "Forbidden"
	msgNotFound           = "Not Found"
	msgMethodNotAllowed   = "Method Not Allowed"
	msgUsernameExists     = "Username already exists"
	msgEmailExists        = "Email already exists"
	msgConflict           = "Resource already exists"
	msgInvalidEntity      = "Invalid entity data"
	msgPayloadTooLarge    = "Payload too large"
	msgInternal           = "Internal server error"
)

// domainValidationErrors are entity invariant failures that reach the API
// when a request slipped past the request rules.
var domainValidationErrors = []error{
	domain.ErrValidation,
	domain.ErrInvalidID,
	domain.ErrEmptyUsername,
	domain.ErrEmptyEmail,
	domain.ErrEmptyHashedPassword,
	domain.ErrInvalidRole,
	domain.ErrEmptyFilename,
	domain.ErrEmptyTitle,
	domain.ErrEmptyMediaType,
	domain.ErrInvalidOwner,
	domain.ErrInvalidSize,
	domain.ErrEmptyItemName,
}

var _ middleware.ErrorHandler = HandleAPIError

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var maxErr *http.MaxBytesError

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Request errors
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, shared.ErrInvalidRequestBody),
		errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrUnsupportedMediaType),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error, including store.ErrDataAccess
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Raw error text never reaches the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgInternal
	}

	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxErr):
		return msgPayloadTooLarge
	case errors.Is(err, shared.ErrInvalidRequestBody):
		return msgInvalidRequest
	case errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrUnsupportedMediaType),
		errors.Is(err, auth.ErrPasswordTooLong),
		isDomainValidationError(err):
		return msgValidationFailed
	case errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidEntity

	case errors.Is(err, auth.ErrMissingToken):
		return msgMissingAuth
	case errors.Is(err, auth.ErrExpiredToken):
		return msgExpiredToken
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return msgInvalidToken
	case errors.Is(err, auth.ErrInvalidCredentials):
		return msgInvalidCredentials
	case errors.Is(err, domain.ErrUnauthorized):
		return msgUnauthorized

	case errors.Is(err, service.ErrForbidden):
		return msgForbidden

	case errors.Is(err, store.ErrNotFound):
		return msgNotFound

	case errors.Is(err, store.ErrUsernameExists):
		return msgUsernameExists
	case errors.Is(err, store.ErrEmailExists):
		return msgEmailExists
	case errors.Is(err, store.ErrDuplicate):
		return msgConflict

	default:
		return msgInternal
	}
}

// HandleAPIError writes the response for err. It is the single terminal
// stage for every failure in the API, middleware included.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	body := shared.ErrorResponse{Message: GetSafeErrorMessage(err)}

	if fieldErrors := validationFailures(err); fieldErrors != nil {
		body.Message = msgValidationFailed
		body.Errors = fieldErrors
	}

	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		body.IDs = map[string]string{nf.IDField(): nf.ID}
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, body, err, opts...)
}

// validationFailures returns the per-field failures carried by err, if any.
// Upload and password errors raised below the request layer are reported
// against the field the client sent.
func validationFailures(err error) []shared.FieldError {
	var verr *shared.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Errors
	case errors.Is(err, service.ErrEmptyFile):
		return []shared.FieldError{{Field: "file", Rule: "required", Message: "file must not be empty"}}
	case errors.Is(err, service.ErrUnsupportedMediaType):
		return []shared.FieldError{{Field: "file", Rule: "mimetype", Message: "file type is not supported"}}
	case errors.Is(err, auth.ErrPasswordTooLong):
		return []shared.FieldError{{Field: "password", Rule: "max", Message: "password must be at most 72 bytes long"}}
	default:
		return nil
	}
}

func isDomainValidationError(err error) bool {
	for _, target := range domainValidationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusNotFound, shared.MessageResponse{Message: msgNotFound})
}

// MethodNotAllowed answers a known route used with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusMethodNotAllowed, shared.MessageResponse{Message: msgMethodNotAllowed})
}
