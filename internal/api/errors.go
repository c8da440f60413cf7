package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/javohir-a/kutubxona/internal/api/shared"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/service/auth"
	"github.com/javohir-a/kutubxona/internal/store"
)

// requiredFieldMessage is the message attached to a missing required field.
const requiredFieldMessage = "This field is required."

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Refresh token failures surface as 400 on the refresh endpoint
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrRevokedRefreshToken):
		return http.StatusBadRequest

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Uniqueness and business-rule conflicts surface as validation failures
	case store.IsDuplicateError(err):
		return http.StatusBadRequest

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// FieldErrors converts an error into the envelope's field name to message
// list mapping. It understands request-payload validation errors from the
// validator package and domain ValidationErrors. Returns nil when the error
// carries no field information.
func FieldErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			fieldErrors[field] = append(fieldErrors[field], validationMessage(fe))
		}
		return fieldErrors
	}

	var dverr *domain.ValidationError
	if errors.As(err, &dverr) {
		return map[string][]string{dverr.Field: {dverr.Message}}
	}

	return nil
}

// validationMessage renders a single validator failure as a user-facing
// message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return requiredFieldMessage
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	default:
		return "This field is invalid."
	}
}

// HandleAPIError writes the appropriate envelope for err. Field-scoped
// failures produce a 400 with the errors mapping; everything else produces a
// message-only envelope with a mapped status code. notFoundMessage overrides
// the message on 404 so handlers can keep the resource-specific wording.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	if fieldErrors := FieldErrors(err); fieldErrors != nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, fieldErrors)
		return
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusNotFound && notFoundMessage != "" {
		shared.RespondWithError(w, r, status, notFoundMessage)
		return
	}
	shared.RespondWithErrorAndLog(w, r, status, safeErrorMessage(status), err)
}

// safeErrorMessage returns a sanitized message for errors that carry no
// field information and no resource-specific wording.
func safeErrorMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Topilmadi!"
	case http.StatusUnauthorized:
		return "Authentication credentials were not provided or are invalid"
	case http.StatusBadRequest:
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}
