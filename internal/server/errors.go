package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// requestFields maps AnalyzeRequest struct fields to their JSON names.
var requestFields = map[string]string{
	"Resume": "resume",
	"JD":     "jd",
	"JDURL":  "jd_url",
}

// newValidationError converts the first validator failure into an ErrValidation.
func newValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "request", Message: err.Error()}
	}

	fe := fieldErrs[0]
	field, ok := requestFields[fe.Field()]
	if !ok {
		field = fe.Field()
	}

	var message string
	switch fe.Tag() {
	case "max":
		message = "must be at most " + fe.Param() + " characters"
	case "url", "startswith":
		message = "must be an http or https URL"
	default:
		message = "failed " + fe.Tag() + " check"
	}
	return &ErrValidation{Field: field, Message: message}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		maxBytesErr   *http.MaxBytesError
		unsupported   *ingestion.UnsupportedFormatError
		extractionErr *ingestion.ExtractionError
		fetchErr      *fetch.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractionErr), errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		if fetchErr.InvalidURL() || fetchErr.BlockedHost() {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
