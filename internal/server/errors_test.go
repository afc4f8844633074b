package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "jd_url", Message: "must be an http or https URL"}
	assert.Equal(t, "validation error: jd_url - must be an http or https URL", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &ErrValidation{Field: "resume", Message: "too long"}, http.StatusBadRequest},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"unsupported upload", &ingestion.UnsupportedFormatError{Filename: "a.png"}, http.StatusUnsupportedMediaType},
		{"unreadable upload", &ingestion.ExtractionError{Format: ingestion.FormatPDF, Message: "bad"}, http.StatusUnprocessableEntity},
		{"posting without text", fmt.Errorf("%w: %w", ingestion.ErrContentExtractionFailed, ingestion.ErrNoText), http.StatusUnprocessableEntity},
		{"invalid posting url", fmt.Errorf("%w: %w", ingestion.ErrHTTPRequestFailed, &fetch.Error{URL: "x", Message: "invalid URL"}), http.StatusBadRequest},
		{"blocked posting host", fmt.Errorf("%w: %w", ingestion.ErrHTTPRequestFailed, &fetch.Error{URL: "x", Message: "destination not allowed", Cause: fetch.ErrBlockedAddress}), http.StatusBadRequest},
		{"upstream failure", fmt.Errorf("%w: %w", ingestion.ErrHTTPRequestFailed, &fetch.Error{URL: "x", Message: "HTTP status 500", StatusCode: 500}), http.StatusBadGateway},
		{"timeout", fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestNewValidationError(t *testing.T) {
	tests := []struct {
		name      string
		req       types.AnalyzeRequest
		wantField string
	}{
		{"jd url", types.AnalyzeRequest{JDURL: "example"}, "jd_url"},
		{"jd too long", types.AnalyzeRequest{JD: string(make([]rune, types.MaxDocumentChars+1))}, "jd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := tt.req.Validate()
			require.Error(t, verr)

			var validationErr *ErrValidation
			require.ErrorAs(t, newValidationError(verr), &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.NotEmpty(t, validationErr.Message)
		})
	}
}

func TestClientMessage(t *testing.T) {
	err := errors.New("database password is hunter2")
	assert.Equal(t, "internal server error", clientMessage(http.StatusInternalServerError, err))
	assert.Equal(t, err.Error(), clientMessage(http.StatusBadGateway, err))
}
