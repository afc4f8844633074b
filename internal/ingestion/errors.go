package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrHTTPRequestFailed is returned when a job posting cannot be downloaded
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be pulled from a page
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrNoText is returned when a document parses but yields no text
	ErrNoText = errors.New("document contains no extractable text")
)

// UnsupportedFormatError is returned for uploads that are not PDF, DOCX, HTML or plain text.
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %s (content type %q)", e.Filename, e.ContentType)
}

// ExtractionError represents a failure reading text out of a document.
type ExtractionError struct {
	Format   Format
	Filename string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract %s text from %s: %s: %v", e.Format, e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract %s text from %s: %s", e.Format, e.Filename, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
