package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Metadata describes where an ingested document came from.
type Metadata struct {
	Source     string `json:"source,omitempty"`   // file path, when read from disk
	URL        string `json:"url,omitempty"`      // posting URL, when fetched
	Platform   string `json:"platform,omitempty"` // detected job board
	Format     Format `json:"format,omitempty"`
	Rendered   bool   `json:"rendered,omitempty"` // page was rendered in a headless browser
	Timestamp  string `json:"timestamp"`          // RFC3339
	Hash       string `json:"hash"`               // SHA256 hex digest of the cleaned text
	Characters int    `json:"characters"`
}

// NewMetadata creates a new Metadata instance with current timestamp.
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:        url,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		Characters: utf8.RuneCountInString(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
