package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes a converted document
type Metadata struct {
	Source    string `json:"source,omitempty"` // file path, URL or s3:// location
	Format    Format `json:"format"`
	PageCount int    `json:"pages"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw bytes
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(raw []byte, source string, doc *Document) *Metadata {
	m := &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(raw),
	}
	if doc != nil {
		m.Format = doc.Format
		m.PageCount = doc.PageCount
	}
	return m
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
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
