package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_ToJSON(t *testing.T) {
	metadata := &Metadata{
		Source:    "s3://resumes/jane.pdf",
		Format:    FormatPDF,
		PageCount: 2,
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, "s3://resumes/jane.pdf", decoded["source"])
	assert.Equal(t, "pdf", decoded["format"])
	assert.Equal(t, float64(2), decoded["pages"])
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash([]byte("test content"))
	hash2 := computeHash([]byte("different content"))

	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash([]byte("test content")))
}

func TestNewMetadata(t *testing.T) {
	raw := []byte("resume body")
	doc := &Document{Text: "resume body", PageCount: 1, Format: FormatText}

	metadata := NewMetadata(raw, "resume.txt", doc)

	assert.Equal(t, "resume.txt", metadata.Source)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Equal(t, 1, metadata.PageCount)
	assert.Equal(t, computeHash(raw), metadata.Hash)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}

func TestNewMetadata_NoDocument(t *testing.T) {
	metadata := NewMetadata([]byte("x"), "", nil)

	assert.Empty(t, metadata.Source)
	assert.Empty(t, metadata.Format)
	assert.Len(t, metadata.Hash, 64)
}
