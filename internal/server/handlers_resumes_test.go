package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/types"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567 | github.com/janedoe

SKILLS
JavaScript, React, Node.js, PostgreSQL, Docker

EXPERIENCE
Senior Software Engineer 2019 - 2023
Acme Corp Inc
`

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/resumes", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadResume(t *testing.T) {
	uploadDir := t.TempDir()
	s, store := newTestServer(t, config.Config{UploadDir: uploadDir})
	userID := uuid.New()
	token := signToken(t, testSecret, userID, time.Hour)

	w := do(s, uploadRequest(t, "resume", "jane.txt", []byte(sampleResume)), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resume types.StoredResume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resume))
	assert.Equal(t, userID, resume.OwnerID)
	assert.Equal(t, "jane.txt", resume.OriginalName)
	assert.True(t, strings.HasSuffix(resume.Filename, ".txt"))
	require.NotNil(t, resume.Profile)
	assert.Subset(t, resume.Profile.Skills, []string{"Javascript", "React", "Node.js", "Docker"})
	assert.Equal(t, "jane.doe@example.com", resume.Profile.Contact.Email)

	saved, err := os.ReadFile(filepath.Join(uploadDir, resume.Filename))
	require.NoError(t, err)
	assert.Equal(t, sampleResume, string(saved))
	assert.Len(t, store.resumes, 1)

	// one resume per owner
	w = do(s, uploadRequest(t, "resume", "again.txt", []byte(sampleResume)), token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, store.resumes, 1)
}

func TestUploadResume_Errors(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		filename   string
		content    []byte
		token      bool
		wantStatus int
	}{
		{"no token", "resume", "a.txt", []byte(sampleResume), false, http.StatusUnauthorized},
		{"wrong field", "file", "a.txt", []byte(sampleResume), true, http.StatusBadRequest},
		{"unsupported format", "resume", "a.exe", []byte("MZ"), true, http.StatusUnsupportedMediaType},
		{"corrupt pdf", "resume", "a.pdf", []byte("not a pdf"), true, http.StatusUnprocessableEntity},
		{"too large", "resume", "big.txt", bytes.Repeat([]byte("a"), 4096), true, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store := newTestServer(t, config.Config{MaxUploadBytes: 2048})
			token := ""
			if tt.token {
				token = signToken(t, testSecret, uuid.New(), time.Hour)
			}

			w := do(s, uploadRequest(t, tt.field, tt.filename, tt.content), token)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Empty(t, store.resumes, "nothing should be stored")
		})
	}
}

func TestUploadResume_StoreFailure(t *testing.T) {
	s, store := newTestServer(t, config.Config{})
	store.err = errStoreDown

	w := do(s, uploadRequest(t, "resume", "a.txt", []byte(sampleResume)), signToken(t, testSecret, uuid.New(), time.Hour))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestListAndGetResumes(t *testing.T) {
	s, store := newTestServer(t, config.Config{})
	owner := uuid.New()
	mine := store.addResume(owner, "Go", "SQL")
	theirs := store.addResume(uuid.New(), "Java")
	token := signToken(t, testSecret, owner, time.Hour)

	w := do(s, httptest.NewRequest(http.MethodGet, "/resumes", nil), token)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Resumes []types.ResumeSummary `json:"resumes"`
		Total   int                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, mine.ID, list.Resumes[0].ID)
	assert.Equal(t, 2, list.Resumes[0].SkillsCount)

	w = do(s, httptest.NewRequest(http.MethodGet, "/resumes/"+mine.ID.String(), nil), token)
	require.Equal(t, http.StatusOK, w.Code)
	var got types.StoredResume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills())

	// another owner's resume looks missing
	w = do(s, httptest.NewRequest(http.MethodGet, "/resumes/"+theirs.ID.String(), nil), token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(s, httptest.NewRequest(http.MethodGet, "/resumes/not-a-uuid", nil), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, httptest.NewRequest(http.MethodGet, "/resumes", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteResume(t *testing.T) {
	uploadDir := t.TempDir()
	s, store := newTestServer(t, config.Config{UploadDir: uploadDir})
	owner := uuid.New()
	mine := store.addResume(owner, "Go")
	theirs := store.addResume(uuid.New(), "Java")
	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, mine.Filename), []byte("x"), 0o644))
	token := signToken(t, testSecret, owner, time.Hour)

	w := do(s, httptest.NewRequest(http.MethodDelete, "/resumes/"+theirs.ID.String(), nil), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, store.resumes, theirs.ID)

	w = do(s, httptest.NewRequest(http.MethodDelete, "/resumes/"+mine.ID.String(), nil), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, store.resumes, mine.ID)
	_, err := os.Stat(filepath.Join(uploadDir, mine.Filename))
	assert.True(t, os.IsNotExist(err))

	w = do(s, httptest.NewRequest(http.MethodDelete, "/resumes/"+mine.ID.String(), nil), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"limit=5", 5, false},
		{"limit=0", 0, false},
		{"limit=-1", 0, true},
		{"limit=ten", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jobs?"+tt.query, nil)
			got, err := queryInt(req, "limit")
			if tt.wantErr {
				assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
