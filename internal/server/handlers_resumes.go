package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/server/middleware"
)

// resumeFormField is the multipart field carrying the uploaded document
const resumeFormField = "resume"

// handleUploadResume converts, extracts and stores the caller's resume.
// An owner keeps at most one resume; a second upload is rejected with 409.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds the %d byte upload limit", s.maxUploadBytes))
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile(resumeFormField)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	existing, err := s.store.GetResumeByOwner(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if existing != nil {
		s.writeError(w, r, db.ErrResumeExists)
		return
	}

	profile, err := s.extractor.ExtractDocument(data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	storedName := uploadName(header.Filename)
	if s.uploadDir != "" {
		if err := saveUpload(s.uploadDir, storedName, data); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	resume, err := s.store.CreateResume(r.Context(), &db.ResumeCreateInput{
		OwnerID:      userID,
		Filename:     storedName,
		OriginalName: header.Filename,
		Profile:      profile,
	})
	if err != nil {
		if s.uploadDir != "" {
			_ = os.Remove(filepath.Join(s.uploadDir, storedName))
		}
		s.writeError(w, r, err)
		return
	}

	log.Printf("[resumes] stored %s for %s: %d skills, %d pages",
		resume.ID, userID, len(profile.Skills), profile.Metadata.PageCount)
	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleListResumes lists the caller's resumes, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resumes, err := s.store.ListResumesByOwner(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"total":   len(resumes),
	})
}

// handleGetResume returns one of the caller's resumes with its parsed profile.
// Resumes owned by someone else are reported as missing.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if resume == nil || resume.OwnerID != userID {
		s.writeError(w, r, &ErrNotFound{Resource: "resume", ID: id.String()})
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume deletes one of the caller's resumes
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	deleted, err := s.store.DeleteResume(r.Context(), id, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, &ErrNotFound{Resource: "resume", ID: id.String()})
		return
	}

	if s.uploadDir != "" && resume != nil && resume.Filename != "" {
		if err := os.Remove(filepath.Join(s.uploadDir, resume.Filename)); err != nil && !os.IsNotExist(err) {
			log.Printf("[resumes] failed to remove upload %s: %v", resume.Filename, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Resume deleted",
		"id":      id.String(),
	})
}

// uploadName gives an upload a unique stored name that keeps its extension.
func uploadName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}

func saveUpload(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}
	return nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a valid UUID"}
	}
	return id, nil
}

// queryInt parses an optional non-negative integer query parameter. Missing means 0.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: name, Message: "must be a non-negative integer"}
	}
	return n, nil
}
