package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/skill-matcher/internal/server/middleware"
	"github.com/jonathan/skill-matcher/internal/types"
)

// handleSkillGapJob compares a stored resume with a single job
func (s *Server) handleSkillGapJob(w http.ResponseWriter, r *http.Request) {
	resumeID, err := pathUUID(r, "resume_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jobID, err := pathUUID(r, "job_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.skillGap.SkillGapForJob(r.Context(), resumeID, jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSkillGapMultiJob aggregates a stored resume against the catalog.
// limit defaults to the configured job count and is capped at the maximum.
func (s *Server) handleSkillGapMultiJob(w http.ResponseWriter, r *http.Request) {
	resumeID, err := pathUUID(r, "resume_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	logAnalysis(r, "multi-job", resumeID)
	insight, err := s.skillGap.MultiJob(r.Context(), resumeID, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, insight)
}

// handleSkillGapJobs aggregates a stored resume against an explicit job list.
// Any job that cannot be found fails the whole request.
func (s *Server) handleSkillGapJobs(w http.ResponseWriter, r *http.Request) {
	resumeID, err := pathUUID(r, "resume_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.JobIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	jobIDs := make([]uuid.UUID, 0, len(req.JobIDs))
	for _, raw := range req.JobIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.writeError(w, r, &ErrValidation{Field: "job_ids", Message: "must contain valid UUIDs"})
			return
		}
		jobIDs = append(jobIDs, id)
	}

	logAnalysis(r, "jobs", resumeID)
	insight, err := s.skillGap.SkillGapForJobs(r.Context(), resumeID, jobIDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, insight)
}

// handleRecommendations derives skill recommendations for a stored resume
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	resumeID, err := pathUUID(r, "resume_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	logAnalysis(r, "recommendations", resumeID)
	set, err := s.skillGap.Recommendations(r.Context(), resumeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, set)
}

// logAnalysis records who asked for an aggregate analysis.
func logAnalysis(r *http.Request, kind string, resumeID uuid.UUID) {
	requester := "anonymous"
	if userID, err := middleware.GetUserID(r); err == nil {
		requester = userID.String()
	}
	log.Printf("[skill-gap] %s analysis for resume %s requested by %s", kind, resumeID, requester)
}
