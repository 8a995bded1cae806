package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/skill-matcher/internal/ranking"
	"github.com/jonathan/skill-matcher/internal/skills"
	"github.com/jonathan/skill-matcher/internal/types"
)

// defaultJobListLimit applies when GET /jobs has no limit
const defaultJobListLimit = 50

// handleMatches ranks the whole catalog against a stored resume by Jaccard
// similarity. Jobs with no overlap are left out.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	resumeID, err := pathUUID(r, "resume_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	matches, err := s.skillGap.MatchJobs(r.Context(), resumeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resume_id": resumeID,
		"matches":   matches,
		"total":     len(matches),
	})
}

// handleMatch scores two ad-hoc skill lists. Non-string entries are dropped.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	mode, err := ranking.ParseScoringMode(req.Mode)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "mode", Message: err.Error()})
		return
	}

	result := ranking.MatchResumeToJob(rawSkills(req.ResumeSkills), rawSkills(req.JobSkills), mode)
	s.jsonResponse(w, http.StatusOK, result)
}

// rawSkills decodes a loosely typed skill list; anything but a list is empty.
func rawSkills(raw json.RawMessage) []string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return skills.CoerceSkills(v)
}

// handleListJobs lists the job catalog, optionally filtered
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if limit == 0 {
		limit = defaultJobListLimit
	}

	query := r.URL.Query()
	q := types.JobListQuery{
		Company:  query.Get("company"),
		Location: query.Get("location"),
		Skill:    query.Get("skill"),
		Limit:    limit,
	}
	if err := q.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"total": len(jobs),
	})
}
