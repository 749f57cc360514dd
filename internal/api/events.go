package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quackverse/ducktyper/internal/domain"
)

// eventRequest is the POST /api/events payload.
type eventRequest struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Points   int            `json:"points"`
	Metadata map[string]any `json:"metadata"`
}

// handlePostEvent applies a raw XP event. A missing id gets a generated
// one, which makes the call non-idempotent by construction — integration
// producers that care supply their own ids.
func (s *Server) handlePostEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Points < 0 {
		writeError(w, http.StatusBadRequest, domain.ErrNegativePoints.Error())
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Label == "" {
		req.Label = "Manual event"
	}

	result := s.svc.HandleEvent(domain.XPEvent{
		ID:       req.ID,
		Label:    req.Label,
		Points:   req.Points,
		Metadata: req.Metadata,
	})
	writeJSON(w, http.StatusOK, result)
}

// actionRequest is the POST /api/actions/{action} payload. Fields are
// action-specific; unused ones are ignored.
type actionRequest struct {
	Repo       string  `json:"repo"`
	PRNumber   int     `json:"pr_number"`
	Course     string  `json:"course"`
	Module     string  `json:"module"`
	Assignment string  `json:"assignment"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Context    string  `json:"context"`
	Tool       string  `json:"tool"`
	ToolAction string  `json:"tool_action"`
}

// handleAction dispatches to the producer helpers.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var result domain.QuestResult
	switch action := chi.URLParam(r, "action"); action {
	case "github-pr-submitted":
		result = s.svc.HandleGitHubPRSubmission(req.Repo, req.PRNumber)
	case "github-pr-merged":
		result = s.svc.HandleGitHubPRMerged(req.Repo, req.PRNumber)
	case "github-star":
		result = s.svc.HandleGitHubStar(req.Repo)
	case "module-completed":
		result = s.svc.HandleModuleCompletion(req.Course, req.Module)
	case "course-completed":
		result = s.svc.HandleCourseCompletion(req.Course)
	case "assignment-completed":
		result = s.svc.HandleAssignmentCompletion(req.Assignment, req.Score, req.MaxScore)
	case "feedback":
		result = s.svc.HandleFeedbackSubmission(req.Context)
	case "tool-usage":
		result = s.svc.HandleToolUsage(req.Tool, req.ToolAction)
	default:
		writeError(w, http.StatusNotFound, "unknown action: "+action)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
