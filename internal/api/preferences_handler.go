// internal/api/preferences_handler.go
package api

import (
	"net/http"

	"github.com/mediquiz/backend/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type PreferencesResponse struct {
	SelectedExamID string   `json:"selected_exam_id"`
	SelectedCount  int      `json:"selected_count"`
	SubjectFilters []string `json:"subject_filters"`
}

type UpdatePreferencesRequest struct {
	SelectedExamID *string   `json:"selected_exam_id,omitempty"`
	SelectedCount  *int      `json:"selected_count,omitempty"`
	SubjectFilters *[]string `json:"subject_filters,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /preferences
func (h *Handler) getPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	exam := h.quiz.CurrentExam(ctx)
	count := h.quiz.SelectedCount(ctx)
	filters, err := h.prefs.SelectedSubjectFilters(ctx)
	if h.handleServiceError(w, err, "preferences") {
		return
	}
	if filters == nil {
		filters = []string{}
	}

	respondJSON(w, http.StatusOK, PreferencesResponse{
		SelectedExamID: exam.ID,
		SelectedCount:  count,
		SubjectFilters: filters,
	})
}

// PUT /preferences
//
// Keys are updated independently; absent fields are left untouched.
// Selecting an exam also makes sure its statistics row exists, so the
// statistics screen always has a row to observe.
func (h *Handler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdatePreferencesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.SelectedExamID != nil {
		if _, ok := question.ExamByID(*req.SelectedExamID); !ok {
			respondError(w, http.StatusBadRequest, "unknown exam id")
			return
		}
		if h.handleServiceError(w, h.prefs.SetSelectedExamID(ctx, *req.SelectedExamID), "preferences") {
			return
		}
		h.statistics.EnsureStatisticsRow(ctx, *req.SelectedExamID)
	}

	if req.SelectedCount != nil {
		if *req.SelectedCount <= 0 {
			respondError(w, http.StatusBadRequest, "selected_count must be positive")
			return
		}
		if h.handleServiceError(w, h.prefs.SetSelectedCount(ctx, *req.SelectedCount), "preferences") {
			return
		}
	}

	if req.SubjectFilters != nil {
		if h.handleServiceError(w, h.prefs.SetSelectedSubjectFilters(ctx, *req.SubjectFilters), "preferences") {
			return
		}
	}

	h.getPreferences(w, r)
}
