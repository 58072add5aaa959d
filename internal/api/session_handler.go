// internal/api/session_handler.go
package api

import (
	"net/http"

	"github.com/mediquiz/backend/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type PrepareQuizRequest struct {
	// ReviewIDs is a comma-separated question id list. Any positive ids in
	// it switch the session into review mode.
	ReviewIDs      string `json:"review_ids,omitempty"`
	UseAllSubjects bool   `json:"use_all_subjects"`
}

type SessionQuestion struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
	Subject string   `json:"subject"`
}

type SessionResponse struct {
	ID              string            `json:"id"`
	ExamID          string            `json:"exam_id"`
	Questions       []SessionQuestion `json:"questions"`
	SelectedAnswers []*string         `json:"selected_answers"`
	CurrentIndex    int               `json:"current_index"`
	ReviewMode      bool              `json:"review_mode"`
	Submitted       bool              `json:"submitted"`
}

type SelectAnswerRequest struct {
	Index  int    `json:"index"`
	Answer string `json:"answer"`
}

type MoveToRequest struct {
	Index int `json:"index"`
}

type ApplyFiltersRequest struct {
	Subjects []string `json:"subjects"`
}

type SubmitQuizResponse struct {
	CorrectAnswers int  `json:"correct_answers"`
	TotalQuestions int  `json:"total_questions"`
	ReviewMode     bool `json:"review_mode"`
}

func sessionResponse(id string, s *quiz.Session) SessionResponse {
	questions := make([]SessionQuestion, 0, len(s.Questions))
	for _, q := range s.Questions {
		questions = append(questions, SessionQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Answers: q.Answers,
			Subject: q.Subject.String(),
		})
	}
	return SessionResponse{
		ID:              id,
		ExamID:          s.ExamID,
		Questions:       questions,
		SelectedAnswers: s.SelectedAnswers(),
		CurrentIndex:    s.Index(),
		ReviewMode:      s.Review,
		Submitted:       s.Submitted,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) prepareQuiz(w http.ResponseWriter, r *http.Request) {
	var req PrepareQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, session, err := h.quiz.PrepareQuiz(r.Context(), req.ReviewIDs, req.UseAllSubjects)
	if h.handleServiceError(w, err, "session") {
		return
	}

	// An empty question set is a valid session; the client renders the
	// "no questions" state.
	respondJSON(w, http.StatusCreated, sessionResponse(id, session))
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionID")
	session, err := h.quiz.Session(id)
	if h.handleServiceError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse(id, session))
}

// POST /sessions/{sessionID}/answers
func (h *Handler) selectAnswer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionID")

	var req SelectAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if h.handleServiceError(w, h.quiz.SelectAnswer(id, req.Index, req.Answer), "session") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /sessions/{sessionID}/position
func (h *Handler) moveTo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionID")

	var req MoveToRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if h.handleServiceError(w, h.quiz.MoveTo(id, req.Index), "session") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /sessions/{sessionID}/filters
func (h *Handler) applyFilters(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionID")

	var req ApplyFiltersRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if h.handleServiceError(w, h.quiz.ApplySubjectFilters(r.Context(), id, req.Subjects), "session") {
		return
	}

	session, err := h.quiz.Session(id)
	if h.handleServiceError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse(id, session))
}

// POST /sessions/{sessionID}/submit
func (h *Handler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionID")

	result, err := h.quiz.Submit(r.Context(), id)
	if h.handleServiceError(w, err, "session") {
		return
	}

	session, err := h.quiz.Session(id)
	if h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, SubmitQuizResponse{
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		ReviewMode:     session.Review,
	})
}

// POST /sessions/{sessionID}/retake
func (h *Handler) retakeQuiz(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionID")

	session, err := h.quiz.Retake(r.Context(), id)
	if h.handleServiceError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse(id, session))
}

// DELETE /sessions/{sessionID}
func (h *Handler) dropSession(w http.ResponseWriter, r *http.Request) {
	h.quiz.Drop(r.PathValue("sessionID"))
	w.WriteHeader(http.StatusNoContent)
}
