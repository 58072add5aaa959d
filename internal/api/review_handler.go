// internal/api/review_handler.go
package api

import (
	"net/http"
	"strconv"

	"github.com/mediquiz/backend/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type ReviewableQuestionResponse struct {
	ID                  int      `json:"id"`
	Text                string   `json:"text"`
	Answers             []string `json:"answers"`
	CorrectAnswer       string   `json:"correct_answer"`
	Subject             string   `json:"subject"`
	LastIncorrectAnswer *string  `json:"last_incorrect_answer"`
	IncorrectCount      int      `json:"incorrect_count"`
}

type LogEntryResponse struct {
	ID         int64  `json:"id"`
	UserAnswer string `json:"user_answer"`
	Timestamp  int64  `json:"timestamp"`
}

type HistoryEntryResponse struct {
	ID         int64  `json:"id"`
	QuestionID int    `json:"question_id"`
	UserAnswer string `json:"user_answer"`
	Timestamp  int64  `json:"timestamp"`
}

type QuestionWithLogsResponse struct {
	ID            int                `json:"id"`
	Text          string             `json:"text"`
	Answers       []string           `json:"answers"`
	CorrectAnswer string             `json:"correct_answer"`
	Subject       string             `json:"subject"`
	Logs          []LogEntryResponse `json:"logs"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /exams/{examID}/review
//
// The review list is derived on every read; the log-changed broadcast on the
// statistics service is the signal that a cached copy went stale.
func (h *Handler) listReviewableQuestions(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("examID")
	if _, ok := question.ExamByID(examID); !ok {
		respondError(w, http.StatusNotFound, "exam not found")
		return
	}

	reviewable, err := h.statistics.ReviewableQuestions(r.Context(), examID)
	if h.handleServiceError(w, err, "review list") {
		return
	}

	out := make([]ReviewableQuestionResponse, 0, len(reviewable))
	for _, rq := range reviewable {
		out = append(out, ReviewableQuestionResponse{
			ID:                  rq.Question.ID,
			Text:                rq.Question.Text,
			Answers:             rq.Question.Answers,
			CorrectAnswer:       rq.Question.CorrectAnswer,
			Subject:             rq.Question.Subject.String(),
			LastIncorrectAnswer: rq.LastIncorrectAnswer,
			IncorrectCount:      rq.IncorrectCount,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /review/questions/{questionID}
func (h *Handler) getQuestionWithLogs(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(r.PathValue("questionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	detail, err := h.statistics.QuestionWithLogs(r.Context(), questionID)
	if h.handleServiceError(w, err, "question") {
		return
	}

	logs := make([]LogEntryResponse, 0, len(detail.Logs))
	for _, entry := range detail.Logs {
		logs = append(logs, LogEntryResponse{ID: entry.ID, UserAnswer: entry.UserAnswer, Timestamp: entry.Timestamp})
	}
	respondJSON(w, http.StatusOK, QuestionWithLogsResponse{
		ID:            detail.Question.ID,
		Text:          detail.Question.Text,
		Answers:       detail.Question.Answers,
		CorrectAnswer: detail.Question.CorrectAnswer,
		Subject:       detail.Question.Subject.String(),
		Logs:          logs,
	})
}

// DELETE /review/questions/{questionID}/logs
func (h *Handler) clearHistoryForQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(r.PathValue("questionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	h.statistics.ClearLogsForQuestion(r.Context(), questionID)
	w.WriteHeader(http.StatusNoContent)
}

// GET /review/logs
func (h *Handler) listAllHistory(w http.ResponseWriter, r *http.Request) {
	logs, err := h.statistics.AllLogs(r.Context())
	if h.handleServiceError(w, err, "history") {
		return
	}

	out := make([]HistoryEntryResponse, 0, len(logs))
	for _, entry := range logs {
		out = append(out, HistoryEntryResponse{
			ID:         entry.ID,
			QuestionID: entry.QuestionID,
			UserAnswer: entry.UserAnswer,
			Timestamp:  entry.Timestamp,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// DELETE /review/logs
func (h *Handler) clearAllHistory(w http.ResponseWriter, r *http.Request) {
	h.statistics.ClearAllLogs(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
