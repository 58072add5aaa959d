// internal/api/exam_handler.go
package api

import (
	"net/http"

	"github.com/mediquiz/backend/internal/domain/question"
	"github.com/mediquiz/backend/internal/domain/stats"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExamResponse struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Subjects    []string `json:"subjects"`
}

type StatisticsResponse struct {
	ExamID                string                             `json:"exam_id"`
	TotalQuizzesCompleted int                                `json:"total_quizzes_completed"`
	SubjectStats          map[string]stats.SubjectStatDetail `json:"subject_stats"`
	TotalAnswered         int                                `json:"total_answered"`
	TotalCorrect          int                                `json:"total_correct"`
}

func examResponse(e question.Exam) ExamResponse {
	subjects := make([]string, 0, len(e.Subjects))
	for _, s := range e.Subjects {
		subjects = append(subjects, s.String())
	}
	return ExamResponse{ID: e.ID, DisplayName: e.DisplayName, Subjects: subjects}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /exams
func (h *Handler) listExams(w http.ResponseWriter, r *http.Request) {
	exams := question.Exams()
	out := make([]ExamResponse, 0, len(exams))
	for _, e := range exams {
		out = append(out, examResponse(e))
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /exams/{examID}/subjects
//
// Returns the subjects that actually occur in the exam's stored catalog,
// which is what the filter screen offers.
func (h *Handler) listExamSubjects(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("examID")
	if _, ok := question.ExamByID(examID); !ok {
		respondError(w, http.StatusNotFound, "exam not found")
		return
	}

	subjects, err := h.quiz.SubjectsForExam(r.Context(), examID)
	if h.handleServiceError(w, err, "exam") {
		return
	}

	names := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.String())
	}
	respondJSON(w, http.StatusOK, names)
}

// GET /exams/{examID}/statistics
func (h *Handler) getStatistics(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("examID")
	if _, ok := question.ExamByID(examID); !ok {
		respondError(w, http.StatusNotFound, "exam not found")
		return
	}

	qs, err := h.statistics.Statistics(r.Context(), examID)
	if h.handleServiceError(w, err, "statistics") {
		return
	}

	respondJSON(w, http.StatusOK, StatisticsResponse{
		ExamID:                qs.ExamID,
		TotalQuizzesCompleted: qs.TotalQuizzesCompleted,
		SubjectStats:          qs.SubjectStats,
		TotalAnswered:         qs.TotalAnswered(),
		TotalCorrect:          qs.TotalCorrect(),
	})
}
