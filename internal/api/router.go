// internal/api/router.go
package api

import "net/http"

// RegisterRoutes wires every endpoint onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Exams
	mux.HandleFunc("GET /exams", h.listExams)
	mux.HandleFunc("GET /exams/{examID}/subjects", h.listExamSubjects)
	mux.HandleFunc("GET /exams/{examID}/statistics", h.getStatistics)
	mux.HandleFunc("GET /exams/{examID}/review", h.listReviewableQuestions)

	// Quiz sessions
	mux.HandleFunc("POST /sessions", h.prepareQuiz)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /sessions/{sessionID}/answers", h.selectAnswer)
	mux.HandleFunc("POST /sessions/{sessionID}/position", h.moveTo)
	mux.HandleFunc("POST /sessions/{sessionID}/filters", h.applyFilters)
	mux.HandleFunc("POST /sessions/{sessionID}/submit", h.submitQuiz)
	mux.HandleFunc("POST /sessions/{sessionID}/retake", h.retakeQuiz)
	mux.HandleFunc("DELETE /sessions/{sessionID}", h.dropSession)

	// Review history
	mux.HandleFunc("GET /review/logs", h.listAllHistory)
	mux.HandleFunc("GET /review/questions/{questionID}", h.getQuestionWithLogs)
	mux.HandleFunc("DELETE /review/questions/{questionID}/logs", h.clearHistoryForQuestion)
	mux.HandleFunc("DELETE /review/logs", h.clearAllHistory)

	// Preferences
	mux.HandleFunc("GET /preferences", h.getPreferences)
	mux.HandleFunc("PUT /preferences", h.updatePreferences)

	// Remote catalog sync
	mux.HandleFunc("POST /sync", h.triggerSync)
	mux.HandleFunc("GET /sync/status", h.syncStatus)
	mux.HandleFunc("DELETE /sync/status", h.clearSyncStatus)
}
