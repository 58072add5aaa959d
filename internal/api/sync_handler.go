// internal/api/sync_handler.go
package api

import "net/http"

// POST /sync
//
// Triggers a background catalog refresh and returns immediately; progress is
// observed through GET /sync/status.
func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	h.sync.Trigger()
	respondJSON(w, http.StatusAccepted, h.sync.Status())
}

// GET /sync/status
func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sync.Status())
}

// DELETE /sync/status
func (h *Handler) clearSyncStatus(w http.ResponseWriter, r *http.Request) {
	h.sync.ClearStatusMessage()
	w.WriteHeader(http.StatusNoContent)
}
