package handler

import (
	"net/http"
)

type readyChecker interface {
	Ready() bool
}

// HealthHandler reports liveness and the database ready-state.
type HealthHandler struct {
	db readyChecker
}

func NewHealthHandler(db readyChecker) *HealthHandler { return &HealthHandler{db: db} }

func (h *HealthHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, "ok", map[string]interface{}{
		"db_connected": h.db.Ready(),
	})
}
