package handler

import (
	"encoding/json"
	"net/http"

	"github.com/friskytrails/api/internal/application/user"
	"github.com/friskytrails/api/internal/domain"
	"github.com/friskytrails/api/internal/transport/http/middleware"
)

// UserHandler handles the authenticated profile endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeData(w, http.StatusOK, "", u)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.svc.UpdateProfile(r.Context(), u.UserID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "profile updated", updated)
}
