package handler

import (
	"encoding/json"
	"net/http"

	"github.com/friskytrails/api/internal/application/contact"
	"github.com/friskytrails/api/internal/domain"
	"github.com/friskytrails/api/internal/pkg/validate"
)

// ContactHandler handles public contact-form submissions.
type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler { return &ContactHandler{svc: svc} }

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "message received", m)
}
