package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/friskytrails/api/internal/application/location"
	"github.com/friskytrails/api/internal/domain"
	"github.com/friskytrails/api/internal/pkg/validate"
)

// LocationHandler handles the country/state/city hierarchy endpoints.
type LocationHandler struct {
	svc location.Service
}

func NewLocationHandler(svc location.Service) *LocationHandler { return &LocationHandler{svc: svc} }

func (h *LocationHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.svc.ListCountries(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", countries)
}

func (h *LocationHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.svc.ListStates(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", states)
}

func (h *LocationHandler) GetState(w http.ResponseWriter, r *http.Request) {
	agg, err := h.svc.GetStateWithBlogs(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", agg)
}

func (h *LocationHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.svc.ListCitiesByState(r.Context(), chi.URLParam(r, "stateID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", cities)
}

func (h *LocationHandler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.CreateCountry(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "country created", c)
}

func (h *LocationHandler) CreateState(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s, err := h.svc.CreateState(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "state created", s)
}

func (h *LocationHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.CreateCity(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "city created", c)
}
