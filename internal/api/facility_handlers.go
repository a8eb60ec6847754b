package api

import (
	"net/http"
	"strconv"

	"campusbooking/internal/apperr"
	"campusbooking/internal/entities"
	"campusbooking/internal/service"
)

type FacilityHandler struct {
	Service *service.FacilityService
}

func NewFacilityHandler(svc *service.FacilityService) *FacilityHandler {
	return &FacilityHandler{Service: svc}
}

func (h *FacilityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entities.FacilityFilter{
		Type:   q.Get("type"),
		Search: q.Get("search"),
	}
	if s := q.Get("min_capacity"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			respondError(w, apperr.Validation("invalid min_capacity"))
			return
		}
		filter.MinCapacity = &v
	}
	if s := q.Get("max_capacity"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			respondError(w, apperr.Validation("invalid max_capacity"))
			return
		}
		filter.MaxCapacity = &v
	}

	facilities, err := h.Service.List(filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": facilities})
}

func (h *FacilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	facility, err := h.Service.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, facility)
}

func (h *FacilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.FacilityRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	facility, err := h.Service.Create(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, facility)
}

func (h *FacilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req entities.FacilityRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	facility, err := h.Service.Update(id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, facility)
}

func (h *FacilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Service.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
