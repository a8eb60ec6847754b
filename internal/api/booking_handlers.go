package api

import (
	"net/http"

	"campusbooking/internal/auth"
	"campusbooking/internal/db"
	"campusbooking/internal/entities"
	"campusbooking/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
	Users   service.UserStore
}

func NewBookingHandler(svc *service.BookingService, users service.UserStore) *BookingHandler {
	return &BookingHandler{Service: svc, Users: users}
}

// actor resolves the request identity to its user record.
func (h *BookingHandler) actor(r *http.Request) (*db.User, error) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		return nil, errUnauthorized
	}
	return h.Users.GetActiveByID(identity.UserID)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := h.actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	list, err := h.Service.ListWithStats(user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.actor(r)
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.Service.Get(id, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := h.actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req entities.BookingRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.Service.Create(req, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := h.actor(r)
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req entities.UpdateBookingRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.Service.Update(id, req, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, err := h.actor(r)
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Service.Cancel(id, user); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
