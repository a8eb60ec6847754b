package api

import (
	"net/http"
	"strconv"

	"campusbooking/internal/apperr"
	"campusbooking/internal/service"
	"campusbooking/internal/timeutil"
)

type AvailabilityHandler struct {
	Service *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// Daily handles GET /api/availability?facility_id=1&date=2026-03-01
// with optional start_time, end_time and granularity overrides.
func (h *AvailabilityHandler) Daily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	facilityID, err := strconv.ParseInt(q.Get("facility_id"), 10, 64)
	if err != nil {
		respondError(w, apperr.Validation("invalid facility_id"))
		return
	}
	date, err := timeutil.ParseDate(q.Get("date"))
	if err != nil {
		respondError(w, apperr.Validation("%v", err))
		return
	}

	rangeStart := service.DefaultOpen
	if s := q.Get("start_time"); s != "" {
		if rangeStart, err = timeutil.ParseClock(s); err != nil {
			respondError(w, apperr.Validation("%v", err))
			return
		}
	}
	rangeEnd := service.DefaultClose
	if s := q.Get("end_time"); s != "" {
		if rangeEnd, err = timeutil.ParseClock(s); err != nil {
			respondError(w, apperr.Validation("%v", err))
			return
		}
	}
	granularity := service.DefaultGranularityMinutes
	if s := q.Get("granularity"); s != "" {
		if granularity, err = strconv.Atoi(s); err != nil || granularity <= 0 {
			respondError(w, apperr.Validation("granularity must be a positive number of minutes"))
			return
		}
	}

	grid, err := h.Service.DailyGrid(facilityID, date, rangeStart, rangeEnd, granularity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": grid})
}

// Weekly handles GET /api/availability/week?facility_id=1&start_date=2026-03-01.
func (h *AvailabilityHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	facilityID, err := strconv.ParseInt(q.Get("facility_id"), 10, 64)
	if err != nil {
		respondError(w, apperr.Validation("invalid facility_id"))
		return
	}
	startDate, err := timeutil.ParseDate(q.Get("start_date"))
	if err != nil {
		respondError(w, apperr.Validation("%v", err))
		return
	}

	grid, err := h.Service.WeeklyGrid(facilityID, startDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": grid})
}
