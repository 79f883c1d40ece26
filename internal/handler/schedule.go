package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knorii/tabiplan/internal/service"
)

// scheduleRequest is the body of POST /schedules and PUT /schedules/{id}.
// newLocation, when present with a name, creates a location in the same save
// and links the entry to it.
type scheduleRequest struct {
	Title       string           `json:"title"`
	Date        string           `json:"date"`
	StartTime   string           `json:"startTime"`
	EndTime     string           `json:"endTime"`
	Category    string           `json:"category"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	NewLocation *locationRequest `json:"newLocation"`
}

func (req scheduleRequest) toInput() service.ScheduleInput {
	in := service.ScheduleInput{
		Title:       req.Title,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Category:    req.Category,
		Location:    req.Location,
		Description: req.Description,
	}
	if req.NewLocation != nil {
		loc := req.NewLocation.toInput()
		in.NewLocation = &loc
	}
	return in
}

// ListSchedules handles GET /schedules: non-deleted entries in display order.
func (s *Server) ListSchedules(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.schedules.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ListScheduleDays handles GET /schedules/days: entries bucketed per date.
func (s *Server) ListScheduleDays(w http.ResponseWriter, _ *http.Request) {
	days, err := s.schedules.Days()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// ListDeletedSchedules handles GET /schedules/deleted: the trash bin.
func (s *Server) ListDeletedSchedules(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.schedules.Deleted()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// CreateSchedule handles POST /schedules.
func (s *Server) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	created, err := s.schedules.Create(req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateSchedule handles PUT /schedules/{id}.
func (s *Server) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeBody(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	updated, err := s.schedules.Update(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteSchedule handles DELETE /schedules/{id}. The route is state-routed:
// an active entry is soft-deleted, an already soft-deleted entry is removed
// outright. The response reports which happened.
func (s *Server) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	permanent, err := s.schedules.Delete(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"permanent": permanent})
}

// RestoreSchedule handles POST /schedules/{id}/restore.
func (s *Server) RestoreSchedule(w http.ResponseWriter, r *http.Request) {
	if err := s.schedules.Restore(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HardDeleteSchedule handles DELETE /schedules/{id}/permanent.
func (s *Server) HardDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := s.schedules.HardDelete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
