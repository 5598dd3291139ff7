package stub

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	items := append([]eventRecord(nil), s.data.events...)
	s.data.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	if c.UserType != "hr" {
		writeError(w, http.StatusForbidden, "only HR can create events")
		return
	}

	var rec eventRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "malformed event payload")
		return
	}
	if rec.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()
	if rec.CreatedBy == "" {
		rec.CreatedBy = c.Name
	}
	if rec.Status == "" {
		rec.Status = "pending"
	}
	rec.IsApproved = false

	s.data.mu.Lock()
	s.data.events = append(s.data.events, rec)
	s.data.mu.Unlock()
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	if c.UserType != "hr" {
		writeError(w, http.StatusForbidden, "only HR can modify events")
		return
	}
	id := chi.URLParam(r, "id")

	var rec eventRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "malformed event payload")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := range s.data.events {
		if s.data.events[i].ID == id {
			rec.ID = id
			rec.CreatedAt = s.data.events[i].CreatedAt
			if rec.CreatedBy == "" {
				rec.CreatedBy = s.data.events[i].CreatedBy
			}
			s.data.events[i] = rec
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeError(w, http.StatusNotFound, "event not found")
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	if c.UserType != "hr" {
		writeError(w, http.StatusForbidden, "only HR can delete events")
		return
	}
	id := chi.URLParam(r, "id")

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := range s.data.events {
		if s.data.events[i].ID == id {
			s.data.events = append(s.data.events[:i], s.data.events[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "event not found")
}
