package stub

import "net/http"

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	items := append([]employeeRecord(nil), s.data.employees...)
	s.data.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	items := append([]announcementRecord(nil), s.data.announcements...)
	s.data.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}
