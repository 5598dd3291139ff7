package stub

import (
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadBytes = 16 << 20

func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	items := append([]newsRecord(nil), s.data.news...)
	s.data.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateNews(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart payload")
		return
	}
	title := r.FormValue("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	now := time.Now().UTC()
	rec := newsRecord{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   r.FormValue("content"),
		Category:  r.FormValue("newsType"),
		Author:    r.FormValue("createdBy"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if image, ok := readUpload(r); ok {
		rec.Image = image
	}

	s.data.mu.Lock()
	s.data.news = append(s.data.news, rec)
	s.data.mu.Unlock()
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdateNews(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart payload")
		return
	}
	id := chi.URLParam(r, "id")

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := range s.data.news {
		if s.data.news[i].ID == id {
			rec := &s.data.news[i]
			rec.Title = r.FormValue("title")
			rec.Content = r.FormValue("content")
			if v := r.FormValue("newsType"); v != "" {
				rec.Category = v
			}
			if image, ok := readUpload(r); ok {
				rec.Image = image
			}
			rec.UpdatedAt = time.Now().UTC()
			writeJSON(w, http.StatusOK, *rec)
			return
		}
	}
	writeError(w, http.StatusNotFound, "news item not found")
}

func (s *Server) handleDeleteNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := range s.data.news {
		if s.data.news[i].ID == id {
			s.data.news = append(s.data.news[:i], s.data.news[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "news item not found")
}

// readUpload pulls the "file" part and returns it base64-encoded, the way
// the backend ships binary-as-text.
func readUpload(r *http.Request) (string, bool) {
	file, _, err := r.FormFile("file")
	if err != nil {
		return "", false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return "", false
	}
	return base64.StdEncoding.EncodeToString(data), true
}
