package stub

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	items := append([]documentRecord(nil), s.data.documents...)
	s.data.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart payload")
		return
	}
	title := r.FormValue("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	var departments []string
	if raw := r.FormValue("departmentIds"); raw != "" {
		departments = strings.Split(raw, ",")
	}

	rec := documentRecord{
		ID:            uuid.NewString(),
		Title:         title,
		Description:   r.FormValue("description"),
		DocumentType:  r.FormValue("documentType"),
		UploadedAt:    time.Now().UTC(),
		UploadedByID:  r.FormValue("uploadedById"),
		DepartmentIDs: departments,
		fileName:      header.Filename,
		contentType:   header.Header.Get("Content-Type"),
		data:          data,
	}

	s.data.mu.Lock()
	s.data.documents = append(s.data.documents, rec)
	s.data.mu.Unlock()
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for _, rec := range s.data.documents {
		if rec.ID == id {
			contentType := rec.contentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			w.Header().Set("Content-Type", contentType)
			w.Header().Set("Content-Disposition", `attachment; filename="`+rec.fileName+`"`)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(rec.data)
			return
		}
	}
	writeError(w, http.StatusNotFound, "document not found")
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := range s.data.documents {
		if s.data.documents[i].ID == id {
			s.data.documents = append(s.data.documents[:i], s.data.documents[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "document not found")
}
