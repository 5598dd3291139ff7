package documents

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portal/internal/transport/rest"
)

func newTestService(handler http.Handler) (*Service, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewService(rest.NewClient(srv.URL), nil), srv
}

func TestUploadTransmitsFormAndReportsProgress(t *testing.T) {
	var gotTitle, gotDepartments, gotFile string
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotTitle = r.FormValue("title")
		gotDepartments = r.FormValue("departmentIds")
		if file, _, err := r.FormFile("file"); err == nil {
			data, _ := io.ReadAll(file)
			gotFile = string(data)
			_ = file.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":           "d1",
			"title":        gotTitle,
			"documentType": "policy",
		})
	}))
	defer srv.Close()

	created, err := svc.Upload(context.Background(), UploadInput{
		Title:         "Travel policy",
		DocumentType:  "policy",
		UploadedByID:  "u1",
		DepartmentIDs: []string{"dep1", "dep2"},
		FileName:      "policy.pdf",
		ContentType:   "application/pdf",
		Data:          []byte("pdf bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTitle != "Travel policy" {
		t.Fatalf("title not transmitted: %q", gotTitle)
	}
	if gotDepartments != "dep1,dep2" {
		t.Fatalf("departments must be comma-joined, got %q", gotDepartments)
	}
	if gotFile != "pdf bytes" {
		t.Fatalf("file not transmitted: %q", gotFile)
	}
	if created.ID != "d1" {
		t.Fatalf("expected acknowledged id, got %q", created.ID)
	}
	if _, ok := svc.State().Get("d1"); !ok {
		t.Fatal("uploaded document must join the collection")
	}
	sent, total := svc.Progress()
	if total == 0 || sent != total {
		t.Fatalf("progress must end at total: sent=%d total=%d", sent, total)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid input must not reach the network")
	}))
	defer srv.Close()

	_, err := svc.Upload(context.Background(), UploadInput{Title: "x", DocumentType: "policy"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDownloadReturnsBytesAndContentType(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/d1/download" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("raw pdf"))
	}))
	defer srv.Close()

	data, contentType, err := svc.Download(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "raw pdf" {
		t.Fatalf("data = %q", data)
	}
	if contentType != "application/pdf" {
		t.Fatalf("contentType = %q", contentType)
	}
	if svc.State().Loading() {
		t.Fatal("download must settle the collection")
	}
}

func TestDownloadFailureSurfacesMessage(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"document not found"}`))
	}))
	defer srv.Close()

	if _, _, err := svc.Download(context.Background(), "missing"); err == nil {
		t.Fatal("expected error")
	}
	if svc.State().Err() != "document not found" {
		t.Fatalf("error = %q", svc.State().Err())
	}
}

func TestDeleteRemovesDocument(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tok := svc.State().Begin()
	svc.State().Succeed(tok, []Document{{ID: "d1"}})

	if err := svc.Delete(context.Background(), "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.State().Len() != 0 {
		t.Fatal("expected document removed")
	}
}
