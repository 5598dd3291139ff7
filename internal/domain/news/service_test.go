package news

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portal/internal/transport/rest"
)

func newTestService(handler http.Handler) (*Service, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewService(rest.NewClient(srv.URL), nil), srv
}

func TestRefreshMapsLegacyFields(t *testing.T) {
	posted := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"id":        "n1",
			"title":     "Quarterly results",
			"newsType":  "company",
			"createdBy": "comms team",
			"date":      posted,
		}})
	}))
	defer srv.Close()

	items, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.Category != "company" {
		t.Fatalf("newsType must map to category, got %q", got.Category)
	}
	if got.Author != "comms team" {
		t.Fatalf("createdBy must map to author, got %q", got.Author)
	}
	if !got.CreatedAt.Equal(posted) {
		t.Fatalf("date must map to createdAt, got %s", got.CreatedAt)
	}
}

func TestCreateSendsMultipartAndPrepends(t *testing.T) {
	var gotTitle, gotType, gotFile string
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotTitle = r.FormValue("title")
		gotType = r.FormValue("newsType")
		if file, _, err := r.FormFile("file"); err == nil {
			data, _ := io.ReadAll(file)
			gotFile = string(data)
			_ = file.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "n-new",
			"title":    gotTitle,
			"newsType": gotType,
			"image":    base64.StdEncoding.EncodeToString([]byte(gotFile)),
		})
	}))
	defer srv.Close()

	// An existing item so the prepend position is observable.
	tok := svc.State().Begin()
	svc.State().Succeed(tok, []Item{{ID: "n-old"}})

	created, err := svc.Create(context.Background(), CreateInput{
		Title:     "New cafeteria",
		Content:   "Opens Monday.",
		NewsType:  "facilities",
		CreatedBy: "hr",
		File:      &Attachment{Name: "cafeteria.jpg", ContentType: "image/jpeg", Data: []byte("jpegbytes")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTitle != "New cafeteria" || gotType != "facilities" {
		t.Fatalf("form fields not transmitted: title=%q type=%q", gotTitle, gotType)
	}
	if gotFile != "jpegbytes" {
		t.Fatalf("file part not transmitted: %q", gotFile)
	}
	if created.ID != "n-new" {
		t.Fatalf("expected acknowledged id, got %q", created.ID)
	}
	items := svc.Items()
	if len(items) != 2 || items[0].ID != "n-new" {
		t.Fatalf("created item must be prepended, got %+v", items)
	}
}

func TestCreateRequiresTitleAndContent(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid input must not reach the network")
	}))
	defer srv.Close()

	if _, err := svc.Create(context.Background(), CreateInput{NewsType: "general"}); err == nil {
		t.Fatal("expected validation error")
	}
	if svc.State().Err() == "" {
		t.Fatal("validation failure must be surfaced")
	}
}

func TestDeleteRemovesItem(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tok := svc.State().Begin()
	svc.State().Succeed(tok, []Item{{ID: "n1"}, {ID: "n2"}})

	if err := svc.Delete(context.Background(), "n1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := svc.Items()
	if len(items) != 1 || items[0].ID != "n2" {
		t.Fatalf("expected n1 removed, got %+v", items)
	}
}
