package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"portal/internal/transport/rest"
)

func newSessionAgainst(t *testing.T, handler http.Handler, storage Storage) (*Session, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	sess := New(storage, nil)
	sess.AttachClient(rest.NewClient(srv.URL, rest.WithTokenSource(sess)))
	return sess, srv
}

func loginHandler(t *testing.T, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var in LoginInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode login: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if in.Password != "correct horse" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(loginResponse{
			Token:    token,
			User:     Identity{ID: "u1", Email: in.Email, Name: "Maya", Role: "hr_admin"},
			UserType: UserTypeHR,
		})
	})
}

func TestLoginPersistsSession(t *testing.T) {
	storage := NewMemoryStorage()
	sess, srv := newSessionAgainst(t, loginHandler(t, "tok-1"), storage)
	defer srv.Close()

	if err := sess.Login(context.Background(), "maya@example.com", "correct horse"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Fatal("expected authenticated")
	}
	if sess.Token() != "tok-1" {
		t.Fatalf("token = %q", sess.Token())
	}
	if !sess.CanManageEvents() {
		t.Fatal("hr account must be allowed to manage events")
	}
	saved, ok, err := storage.Load()
	if err != nil || !ok {
		t.Fatalf("expected persisted session, ok=%t err=%v", ok, err)
	}
	if saved.Token != "tok-1" || saved.User.Name != "Maya" {
		t.Fatalf("persisted = %+v", saved)
	}
}

func TestLoginRejectionPersistsNothing(t *testing.T) {
	storage := NewMemoryStorage()
	sess, srv := newSessionAgainst(t, loginHandler(t, "tok-1"), storage)
	defer srv.Close()

	err := sess.Login(context.Background(), "maya@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if sess.IsAuthenticated() {
		t.Fatal("rejected login must not authenticate")
	}
	if sess.Err() != "Invalid credentials" {
		t.Fatalf("error = %q", sess.Err())
	}
	if sess.Token() != "" {
		t.Fatal("rejected login must not retain a token")
	}
	if _, ok, _ := storage.Load(); ok {
		t.Fatal("rejected login must not persist anything")
	}
}

func TestLoginValidatesInputLocally(t *testing.T) {
	storage := NewMemoryStorage()
	sess, srv := newSessionAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid input must not reach the network")
	}), storage)
	defer srv.Close()

	if err := sess.Login(context.Background(), "not-an-email", ""); err == nil {
		t.Fatal("expected validation error")
	}
	if sess.Err() == "" {
		t.Fatal("validation failure must be surfaced")
	}
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	storage := NewMemoryStorage()
	_ = storage.Save(Saved{Token: "tok-1", User: Identity{Name: "Maya"}, UserType: UserTypeHR})

	sess, srv := newSessionAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), storage)
	defer srv.Close()

	// Restore the persisted credential, then sign out against a broken server.
	if err := sess.Verify(context.Background()); err == nil {
		t.Fatal("expected verify to report the server failure")
	}
	sess.Logout(context.Background())

	if sess.IsAuthenticated() || sess.Token() != "" {
		t.Fatal("logout must clear local state regardless of the server outcome")
	}
	if _, ok, _ := storage.Load(); ok {
		t.Fatal("logout must clear the persisted session")
	}
}

func TestVerifyRestoresPersistedSession(t *testing.T) {
	storage := NewMemoryStorage()
	_ = storage.Save(Saved{Token: "tok-1", User: Identity{ID: "u1", Name: "Maya"}, UserType: UserTypeHR})

	var gotAuth string
	sess, srv := newSessionAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}), storage)
	defer srv.Close()

	if err := sess.Verify(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Fatal("expected restored session")
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("verify must send the restored token, got %q", gotAuth)
	}
	user, _ := sess.User()
	if user.Name != "Maya" {
		t.Fatalf("user = %+v", user)
	}
}

func TestVerifyRejectionClearsEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)
	_ = storage.Save(Saved{Token: "expired", User: Identity{Name: "Maya"}, UserType: UserTypeHR})

	sess, srv := newSessionAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}), storage)
	defer srv.Close()

	if err := sess.Verify(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if sess.IsAuthenticated() {
		t.Fatal("rejected credential must sign the session out")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("rejected credential must remove the persisted session")
	}
}

func TestVerifyKeepsRestoreWhenUnreachable(t *testing.T) {
	storage := NewMemoryStorage()
	_ = storage.Save(Saved{Token: "tok-1", User: Identity{Name: "Maya"}, UserType: UserTypeEmployee})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	sess := New(storage, nil)
	sess.AttachClient(rest.NewClient(srv.URL, rest.WithTokenSource(sess)))

	err := sess.Verify(context.Background())
	if !rest.IsKind(err, rest.KindNetwork) {
		t.Fatalf("expected network kind, got %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Fatal("an unreachable backend must keep the optimistic restore")
	}
	if sess.CanManageEvents() {
		t.Fatal("employee account must not manage events")
	}
}

func TestFileStorageTreatsCorruptFileAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	storage := NewFileStorage(path)
	_, ok, err := storage.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("corrupt session file must read as no session")
	}
}
