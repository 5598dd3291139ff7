package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"portal/internal/platform/validate"
	"portal/internal/transport/rest"
)

type UserType string

const (
	UserTypeEmployee UserType = "employee"
	UserTypeHR       UserType = "hr"
)

// Identity is the signed-in user as reported by the backend.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string   `json:"token"`
	User     Identity `json:"user"`
	UserType UserType `json:"userType"`
}

// Session holds the credential and identity that authorize resource calls.
// It implements rest.TokenSource, so the adapter pulls the current token
// from here on every request instead of holding a global default header.
type Session struct {
	mu      sync.Mutex
	api     *rest.Client
	storage Storage
	logger  *slog.Logger

	token    string
	user     Identity
	userType UserType
	signedIn bool
	loading  bool
	errMsg   string
}

func New(storage Storage, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{storage: storage, logger: logger}
}

// AttachClient wires the adapter after construction; the adapter itself
// needs this session as its token source, so the two are tied together by
// the store aggregator.
func (s *Session) AttachClient(api *rest.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = api
}

// Token implements rest.TokenSource. Empty means unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signedIn
}

func (s *Session) User() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.signedIn
}

func (s *Session) UserType() UserType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userType
}

// CanManageEvents is the advisory client-side gate for mutating event views.
// Authoritative enforcement stays with the backend.
func (s *Session) CanManageEvents() bool {
	return s.UserType() == UserTypeHR
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Login exchanges credentials for a token and persists the session. On
// failure nothing is persisted and the failure message is retained.
func (s *Session) Login(ctx context.Context, email, password string) error {
	input := LoginInput{Email: email, Password: password}
	s.begin()
	if err := validate.Struct(input); err != nil {
		s.fail(err.Error())
		return err
	}
	var resp loginResponse
	if err := s.api.Do(ctx, http.MethodPost, "/auth/login", input, &resp); err != nil {
		if ctx.Err() != nil {
			s.discard()
			return err
		}
		s.fail(rest.ErrorMessage(err))
		return err
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = resp.User
	s.userType = resp.UserType
	s.signedIn = true
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()

	if err := s.storage.Save(Saved{Token: resp.Token, User: resp.User, UserType: resp.UserType}); err != nil {
		s.logger.Warn("session persist failed", "err", err)
	}
	return nil
}

// Logout notifies the server best-effort and clears local state regardless
// of the outcome: the client never stays authenticated-looking after logout.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		s.logger.Warn("logout notification failed", "err", err)
	}
	s.clearLocal()
}

// Verify restores a persisted session and re-validates it against the
// backend. A rejected credential clears everything back to signed-out; an
// unreachable backend keeps the optimistic restore.
func (s *Session) Verify(ctx context.Context) error {
	saved, ok, err := s.storage.Load()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.token = saved.Token
	s.user = saved.User
	s.userType = saved.UserType
	s.signedIn = true
	s.mu.Unlock()

	if err := s.api.Do(ctx, http.MethodGet, "/auth/verify", nil, nil); err != nil {
		if rest.IsKind(err, rest.KindAuth) || rest.IsKind(err, rest.KindForbidden) {
			s.clearLocal()
			return err
		}
		s.logger.Warn("session verify unreachable, keeping restored session", "err", err)
		return err
	}
	return nil
}

func (s *Session) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.errMsg = ""
}

func (s *Session) fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.errMsg = message
}

func (s *Session) discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.errMsg = ""
}

func (s *Session) clearLocal() {
	s.mu.Lock()
	s.token = ""
	s.user = Identity{}
	s.userType = ""
	s.signedIn = false
	s.loading = false
	s.mu.Unlock()
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("session clear failed", "err", err)
	}
}
