// Package stub is an in-memory portal backend: the full REST surface the
// client consumes, with JWT auth and seeded data. It backs cmd/portal-stub
// during development and the SDK tests via httptest.
package stub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type SeedUser struct {
	Email    string
	Password string
	Name     string
	Role     string
	UserType string
}

type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	LoginRateLimit int
	Logger         *slog.Logger
	Users          []SeedUser
	SeedSampleData bool
}

type Server struct {
	router http.Handler
	data   *memory
	secret string
	ttl    time.Duration
	logger *slog.Logger
}

func New(opts Options) (*Server, error) {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev-only-secret"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 8 * time.Hour
	}
	if opts.LoginRateLimit <= 0 {
		opts.LoginRateLimit = 30
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		data:   newMemory(),
		secret: opts.JWTSecret,
		ttl:    opts.TokenTTL,
		logger: opts.Logger,
	}
	for _, u := range opts.Users {
		if err := s.data.addAccount(u.Email, u.Password, u.Name, u.Role, u.UserType); err != nil {
			return nil, err
		}
	}
	if opts.SeedSampleData {
		s.data.seedSampleData()
	}

	loginLimiter := newRateLimiter(opts.LoginRateLimit, time.Minute)

	router := chi.NewRouter()
	router.Use(requestID)

	router.With(loginLimiter.middleware).Post("/auth/login", s.handleLogin)
	router.Post("/auth/logout", s.handleLogout)

	router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/auth/verify", s.handleVerify)

		r.Get("/events", s.handleListEvents)
		r.Post("/events", s.handleCreateEvent)
		r.Put("/events/{id}", s.handleUpdateEvent)
		r.Delete("/events/{id}", s.handleDeleteEvent)

		r.Get("/news", s.handleListNews)
		r.Post("/news", s.handleCreateNews)
		r.Put("/news/{id}", s.handleUpdateNews)
		r.Delete("/news/{id}", s.handleDeleteNews)

		r.Get("/employees", s.handleListEmployees)

		r.Get("/documents", s.handleListDocuments)
		r.Post("/documents/upload", s.handleUploadDocument)
		r.Get("/documents/{id}/download", s.handleDownloadDocument)
		r.Delete("/documents/{id}", s.handleDeleteDocument)

		r.Get("/announcements", s.handleListAnnouncements)
	})

	s.router = router
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
