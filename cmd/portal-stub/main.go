package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"portal/internal/platform/config"
	"portal/internal/stub"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	server, err := stub.New(stub.Options{
		JWTSecret:      cfg.StubJWTSecret,
		TokenTTL:       cfg.StubTokenTTL,
		LoginRateLimit: cfg.RateLimitPerMinute,
		Logger:         logger,
		Users: []stub.SeedUser{
			{
				Email:    cfg.SeedHREmail,
				Password: cfg.SeedHRPassword,
				Name:     "HR Admin",
				Role:     "hr_admin",
				UserType: "hr",
			},
			{
				Email:    cfg.SeedEmployeeEmail,
				Password: cfg.SeedEmployeePassword,
				Name:     "Sample Employee",
				Role:     "employee",
				UserType: "employee",
			},
		},
		SeedSampleData: true,
	})
	if err != nil {
		log.Fatalf("stub setup failed: %v", err)
	}

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Mount("/api", http.StripPrefix("/api", server))

	log.Printf("portal stub listening on %s", cfg.StubAddr)
	if err := http.ListenAndServe(cfg.StubAddr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
