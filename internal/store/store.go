// Package store composes the resource slices into one state tree over a
// shared adapter and session. No cross-slice invariants live here: deleting
// an employee does not cascade into events; consistency across resources is
// the backend's job.
package store

import (
	"log/slog"

	"portal/internal/domain/announcements"
	"portal/internal/domain/documents"
	"portal/internal/domain/employees"
	"portal/internal/domain/events"
	"portal/internal/domain/news"
	"portal/internal/domain/session"
	"portal/internal/platform/config"
	"portal/internal/transport/rest"
)

type Store struct {
	Session       *session.Session
	Events        *events.Service
	News          *news.Service
	Employees     *employees.Service
	Documents     *documents.Service
	Announcements *announcements.Service
}

func New(cfg config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	sess := session.New(session.NewFileStorage(cfg.SessionFile), logger)
	api := rest.NewClient(cfg.APIBaseURL,
		rest.WithTimeout(cfg.RequestTimeout),
		rest.WithTokenSource(sess),
		rest.WithLogger(logger),
	)
	sess.AttachClient(api)

	return &Store{
		Session:   sess,
		Events:    events.NewService(api, logger),
		News:      news.NewService(api, logger),
		Employees: employees.NewService(api, logger),
		Documents: documents.NewService(api, logger),
		Announcements: announcements.NewService(
			api,
			announcements.NewFileStore(cfg.AnnouncementsFile),
			cfg.OfflineAnnouncements,
			logger,
		),
	}, nil
}

// ClearErrors dismisses every slice's surfaced error at once, the way the
// view layer clears notifications after showing them.
func (s *Store) ClearErrors() {
	s.Session.ClearError()
	s.Events.State().ClearError()
	s.News.State().ClearError()
	s.Employees.State().ClearError()
	s.Documents.State().ClearError()
	s.Announcements.State().ClearError()
}
