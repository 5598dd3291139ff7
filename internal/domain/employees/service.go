package employees

import (
	"context"
	"log/slog"
	"net/http"

	"portal/internal/state"
	"portal/internal/transport/rest"
)

// Service owns the employee directory. The directory is read-only from the
// client: the backend exposes listing only.
type Service struct {
	api    *rest.Client
	col    *state.Collection[Employee]
	logger *slog.Logger
}

func NewService(api *rest.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:    api,
		col:    state.NewCollection(func(e Employee) string { return e.ID }),
		logger: logger,
	}
}

func (s *Service) State() *state.Collection[Employee] { return s.col }

func (s *Service) Items() []Employee { return s.col.Items() }

func (s *Service) Refresh(ctx context.Context) ([]Employee, error) {
	token := s.col.Begin()
	var wire []employeeWire
	if err := s.api.Do(ctx, http.MethodGet, "/employees", nil, &wire); err != nil {
		if ctx.Err() != nil {
			s.col.Discard(token)
			return nil, err
		}
		s.col.Fail(token, rest.ErrorMessage(err))
		return nil, err
	}
	items := make([]Employee, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.canonical())
	}
	s.col.Succeed(token, items)
	return items, nil
}
