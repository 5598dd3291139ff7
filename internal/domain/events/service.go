package events

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"portal/internal/platform/validate"
	"portal/internal/state"
	"portal/internal/transport/rest"
)

// Service owns the events collection and the operations that drive it. Every
// operation records its own failure message on the collection; the returned
// error carries the same information for programmatic callers.
type Service struct {
	api    *rest.Client
	col    *state.Collection[Event]
	logger *slog.Logger
}

func NewService(api *rest.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:    api,
		col:    state.NewCollection(func(e Event) string { return e.ID }),
		logger: logger,
	}
}

// State exposes the collection for readers (items, phase, error, current).
func (s *Service) State() *state.Collection[Event] { return s.col }

func (s *Service) Items() []Event { return s.col.Items() }

// Refresh replaces the collection with the server truth. A failed refresh
// keeps the previous items so the caller never flickers to empty.
func (s *Service) Refresh(ctx context.Context) ([]Event, error) {
	token := s.col.Begin()
	var wire []eventWire
	if err := s.api.Do(ctx, http.MethodGet, "/events", nil, &wire); err != nil {
		return nil, s.settle(ctx, token, err)
	}
	items := make([]Event, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.canonical())
	}
	s.col.Succeed(token, items)
	return items, nil
}

// Create posts a new event and appends the server-acknowledged entity, with
// its server-assigned id, to the collection.
func (s *Service) Create(ctx context.Context, input CreateEventInput) (Event, error) {
	token := s.col.Begin()
	if err := validate.Struct(input); err != nil {
		s.col.Fail(token, err.Error())
		return Event{}, err
	}
	var w eventWire
	if err := s.api.Do(ctx, http.MethodPost, "/events", input, &w); err != nil {
		return Event{}, s.settle(ctx, token, err)
	}
	created := w.canonical()
	s.col.Append(created)
	s.col.Settle(token)
	return created, nil
}

// Update merges the patch into the cached copy and PUTs the full object; the
// backend has no partial-update semantics. Fails without a network call when
// the id is not cached.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Event, error) {
	token := s.col.Begin()
	merged, err := s.col.Modify(id, patch.apply)
	if err != nil {
		if errors.Is(err, state.ErrNotCached) {
			err = rest.NotCached("event", id)
		}
		s.col.Fail(token, rest.ErrorMessage(err))
		return Event{}, err
	}
	var w eventWire
	if err := s.api.Do(ctx, http.MethodPut, "/events/"+id, merged, &w); err != nil {
		return Event{}, s.settle(ctx, token, err)
	}
	updated := w.canonical()
	s.col.Replace(updated)
	s.col.Settle(token)
	return updated, nil
}

// Approve flips isApproved and moves the event to active. The backend has no
// dedicated approval endpoint, so this is a read-merge-PUT like any update.
func (s *Service) Approve(ctx context.Context, id string) (Event, error) {
	approved := true
	active := "active"
	return s.Update(ctx, id, Patch{IsApproved: &approved, Status: &active})
}

// Delete removes the event server-side, then locally. Deleting an id already
// absent from the collection leaves it unchanged.
func (s *Service) Delete(ctx context.Context, id string) error {
	token := s.col.Begin()
	if err := s.api.Do(ctx, http.MethodDelete, "/events/"+id, nil, nil); err != nil {
		return s.settle(ctx, token, err)
	}
	s.col.Remove(id)
	s.col.Settle(token)
	return nil
}

func (s *Service) settle(ctx context.Context, token uint64, err error) error {
	if ctx.Err() != nil {
		s.col.Discard(token)
		return err
	}
	s.col.Fail(token, rest.ErrorMessage(err))
	return err
}
