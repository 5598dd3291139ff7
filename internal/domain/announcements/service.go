package announcements

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"portal/internal/platform/validate"
	"portal/internal/state"
	"portal/internal/transport/rest"
)

// Service owns the announcements collection. Listing comes from the backend;
// mutations go to the local file store because the feature has no write
// routes server-side. With offline set, listing also reads the file.
type Service struct {
	api     *rest.Client
	local   *FileStore
	col     *state.Collection[Announcement]
	logger  *slog.Logger
	offline bool
}

func NewService(api *rest.Client, local *FileStore, offline bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:     api,
		local:   local,
		col:     state.NewCollection(func(a Announcement) string { return a.ID }),
		logger:  logger,
		offline: offline,
	}
}

func (s *Service) State() *state.Collection[Announcement] { return s.col }

func (s *Service) Items() []Announcement { return s.col.Items() }

func (s *Service) Refresh(ctx context.Context) ([]Announcement, error) {
	if s.offline {
		return s.refreshLocal()
	}
	token := s.col.Begin()
	var wire []announcementWire
	if err := s.api.Do(ctx, http.MethodGet, "/announcements", nil, &wire); err != nil {
		if ctx.Err() != nil {
			s.col.Discard(token)
			return nil, err
		}
		s.col.Fail(token, rest.ErrorMessage(err))
		return nil, err
	}
	items := make([]Announcement, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.canonical())
	}
	sortNewestFirst(items)
	s.col.Succeed(token, items)
	return items, nil
}

func (s *Service) refreshLocal() ([]Announcement, error) {
	token := s.col.Begin()
	items, err := s.local.Load()
	if err != nil {
		s.col.Fail(token, "could not read stored announcements: "+err.Error())
		return nil, err
	}
	sortNewestFirst(items)
	s.col.Succeed(token, items)
	return items, nil
}

// Create validates the validity window before anything is stored; an
// inverted window never reaches the file.
func (s *Service) Create(ctx context.Context, input CreateInput) (Announcement, error) {
	token := s.col.Begin()
	if err := validate.Struct(input); err != nil {
		s.col.Fail(token, err.Error())
		return Announcement{}, err
	}
	now := time.Now().UTC()
	created := Announcement{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Content:   input.Content,
		Type:      input.Type,
		CreatedBy: input.CreatedBy,
		ValidFrom: input.ValidFrom,
		ValidTo:   input.ValidTo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.local.Load()
	if err != nil {
		s.col.Fail(token, "could not read stored announcements: "+err.Error())
		return Announcement{}, err
	}
	stored = append(stored, created)
	if err := s.local.Save(stored); err != nil {
		s.col.Fail(token, "could not store announcement: "+err.Error())
		return Announcement{}, err
	}
	s.col.Prepend(created)
	s.col.Settle(token)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Announcement, error) {
	token := s.col.Begin()
	if err := validate.Struct(input); err != nil {
		s.col.Fail(token, err.Error())
		return Announcement{}, err
	}
	stored, err := s.local.Load()
	if err != nil {
		s.col.Fail(token, "could not read stored announcements: "+err.Error())
		return Announcement{}, err
	}
	var updated *Announcement
	for i := range stored {
		if stored[i].ID == id {
			stored[i].Title = input.Title
			stored[i].Content = input.Content
			stored[i].ValidFrom = input.ValidFrom
			stored[i].ValidTo = input.ValidTo
			stored[i].UpdatedAt = time.Now().UTC()
			updated = &stored[i]
			break
		}
	}
	if updated == nil {
		err := rest.NotCached("announcement", id)
		s.col.Fail(token, err.Message)
		return Announcement{}, err
	}
	if err := s.local.Save(stored); err != nil {
		s.col.Fail(token, "could not store announcement: "+err.Error())
		return Announcement{}, err
	}
	s.col.Replace(*updated)
	s.col.Settle(token)
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	token := s.col.Begin()
	stored, err := s.local.Load()
	if err != nil {
		s.col.Fail(token, "could not read stored announcements: "+err.Error())
		return err
	}
	kept := stored[:0]
	for _, a := range stored {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if err := s.local.Save(kept); err != nil {
		s.col.Fail(token, "could not store announcements: "+err.Error())
		return err
	}
	s.col.Remove(id)
	s.col.Settle(token)
	return nil
}

func sortNewestFirst(items []Announcement) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
