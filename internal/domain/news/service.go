package news

import (
	"context"
	"log/slog"
	"net/http"

	"portal/internal/platform/validate"
	"portal/internal/state"
	"portal/internal/transport/rest"
)

// Service owns the news collection. Created items go to the front of the
// list: news renders newest-first.
type Service struct {
	api    *rest.Client
	col    *state.Collection[Item]
	logger *slog.Logger
}

func NewService(api *rest.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:    api,
		col:    state.NewCollection(func(n Item) string { return n.ID }),
		logger: logger,
	}
}

func (s *Service) State() *state.Collection[Item] { return s.col }

func (s *Service) Items() []Item { return s.col.Items() }

func (s *Service) Refresh(ctx context.Context) ([]Item, error) {
	token := s.col.Begin()
	var wire []itemWire
	if err := s.api.Do(ctx, http.MethodGet, "/news", nil, &wire); err != nil {
		return nil, s.settle(ctx, token, err)
	}
	items := make([]Item, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.canonical())
	}
	s.col.Succeed(token, items)
	return items, nil
}

// Create submits the multipart form the backend expects (title, content,
// createdBy, newsType, file) and prepends the acknowledged item.
func (s *Service) Create(ctx context.Context, input CreateInput) (Item, error) {
	token := s.col.Begin()
	if err := validate.Struct(input); err != nil {
		s.col.Fail(token, err.Error())
		return Item{}, err
	}
	form := rest.MultipartForm{
		Fields: map[string]string{
			"title":     input.Title,
			"content":   input.Content,
			"createdBy": input.CreatedBy,
			"newsType":  input.NewsType,
		},
	}
	if input.File != nil {
		form.Files = append(form.Files, rest.FilePart{
			Field:       "file",
			Name:        input.File.Name,
			ContentType: input.File.ContentType,
			Data:        input.File.Data,
		})
	}
	var w itemWire
	if err := s.api.DoMultipart(ctx, http.MethodPost, "/news", form, &w); err != nil {
		return Item{}, s.settle(ctx, token, err)
	}
	created := w.canonical()
	s.col.Prepend(created)
	s.col.Settle(token)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Item, error) {
	token := s.col.Begin()
	if err := validate.Struct(input); err != nil {
		s.col.Fail(token, err.Error())
		return Item{}, err
	}
	form := rest.MultipartForm{
		Fields: map[string]string{
			"title":    input.Title,
			"content":  input.Content,
			"newsType": input.NewsType,
		},
	}
	if input.File != nil {
		form.Files = append(form.Files, rest.FilePart{
			Field:       "file",
			Name:        input.File.Name,
			ContentType: input.File.ContentType,
			Data:        input.File.Data,
		})
	}
	var w itemWire
	if err := s.api.DoMultipart(ctx, http.MethodPut, "/news/"+id, form, &w); err != nil {
		return Item{}, s.settle(ctx, token, err)
	}
	updated := w.canonical()
	s.col.Replace(updated)
	s.col.Settle(token)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	token := s.col.Begin()
	if err := s.api.Do(ctx, http.MethodDelete, "/news/"+id, nil, nil); err != nil {
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
