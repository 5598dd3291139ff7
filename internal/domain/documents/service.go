package documents

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"portal/internal/platform/validate"
	"portal/internal/state"
	"portal/internal/transport/rest"
)

// Service owns the documents collection. Uploads report byte-level progress
// through Progress for the transfer indicator.
type Service struct {
	api    *rest.Client
	col    *state.Collection[Document]
	logger *slog.Logger

	sent  atomic.Int64
	total atomic.Int64
}

func NewService(api *rest.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:    api,
		col:    state.NewCollection(func(d Document) string { return d.ID }),
		logger: logger,
	}
}

func (s *Service) State() *state.Collection[Document] { return s.col }

func (s *Service) Items() []Document { return s.col.Items() }

// Progress reports the bytes sent and total of the upload in flight. Both
// are zero when nothing is uploading.
func (s *Service) Progress() (sent, total int64) {
	return s.sent.Load(), s.total.Load()
}

func (s *Service) Refresh(ctx context.Context) ([]Document, error) {
	token := s.col.Begin()
	var wire []documentWire
	if err := s.api.Do(ctx, http.MethodGet, "/documents", nil, &wire); err != nil {
		return nil, s.settle(ctx, token, err)
	}
	items := make([]Document, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.canonical())
	}
	s.col.Succeed(token, items)
	return items, nil
}

// Upload submits the multipart form (file, title, description, documentType,
// uploadedById, departmentIds) and appends the acknowledged document.
func (s *Service) Upload(ctx context.Context, input UploadInput) (Document, error) {
	token := s.col.Begin()
	if err := validate.Struct(input); err != nil {
		s.col.Fail(token, err.Error())
		return Document{}, err
	}
	s.sent.Store(0)
	s.total.Store(0)
	form := rest.MultipartForm{
		Fields: map[string]string{
			"title":         input.Title,
			"description":   input.Description,
			"documentType":  input.DocumentType,
			"uploadedById":  input.UploadedByID,
			"departmentIds": input.departmentField(),
		},
		Files: []rest.FilePart{{
			Field:       "file",
			Name:        input.FileName,
			ContentType: input.ContentType,
			Data:        input.Data,
		}},
		Progress: func(sent, total int64) {
			s.sent.Store(sent)
			s.total.Store(total)
		},
	}
	var w documentWire
	if err := s.api.DoMultipart(ctx, http.MethodPost, "/documents/upload", form, &w); err != nil {
		return Document{}, s.settle(ctx, token, err)
	}
	created := w.canonical()
	s.col.Append(created)
	s.col.Settle(token)
	return created, nil
}

// Download fetches the raw file bytes and their content type.
func (s *Service) Download(ctx context.Context, id string) ([]byte, string, error) {
	token := s.col.Begin()
	data, contentType, err := s.api.Download(ctx, "/documents/"+id+"/download")
	if err != nil {
		return nil, "", s.settle(ctx, token, err)
	}
	s.col.Settle(token)
	return data, contentType, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	token := s.col.Begin()
	if err := s.api.Do(ctx, http.MethodDelete, "/documents/"+id, nil, nil); err != nil {
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
