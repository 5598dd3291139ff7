package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the bearer credential for outbound requests. An empty
// token means the request goes out unauthenticated; the server enforces
// access control.
type TokenSource interface {
	Token() string
}

// Client performs requests against the portal backend, attaches the bearer
// credential from its TokenSource and normalizes failures into *Error values.
// It does not retry and does not cache.
type Client struct {
	base           string
	httpc          *http.Client
	tokens         TokenSource
	logger         *slog.Logger
	onUnauthorized func()
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithUnauthorizedHook installs a callback invoked whenever a request settles
// with a 401. The failure is still surfaced to the caller either way.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		httpc:  &http.Client{Timeout: 15 * time.Second},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do issues a JSON request. A nil body sends no payload; a nil out discards
// the response. 204 and empty bodies leave out at its zero value.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return unexpectedError(fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return unexpectedError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// FilePart is one file attached to a multipart submission.
type FilePart struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// MultipartForm carries the fields and files of a multipart submission.
// Progress, when set, is called as the encoded body is written out.
type MultipartForm struct {
	Fields   map[string]string
	Files    []FilePart
	Progress func(sent, total int64)
}

// DoMultipart issues a multipart/form-data request.
func (c *Client) DoMultipart(ctx context.Context, method, path string, form MultipartForm, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, value := range form.Fields {
		if err := writer.WriteField(field, value); err != nil {
			return unexpectedError(err)
		}
	}
	for _, file := range form.Files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return unexpectedError(err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return unexpectedError(err)
		}
	}
	if err := writer.Close(); err != nil {
		return unexpectedError(err)
	}

	total := int64(buf.Len())
	var reader io.Reader = &buf
	if form.Progress != nil {
		reader = &progressReader{r: &buf, total: total, report: form.Progress}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return unexpectedError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total
	return c.send(req, out)
}

// Download fetches a binary response body and reports its content type.
func (c *Client) Download(ctx context.Context, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, "", unexpectedError(err)
	}
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		c.logger.Warn("request failed", "method", req.Method, "path", path, "err", err)
		return nil, "", networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", networkError(err)
	}
	if resp.StatusCode >= 400 {
		return nil, "", c.fail(req.Method, path, resp.StatusCode, data)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) send(req *http.Request, out any) error {
	c.authorize(req)
	c.logger.Debug("request", "method", req.Method, "path", req.URL.Path)

	resp, err := c.httpc.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return req.Context().Err()
		}
		c.logger.Warn("request failed", "method", req.Method, "path", req.URL.Path, "err", err)
		return networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}
	if resp.StatusCode >= 400 {
		return c.fail(req.Method, req.URL.Path, resp.StatusCode, data)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return unexpectedError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) fail(method, path string, status int, body []byte) *Error {
	reqErr := errorFromResponse(status, body)
	c.logger.Warn("request rejected",
		"method", method, "path", path, "status", status, "kind", string(reqErr.Kind))
	if status == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return reqErr
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

type progressReader struct {
	r      io.Reader
	sent   int64
	total  int64
	report func(sent, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.report(p.sent, p.total)
	}
	return n, err
}
