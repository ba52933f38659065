// Package transport предоставляет HTTP-клиент для бэкенда витрины.
//
// Любой вызов возвращает Envelope; ошибки транспорта и сервера к вызывающему
// коду не пробрасываются, а нормализуются в Envelope без Data.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// DefaultTimeout ограничивает время одного запроса.
const DefaultTimeout = 10 * time.Second

// Request описывает один вызов бэкенда.
type Request struct {
	Method string
	// Path задаётся относительно базового адреса, например "/cart/items/42".
	Path  string
	Query url.Values
	// Body сериализуется в JSON. Игнорируется, если задана Form.
	Body any
	Form *Form
	// TokenSource переопределяет учётные данные клиента для этого запроса.
	TokenSource oauth2.TokenSource
}

// Client инкапсулирует HTTP-взаимодействие с бэкендом витрины.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tokens     oauth2.TokenSource
	logger     *zap.Logger
}

// Option настраивает Client.
type Option func(*Client)

// WithTimeout задаёт таймаут запроса. Неположительное значение игнорируется.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient задаёт HTTP-клиент.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource задаёт источник bearer-токена для всех запросов.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger задаёт логгер.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient создаёт клиент бэкенда по указанному базовому адресу.
func NewClient(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get выполняет GET-запрос.
func (c *Client) Get(ctx context.Context, path string, query url.Values) *Envelope {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post выполняет POST-запрос с JSON-телом.
func (c *Client) Post(ctx context.Context, path string, body any) *Envelope {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch выполняет PATCH-запрос с JSON-телом.
func (c *Client) Patch(ctx context.Context, path string, body any) *Envelope {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete выполняет DELETE-запрос.
func (c *Client) Delete(ctx context.Context, path string) *Envelope {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// Upload отправляет multipart-форму.
func (c *Client) Upload(ctx context.Context, method, path string, form *Form) *Envelope {
	return c.Do(ctx, Request{Method: method, Path: path, Form: form})
}

// Do выполняет запрос и нормализует ответ. Никогда не возвращает nil.
func (c *Client) Do(ctx context.Context, r Request) *Envelope {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return c.fail(r, requestID, "Failed to build request", fmt.Errorf("%w: %v", ErrRequest, err))
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(r, requestID, "", classify(ctx, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(r, requestID, "", classify(ctx, err))
	}

	env := normalize(resp.StatusCode, body)
	if env.Cause != nil {
		c.logger.Warn("api response decode failed",
			zap.String("method", r.Method),
			zap.String("path", r.Path),
			zap.Int("httpStatus", resp.StatusCode),
			zap.String("requestID", requestID),
		)
		return env
	}

	c.logger.Debug("api request",
		zap.String("method", r.Method),
		zap.String("path", r.Path),
		zap.Int("status", env.Status),
		zap.Duration("duration", time.Since(start)),
		zap.String("requestID", requestID),
	)
	return env
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, errors.New("base url not configured")
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	path := r.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var (
		body        io.Reader
		contentType = "application/json"
	)
	switch {
	case r.Form != nil:
		b, ct, err := r.Form.encode()
		if err != nil {
			return nil, err
		}
		body, contentType = b, ct
	case r.Body != nil:
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	ts := r.TokenSource
	if ts == nil {
		ts = c.tokens
	}
	if ts != nil {
		if tok, err := ts.Token(); err == nil && tok != nil && tok.AccessToken != "" {
			tok.SetAuthHeader(req)
		}
	}

	return req, nil
}

func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func (c *Client) fail(r Request, requestID, message string, cause error) *Envelope {
	if message == "" {
		switch {
		case errors.Is(cause, ErrTimeout):
			message = "Request timeout"
		default:
			message = "Network request failed"
		}
	}

	c.logger.Warn("api request failed",
		zap.String("method", r.Method),
		zap.String("path", r.Path),
		zap.String("requestID", requestID),
		zap.Error(cause),
	)

	return &Envelope{
		Message: message,
		Status:  StatusInternalError,
		Cause:   cause,
	}
}
