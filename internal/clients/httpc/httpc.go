// httpc — базовый HTTP-клиент для внутренних сервисов.
//
// Единая точка, где к исходящему вызову добавляются:
//   - x-service-token (service-to-service доверие);
//   - x-request-id из контекста (сквозная трассировка);
//   - user-agent и дедлайн, если у контекста его ещё нет;
//   - одна финальная лог-запись (method/path/status/dur);
//   - трансляция сбоев через internal/errors.
//
// Экземпляры — процесс-глобальные синглтоны, создаются один раз на старте.
package httpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
	logctx "github.com/pribylovaa/vocab-trainer-gateway/internal/pkg/log"
)

type CtxKey string

// CtxRequestID — ключ, под которым middleware кладёт request id;
// клиент переносит его в заголовок исходящего вызова.
const CtxRequestID CtxKey = "request_id"

// Config — параметры одного апстрима.
type Config struct {
	BaseURL      string
	ServiceToken string
	UserAgent    string
	Timeout      time.Duration
}

// Client — клиент одного апстрима.
type Client struct {
	http      *http.Client
	base      *url.URL
	token     string
	userAgent string
	timeout   time.Duration
	log       *slog.Logger
}

func New(cfg Config, log *slog.Logger) (*Client, error) {
	const op = "httpc.New"

	if log == nil {
		log = slog.Default()
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url %q: %w", op, cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s: base url %q: scheme and host required", op, cfg.BaseURL)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "api-gateway"
	}

	return &Client{
		http:      &http.Client{},
		base:      base,
		token:     cfg.ServiceToken,
		userAgent: userAgent,
		timeout:   cfg.Timeout,
		log:       log.With(slog.String("target", base.Host)),
	}, nil
}

// upstreamError — тело ошибки апстрима ({statusCode, message}).
type upstreamError struct {
	Message string `json:"message"`
}

// Do выполняет JSON-вызов: in (если не nil) кодируется в тело, успешный
// ответ декодируется в out (если не nil). Любой сбой возвращается уже
// транслированным в *apierrors.Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	const op = "httpc.Do"

	// Дедлайн: существующий уважаем, иначе вешаем свой.
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.base.JoinPath(strings.Split(strings.TrimPrefix(path, "/"), "/")...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal body: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("X-Service-Token", c.token)
	}
	if rid := requestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	dur := time.Since(start)

	lg := logctx.From(ctx).With(
		slog.String("method", method),
		slog.String("path", path),
	)

	if err != nil {
		// Context deadline приходит обёрнутым в *url.Error.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}

		lg.Warn("upstream_call_failed",
			slog.String("err", err.Error()),
			slog.Duration("dur", dur),
		)

		return apierrors.FromTransport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	lg.Info("upstream",
		slog.Int("status", resp.StatusCode),
		slog.Duration("dur", dur),
	)

	if resp.StatusCode >= 400 {
		var ue upstreamError
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&ue)

		return apierrors.FromHTTPStatus(resp.StatusCode, ue.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apierrors.E(apierrors.KindInternal, fmt.Sprintf("decode upstream response: %v", err))
		}
	}

	return nil
}

// Get/Post/Put/Delete — шорткаты над Do.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, in, out)
}

// Close сбрасывает удерживаемые keep-alive соединения.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func requestID(ctx context.Context) string {
	if v := ctx.Value(CtxRequestID); v != nil {
		if rid, _ := v.(string); rid != "" {
			return rid
		}
	}

	return ""
}
