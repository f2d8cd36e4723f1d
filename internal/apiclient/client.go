// Package apiclient is the storefront's client for the ERP public export API.
//
// Every call goes through one retry policy: 5xx responses and transport errors are retried
// with exponential backoff, 4xx responses are returned at once. Query parameters with nil
// values are omitted from the URL.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	"github.com/SscSPs/vehicle_export_storefront/internal/metrics"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils/retry"
	"github.com/go-resty/resty/v2"
)

// Params are query parameters. Nil values, including typed nil pointers, are not sent.
type Params map[string]any

// Request describes one call relative to the client's base URL.
type Request struct {
	Method string
	Path   string
	Params Params
	Body   any
	// Token is a customer session forwarded as a bearer credential. Empty means the client's API key.
	Token string
}

// Response is the final upstream answer after retries.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
	URL         string
}

// IsJSON reports whether the upstream labelled its body as JSON.
func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "json")
}

// StatusError is a non-2xx answer from the ERP. It unwraps to the matching apperrors sentinel.
type StatusError struct {
	Status  int
	URL     string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream responded %d", e.Status)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return apperrors.ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case e.Status == http.StatusConflict:
		return apperrors.ErrDuplicate
	case e.Status >= http.StatusInternalServerError:
		return apperrors.ErrUpstream
	default:
		return apperrors.ErrValidation
	}
}

// Client talks to the ERP through resty. resty's own retries are disabled; retry.Policy owns them.
type Client struct {
	http   *resty.Client
	policy retry.Policy
	logger *slog.Logger
}

type Option func(*Client)

// WithPolicy replaces the default 3 x (1s, 2s, 4s) policy.
func WithPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAPIKey sets the bearer credential used when a request carries no customer token.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		if key != "" {
			c.http.SetAuthToken(key)
		}
	}
}

// WithTimeout bounds a single attempt. Zero leaves attempts unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// New creates a client rooted at baseURL, e.g. http://erp:3000/api/public/export.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetRetryCount(0).
			SetHeader("Accept", "application/json"),
		policy: retry.DefaultPolicy(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs req under the retry policy and returns the last response whatever its status.
// An error is returned only when every attempt failed in transport.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	policy := c.policy
	userOnRetry := policy.OnRetry
	policy.OnRetry = func(n int, delay time.Duration, status int, err error) {
		metrics.APIClientRetries.Inc()
		c.logger.Warn("Retrying storefront API call",
			slog.String("path", req.Path),
			slog.Int("retry", n),
			slog.Duration("delay", delay),
			slog.Int("status", status),
			slog.Any("error", err),
		)
		if userOnRetry != nil {
			userOnRetry(n, delay, status, err)
		}
	}

	return retry.Do(ctx, policy, func(ctx context.Context) (*Response, error) {
		return c.once(ctx, req)
	}, func(r *Response) int { return r.Status })
}

func (c *Client) once(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	r := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(Query(req.Params))
	if req.Token != "" {
		r.SetAuthToken(req.Token)
	}
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	resp, err := r.Execute(method, "/"+strings.TrimLeft(req.Path, "/"))
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("erp", metrics.StatusClass(0)).Inc()
		return nil, fmt.Errorf("%w: %s %s: %v", apperrors.ErrUpstream, method, req.Path, err)
	}
	metrics.UpstreamRequests.WithLabelValues("erp", metrics.StatusClass(resp.StatusCode())).Inc()

	return &Response{
		Status:      resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
		URL:         resp.Request.URL,
	}, nil
}

// Query renders params, skipping nil values.
func Query(params Params) url.Values {
	values := url.Values{}
	for key, raw := range params {
		s, ok := paramString(raw)
		if !ok {
			continue
		}
		values.Set(key, s)
	}
	return values
}

func paramString(raw any) (string, bool) {
	if raw == nil {
		return "", false
	}
	v := reflect.ValueOf(raw)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
		raw = v.Interface()
	}
	switch x := raw.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}

// call performs req and decodes a 2xx JSON body into out. out may be nil.
func (c *Client) call(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status > 299 {
		se := &StatusError{Status: resp.Status, URL: resp.URL}
		if resp.IsJSON() {
			se.Message = errorMessage(resp.Body)
		}
		return se
	}
	if !resp.IsJSON() {
		c.logger.Error("Storefront API returned non-JSON",
			slog.String("url", resp.URL),
			slog.Int("status", resp.Status),
			slog.String("content_type", resp.ContentType),
		)
		return fmt.Errorf("%w: %s responded %d with %q", apperrors.ErrNonJSON, resp.URL, resp.Status, resp.ContentType)
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", apperrors.ErrNonJSON, resp.URL, err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// decodeList accepts either a bare JSON array or an envelope with a "data" array.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []T{}, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []T{}, nil
	}
	return envelope.Data, nil
}

func callList[T any](ctx context.Context, c *Client, req Request) ([]T, error) {
	var raw json.RawMessage
	if err := c.call(ctx, req, &raw); err != nil {
		return nil, err
	}
	items, err := decodeList[T](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", apperrors.ErrNonJSON, req.Path, err)
	}
	return items, nil
}

// IsClientError reports whether err is a definitive 4xx answer.
func IsClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status >= 400 && se.Status < 500
}
