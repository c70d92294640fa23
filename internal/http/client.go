package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/auth"
	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/fivetwenty-io/reddit-client/internal/http"

// Client is the HTTP client for the Reddit API.
type Client struct {
	baseURL      *url.URL
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	userAgent    string
	logger       reddit.Logger
	debug        bool
	metrics      *Metrics
	tracer       trace.Tracer
}

// Request represents an HTTP request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// RateLimit is the quota reported by the X-Ratelimit-* response headers.
type RateLimit struct {
	Used      int
	Remaining float64
	Reset     time.Duration
}

// RateLimit parses the rate limit headers. ok is false when they are absent.
func (r *Response) RateLimit() (RateLimit, bool) {
	if r == nil || r.Headers == nil {
		return RateLimit{}, false
	}

	remaining := r.Headers.Get("X-Ratelimit-Remaining")
	if remaining == "" {
		return RateLimit{}, false
	}

	var limit RateLimit

	limit.Remaining, _ = strconv.ParseFloat(remaining, 64)
	limit.Used, _ = strconv.Atoi(r.Headers.Get("X-Ratelimit-Used"))

	reset, err := strconv.Atoi(r.Headers.Get("X-Ratelimit-Reset"))
	if err == nil {
		limit.Reset = time.Duration(reset) * time.Second
	}

	return limit, true
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger reddit.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig configures retry behavior.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPTimeout sets the per-attempt timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithMetrics records request metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithTracerProvider sets the tracer provider. The global provider is used by default.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = provider.Tracer(tracerName)
	}
}

// NewClient creates a new HTTP client.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	parsedURL, _ := url.Parse(strings.TrimRight(baseURL, "/"))

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      parsedURL,
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    constants.DefaultUserAgent,
		tracer:       otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.metrics != nil {
		metrics := client.metrics
		retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if attempt > 0 {
				metrics.retries.WithLabelValues(req.Method).Inc()
			}
		}
	}

	return client
}

// checkRetry retries connection errors, 5xx responses and 429 responses.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return true, nil
	}

	return false, nil
}

// Do executes an HTTP request. On a 401 the token is refreshed and the request
// replayed once. For error statuses both the response and an error are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "reddit.http "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
		),
	)
	defer span.End()

	resp, err := c.do(ctx, req)
	if resp != nil && resp.StatusCode == http.StatusUnauthorized && c.tokenManager != nil {
		refreshErr := c.tokenManager.RefreshToken(ctx)
		if refreshErr == nil {
			span.AddEvent("token refreshed")

			resp, err = c.do(ctx, req)
		} else if c.logger != nil {
			c.logger.Warn("token refresh after 401 failed", map[string]interface{}{
				"error": refreshErr.Error(),
			})
		}
	}

	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return resp, err
}

func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.buildURL(req.Path, req.Query)

	var body []byte

	if req.Body != nil {
		switch b := req.Body.(type) {
		case []byte:
			body = b
		case string:
			body = []byte(b)
		default:
			var err error

			body, err = json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("marshaling request body: %w", err)
			}
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting auth token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"body":   string(body),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.Method, 0, time.Since(start))

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.metrics.observe(req.Method, httpResp.StatusCode, time.Since(start))

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if limit, ok := resp.RateLimit(); ok {
		c.metrics.setRemaining(limit.Remaining)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"body":   string(respBody),
		})
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return resp, c.parseError(httpResp.StatusCode, respBody)
	}

	return resp, nil
}

func (c *Client) parseError(statusCode int, body []byte) error {
	errResp, err := reddit.ParseResponseError(statusCode, body)
	if err != nil {
		return &reddit.ResponseError{
			StatusCode: statusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	return errResp
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := *c.baseURL

	ref, err := url.Parse(path)
	if err != nil {
		u.Path = c.baseURL.Path + path
	} else {
		u.Path = c.baseURL.Path + ref.Path
		u.RawPath = c.baseURL.EscapedPath() + ref.EscapedPath()
	}

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

// IsStatus reports whether err is a ResponseError with the given status.
func IsStatus(err error, status int) bool {
	errResp := &reddit.ResponseError{}

	return errors.As(err, &errResp) && errResp.StatusCode == status
}
