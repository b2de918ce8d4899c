// Package newsapi implements the HTTP client of the news API: the filtered
// article list, the article detail record and keyword search.
package newsapi

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"newsflix/internal/domain/entity"
	"newsflix/internal/observability/logging"
	"newsflix/internal/observability/metrics"
	"newsflix/internal/observability/requestid"
	"newsflix/internal/observability/tracing"
	"newsflix/internal/resilience/circuitbreaker"
	"newsflix/internal/resilience/retry"
)

// Endpoint labels used in metrics, spans and error ops.
const (
	EndpointList   = "list"
	EndpointDetail = "article"
	EndpointSearch = "search"
)

const (
	pathList   = "/fetch_main_articles.php"
	pathDetail = "/fetch_article.php"
	pathSearch = "/fetch_search.php"
)

// Result labels of newsapi_requests_total.
const (
	resultSuccess        = "success"
	resultHTTPError      = "http_error"
	resultTransportError = "transport_error"
	resultFormatError    = "format_error"
	resultCircuitOpen    = "circuit_open"
	resultRateLimited    = "rate_limited"
)

// Client calls the news API.
//
// Every call goes through the rate limiter, the optional retry loop and the
// circuit breaker, in that order. Concurrent GetArticle calls for the same id
// share one request.
//
// Thread safety: Client is safe for concurrent use.
type Client struct {
	cfg     Config
	base    *url.URL
	http    *http.Client
	breaker *circuitbreaker.Breaker
	limiter *RateLimiter
	retry   retry.Config
	logger  *slog.Logger
	tracer  trace.Tracer
	details singleflight.Group
}

// Option customizes a Client.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	httpClient     *http.Client
	breaker        *circuitbreaker.Breaker
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTracerProvider sets the provider of call and transport spans.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithHTTPClient replaces the HTTP client. Its transport is used as-is.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithCircuitBreaker replaces the default "news-api" breaker.
func WithCircuitBreaker(cb *circuitbreaker.Breaker) Option {
	return func(o *options) { o.breaker = cb }
}

// NewClient creates a Client after validating cfg.
//
// The default HTTP client stacks the tracing transport over the request-id
// transport over a tuned http.Transport, with cfg.Timeout as the overall
// request timeout.
//
// Example:
//
//	client, err := newsapi.NewClient(newsapi.LoadConfigFromEnv(newsapi.DefaultConfig()),
//	    newsapi.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	articles, err := client.ListArticles(ctx, entity.DefaultFilterState())
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("newsapi: parse base url: %w", err)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.breaker == nil {
		o.breaker = circuitbreaker.New(circuitbreaker.NewsAPIConfig(), recordBreakerState)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &tracing.Transport{
				TracerProvider: o.tracerProvider,
				Base: &requestid.Transport{
					Base: &http.Transport{
						Proxy:               http.ProxyFromEnvironment,
						MaxIdleConns:        20,
						MaxIdleConnsPerHost: 10,
						IdleConnTimeout:     90 * time.Second,
						TLSClientConfig: &tls.Config{
							MinVersion: tls.VersionTLS12,
						},
					},
				},
			},
		}
	}

	return &Client{
		cfg:     cfg,
		base:    base,
		http:    o.httpClient,
		breaker: o.breaker,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		retry:   retry.NewsAPIConfig(cfg.RetryAttempts),
		logger:  o.logger,
		tracer:  tracing.TracerFrom(o.tracerProvider),
	}, nil
}

func recordBreakerState(name string, _, to gobreaker.State) {
	metrics.RecordBreakerState(name, int(to))
}

// Available reports whether the circuit breaker currently lets calls through.
func (c *Client) Available() bool {
	return !c.breaker.Open()
}

// ListArticles returns the articles of one category in one language.
// An empty result is not an error.
func (c *Client) ListArticles(ctx context.Context, filters entity.FilterState) ([]entity.ArticleSummary, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	params := url.Values{
		"category": {string(filters.Category)},
		"language": {string(filters.Language)},
	}
	var out []entity.ArticleSummary
	err := c.call(ctx, EndpointList, pathList, params, func(body []byte) error {
		var err error
		out, err = decodeList(EndpointList, body)
		return err
	})
	return out, err
}

// Search returns the articles matching query in lang.
// The query is trimmed; an empty query is rejected without a network call.
func (c *Client) Search(ctx context.Context, query string, lang entity.Language) ([]entity.ArticleSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &entity.ValidationError{Field: "q", Message: "query is empty"}
	}
	params := url.Values{
		"q":    {query},
		"lang": {string(lang)},
	}
	var out []entity.ArticleSummary
	err := c.call(ctx, EndpointSearch, pathSearch, params, func(body []byte) error {
		var err error
		out, err = decodeList(EndpointSearch, body)
		return err
	})
	return out, err
}

// GetArticle returns the detail record of article id.
//
// Callers asking for the same id while a request is in flight share its result.
// The shared request is not canceled by one caller's ctx; that caller returns
// early with a FetchError wrapping ctx.Err() instead.
func (c *Client) GetArticle(ctx context.Context, id int64) (entity.DetailedArticle, error) {
	if id <= 0 {
		return entity.DetailedArticle{}, &entity.ValidationError{Field: "id_article", Message: "must be positive"}
	}

	ch := c.details.DoChan(strconv.FormatInt(id, 10), func() (interface{}, error) {
		return c.getArticle(context.WithoutCancel(ctx), id)
	})

	select {
	case <-ctx.Done():
		return entity.DetailedArticle{}, &entity.FetchError{Op: EndpointDetail, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return entity.DetailedArticle{}, res.Err
		}
		return res.Val.(entity.DetailedArticle), nil
	}
}

func (c *Client) getArticle(ctx context.Context, id int64) (entity.DetailedArticle, error) {
	params := url.Values{"id_article": {strconv.FormatInt(id, 10)}}
	var out entity.DetailedArticle
	err := c.call(ctx, EndpointDetail, pathDetail, params, func(body []byte) error {
		var err error
		out, err = decodeDetail(EndpointDetail, body)
		return err
	})
	return out, err
}

// call runs one API request end to end and hands the body to decode.
// Every error it returns is a *entity.FetchError or a *entity.FormatError.
func (c *Client) call(ctx context.Context, endpoint, path string, params url.Values, decode func([]byte) error) (err error) {
	start := time.Now()
	ctx, reqID := requestid.Ensure(ctx)
	logger := logging.WithRequestID(ctx, c.logger).With(slog.String("endpoint", endpoint))

	ctx, span := c.tracer.Start(ctx, "newsapi."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("newsapi.endpoint", endpoint),
			attribute.String("request_id", reqID),
		),
	)
	result := resultSuccess
	defer func() {
		duration := time.Since(start)
		metrics.RecordAPIRequest(endpoint, result, duration)
		span.SetAttributes(attribute.String("newsapi.result", result))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, result)
			logger.Warn("news api call failed",
				slog.String("result", result),
				slog.Duration("duration", duration),
				slog.Any("error", err))
		} else {
			logger.Debug("news api call succeeded", slog.Duration("duration", duration))
		}
		span.End()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		result = resultRateLimited
		return &entity.FetchError{Op: endpoint, Err: fmt.Errorf("rate limit: %w", err)}
	}

	target := c.endpointURL(path, params)
	var raw *rawResponse
	policy := c.retry
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		span.AddEvent("retry", trace.WithAttributes(attribute.Int("attempt", attempt)))
		logger.Warn("news api call failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.Any("error", err))
	}
	retryErr := retry.WithBackoff(ctx, policy, func() error {
		res, err := circuitbreaker.Do(c.breaker, func() (*rawResponse, error) {
			return c.doRequest(ctx, target)
		})
		raw = res
		return err
	})
	if retryErr != nil {
		var fetchErr *entity.FetchError
		result, fetchErr = classify(endpoint, retryErr)
		if result == resultCircuitOpen {
			logger.Warn("news api circuit breaker open, request rejected",
				slog.String("state", c.breaker.State().String()))
		}
		return fetchErr
	}

	metrics.RecordAPIResponseSize(endpoint, len(raw.body))
	span.SetAttributes(attribute.Int("http.response_size", len(raw.body)))
	if raw.truncated {
		result = resultFormatError
		return &entity.FormatError{Op: endpoint, Err: fmt.Errorf("response exceeds %d bytes", c.cfg.MaxBodySize)}
	}
	if err := decode(raw.body); err != nil {
		result = resultFormatError
		return err
	}
	return nil
}

type rawResponse struct {
	body      []byte
	truncated bool
}

// doRequest performs the HTTP round trip. Only transport failures and
// non-2xx statuses count against the circuit breaker.
func (c *Client) doRequest(ctx context.Context, target string) (*rawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > c.cfg.MaxBodySize {
		return &rawResponse{body: body[:c.cfg.MaxBodySize], truncated: true}, nil
	}
	return &rawResponse{body: body}, nil
}

func (c *Client) endpointURL(path string, params url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = params.Encode()
	return u.String()
}

// classify maps a failed round trip to a metrics result and a FetchError.
func classify(endpoint string, err error) (string, *entity.FetchError) {
	if circuitbreaker.Rejected(err) {
		return resultCircuitOpen, &entity.FetchError{Op: endpoint, Err: err}
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return resultHTTPError, &entity.FetchError{Op: endpoint, StatusCode: httpErr.StatusCode, Err: httpErr}
	}
	return resultTransportError, &entity.FetchError{Op: endpoint, Err: err}
}
