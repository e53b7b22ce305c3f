// Package backend talks to the RentalAI data API and the ML API over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ymoumine/RentalAI/internal/platform/logger"
	"github.com/ymoumine/RentalAI/internal/platform/metrics"
	"github.com/ymoumine/RentalAI/internal/port/cache"
	"github.com/ymoumine/RentalAI/internal/prediction/domain"
)

const (
	EndpointListings          = "get_data"
	EndpointRentByMonth       = "get_rent_by_month"
	EndpointRentDistribution  = "get_rent_distr"
	EndpointFeatureImportance = "get_importance"
	EndpointPrediction        = "get_prediction"

	cacheKeyPrefix = "rentalai:upstream:"
	maxBodyBytes   = 64 << 20
	tracerName     = "github.com/ymoumine/RentalAI/internal/adapter/backend"
)

var (
	// ErrUpstreamStatus wraps non-2xx answers.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	// ErrMalformedPayload wraps bodies that cannot be decoded into the expected shape.
	ErrMalformedPayload = errors.New("malformed upstream payload")
	// ErrUpstreamReported wraps an "error" message sent back by the upstream itself.
	ErrUpstreamReported = errors.New("upstream reported an error")
)

// Options configures a Client. Zero values fall back to sane defaults.
type Options struct {
	BackendURL    string
	MLURL         string
	PredictionURL string
	Timeout       time.Duration
	CacheTTL      time.Duration
	Cache         cache.CacheRepository
	HTTPClient    *http.Client
}

// Client implements the upstream ports.
type Client struct {
	httpClient    *http.Client
	backendURL    string
	mlURL         string
	predictionURL string
	timeout       time.Duration
	cache         cache.CacheRepository
	cacheTTL      time.Duration
	metrics       *metrics.MetricsManager
	tracer        trace.Tracer
	logger        *logger.Logger
}

func NewClient(opts Options, m *metrics.MetricsManager, log *logger.Logger) *Client {
	c := &Client{
		httpClient:    opts.HTTPClient,
		backendURL:    opts.BackendURL,
		mlURL:         opts.MLURL,
		predictionURL: opts.PredictionURL,
		timeout:       opts.Timeout,
		cache:         opts.Cache,
		cacheTTL:      opts.CacheTTL,
		metrics:       m,
		tracer:        otel.Tracer(tracerName),
		logger:        log.Named("backend_client"),
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.predictionURL == "" {
		c.predictionURL = c.backendURL
	}
	if c.timeout <= 0 {
		c.timeout = 15 * time.Second
	}
	return c
}

// FetchListings returns the raw listings body. Callers normalize it.
func (c *Client) FetchListings(ctx context.Context) ([]byte, error) {
	return c.getCached(ctx, EndpointListings, c.backendURL, nil)
}

func (c *Client) FetchRentByMonth(ctx context.Context) (string, error) {
	return c.fetchImage(ctx, EndpointRentByMonth, c.backendURL)
}

func (c *Client) FetchRentDistribution(ctx context.Context) (string, error) {
	return c.fetchImage(ctx, EndpointRentDistribution, c.backendURL)
}

func (c *Client) FetchFeatureImportance(ctx context.Context) (string, error) {
	return c.fetchImage(ctx, EndpointFeatureImportance, c.mlURL)
}

// Predict posts the feature vector and decodes the model's answer. Never cached.
func (c *Client) Predict(ctx context.Context, req domain.Request) (domain.Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return domain.Result{}, fmt.Errorf("backend.Predict: marshal request: %w", err)
	}

	body, err := c.do(ctx, EndpointPrediction, http.MethodPost, c.predictionURL+"/"+EndpointPrediction, payload)
	if err != nil {
		return domain.Result{}, err
	}
	if msg := reportedError(body); msg != "" {
		return domain.Result{}, fmt.Errorf("%w: %s: %s", ErrUpstreamReported, EndpointPrediction, msg)
	}

	var result domain.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.Result{}, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, EndpointPrediction, err)
	}
	return result, nil
}

type imageResponse struct {
	ImagePath string `json:"image_path"`
	Error     string `json:"error"`
}

func decodeImage(endpoint string, body []byte) (string, error) {
	var resp imageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedPayload, endpoint, err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("%w: %s: %s", ErrUpstreamReported, endpoint, resp.Error)
	}
	if resp.ImagePath == "" {
		return "", fmt.Errorf("%w: %s: image_path missing", ErrMalformedPayload, endpoint)
	}
	return resp.ImagePath, nil
}

func (c *Client) fetchImage(ctx context.Context, endpoint, base string) (string, error) {
	var path string
	_, err := c.getCached(ctx, endpoint, base, func(body []byte) error {
		p, err := decodeImage(endpoint, body)
		path = p
		return err
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// getCached serves a GET from the payload cache when possible. Bodies are
// cached only after accept (if any) succeeds on them.
func (c *Client) getCached(ctx context.Context, endpoint, base string, accept func([]byte) error) ([]byte, error) {
	key := cacheKeyPrefix + endpoint

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		switch {
		case err == nil && (accept == nil || accept(cached) == nil):
			c.metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		case err == nil:
			c.metrics.CacheLookupsTotal.WithLabelValues("stale").Inc()
			if err := c.cache.Delete(ctx, key); err != nil {
				c.logger.Warn("Failed to evict stale payload", zap.String("key", key), zap.Error(err))
			}
		case errors.Is(err, cache.ErrNotFound):
			c.metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		default:
			c.metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
			c.logger.Warn("Payload cache lookup failed, bypassing", zap.String("key", key), zap.Error(err))
		}
	}

	body, err := c.do(ctx, endpoint, http.MethodGet, base+"/"+endpoint, nil)
	if err != nil {
		return nil, err
	}
	if accept != nil {
		if err := accept(body); err != nil {
			return nil, err
		}
	}

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
			c.logger.Warn("Failed to cache upstream payload", zap.String("key", key), zap.Error(err))
		}
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint, method, url string, payload []byte) (body []byte, err error) {
	ctx, span := c.tracer.Start(ctx, "backend."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", url),
		),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	outcome := "ok"
	defer func() {
		c.metrics.UpstreamLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		c.metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		outcome = "error"
		return nil, fmt.Errorf("backend.%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "error"
		c.logger.Error("Upstream request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("backend.%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		outcome = "error"
		return nil, fmt.Errorf("backend.%s: read body: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = "status_" + strconv.Itoa(resp.StatusCode/100) + "xx"
		c.logger.Warn("Upstream returned non-success status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %s returned %d", ErrUpstreamStatus, endpoint, resp.StatusCode)
	}
	return body, nil
}

func reportedError(body []byte) string {
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Error
}
