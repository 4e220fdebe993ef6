package carbonapi

// Package carbonapi is the client for the National Grid carbon intensity
// API. Transport layer only - it fetches and decodes; chart geometry and
// page assembly live elsewhere.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"carbon-dash/internal/infra/log"
	"carbon-dash/internal/infra/retry"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BaseAPI is the public carbon intensity API endpoint.
const BaseAPI = "https://api.carbonintensity.org.uk"

// TimestampLayout is the minute-precision timestamp format the API uses
// in both URLs and response bodies.
const TimestampLayout = "2006-01-02T15:04Z"

// Client wraps the carbon intensity API with rate limiting, a circuit
// breaker and retries. The API is public and unauthenticated.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	rateLimiter     *rate.Limiter
	circuitBreaker  *gobreaker.CircuitBreaker
	retryOpts       retry.Options
	maxResponseSize int64
}

// NewClient returns a Client ready to use. baseURL overrides the API
// endpoint for tests; pass "" for the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseAPI
	}

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "CarbonIntensityAPI",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		baseURL: baseURL,
		// The public API asks for fair use; 5 rps with a small burst is
		// far more than the dashboard needs.
		rateLimiter:    rate.NewLimiter(rate.Limit(5), 10),
		circuitBreaker: circuitBreaker,
		retryOpts: retry.Options{
			MaxRetries: 3,
			BaseDelay:  300 * time.Millisecond,
			MaxDelay:   5 * time.Second,
		},
		maxResponseSize: 10 * 1024 * 1024,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DisableKeepAlives: false,
				MaxIdleConns:      10,
				IdleConnTimeout:   90 * time.Second,
			},
		},
	}
}

// MakeRequest performs a GET against the API with rate limiting, circuit
// breaking and retries, returning the raw response body.
func (c *Client) MakeRequest(ctx context.Context, endpoint string) ([]byte, error) {
	requestID := log.GenerateRequestID()
	startTime := time.Now()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	var respBody []byte
	doOnce := func() error {
		body, err := c.doRequest(ctx, requestID, endpoint, startTime)
		if err != nil {
			return err
		}
		respBody = body
		return nil
	}

	run := func() error {
		return retry.Do(ctx, c.retryOpts, doOnce)
	}

	var err error
	if c.circuitBreaker != nil {
		_, err = c.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, run()
		})
	} else {
		err = run()
	}
	if err != nil {
		log.LogError("Carbon API request failed",
			zap.String("request_id", requestID),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, err
	}

	return respBody, nil
}

func (c *Client) doRequest(ctx context.Context, requestID, endpoint string, startTime time.Time) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.LogRequest(requestID, http.MethodGet, endpoint, zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(startTime).Milliseconds()
		log.LogResponse(requestID, 0, duration, zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize))
	if err != nil {
		duration := time.Since(startTime).Milliseconds()
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	duration := time.Since(startTime).Milliseconds()
	log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	return respBody, nil
}

// GetCurrentIntensity fetches the current half-hour settlement period.
func (c *Client) GetCurrentIntensity(ctx context.Context) (*IntensityEntry, error) {
	respBody, err := c.MakeRequest(ctx, "/intensity")
	if err != nil {
		return nil, fmt.Errorf("failed to get current intensity: %w", err)
	}

	var resp IntensityResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intensity response: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("intensity response contains no data")
	}

	return &resp.Data[0], nil
}

// GetIntensityRange fetches half-hour intensity entries between from and
// to. The API serves past periods with measured values and future periods
// with forecasts only.
func (c *Client) GetIntensityRange(ctx context.Context, from, to time.Time) ([]IntensityEntry, error) {
	endpoint := fmt.Sprintf("/intensity/%s/%s",
		from.UTC().Format(TimestampLayout), to.UTC().Format(TimestampLayout))

	respBody, err := c.MakeRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get intensity range: %w", err)
	}

	var resp IntensityResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intensity range response: %w", err)
	}

	return resp.Data, nil
}

// GetGenerationMix fetches the current generation mix.
func (c *Client) GetGenerationMix(ctx context.Context) (*GenerationEntry, error) {
	respBody, err := c.MakeRequest(ctx, "/generation")
	if err != nil {
		return nil, fmt.Errorf("failed to get generation mix: %w", err)
	}

	var resp GenerationResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generation response: %w", err)
	}

	return &resp.Data, nil
}

// GetIntensityFactors fetches the emission factor per fuel in gCO₂/kWh.
func (c *Client) GetIntensityFactors(ctx context.Context) (map[string]int, error) {
	respBody, err := c.MakeRequest(ctx, "/intensity/factors")
	if err != nil {
		return nil, fmt.Errorf("failed to get intensity factors: %w", err)
	}

	var resp FactorsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal factors response: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("factors response contains no data")
	}

	return resp.Data[0], nil
}
