package gateway

import (
	"bytes"
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

	"github.com/shareit-hub/service-shareit/internal/config"
	"github.com/shareit-hub/service-shareit/pkg/middleware"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrUpstreamUnavailable is returned while the circuit breaker refuses calls.
var ErrUpstreamUnavailable = errors.New("shareit server unavailable")

// Call describes one request forwarded to the server.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	// UserID is sent as X-Sharer-User-Id when non-zero.
	UserID int64
	Body   any
}

// Response is the server's reply, relayed to the client as is.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// StatusError marks an error status so the breaker can tell client mistakes from server faults.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with status %d", e.StatusCode)
}

// ServerClient forwards calls to the ShareIt server through a circuit breaker.
type ServerClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewServerClient creates a client for the server at baseURL.
func NewServerClient(baseURL string, timeout time.Duration, breakerCfg config.BreakerConfig, logger *zap.Logger) *ServerClient {
	return &ServerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    newBreaker("shareit-server", breakerCfg, logger),
		logger:     logger,
	}
}

func newBreaker(name string, cfg config.BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		Interval:    0,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > cfg.MaxConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var statusErr *StatusError
			return errors.As(err, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500
		},
	})
}

// Do forwards call. Any response the server produced is returned with a nil error,
// whatever its status.
func (c *ServerClient) Do(ctx context.Context, call Call) (*Response, error) {
	var resp *Response
	_, err := c.breaker.Execute(func() (interface{}, error) {
		r, err := c.send(ctx, call)
		if err != nil {
			return nil, err
		}
		resp = r
		if r.StatusCode >= http.StatusBadRequest {
			return r, &StatusError{StatusCode: r.StatusCode}
		}
		return r, nil
	})

	if resp != nil {
		return resp, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrUpstreamUnavailable
	}
	return nil, err
}

func (c *ServerClient) send(ctx context.Context, call Call) (*Response, error) {
	target := c.baseURL + call.Path
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	var body io.Reader
	if call.Body != nil {
		raw, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if call.UserID != 0 {
		req.Header.Set(middleware.UserIDHeader, strconv.FormatInt(call.UserID, 10))
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s %s failed: %w", call.Method, call.Path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}

// Ping checks the server's liveness endpoint without going through the breaker.
func (c *ServerClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: res.StatusCode}
	}
	return nil
}
