// Package homeassistant queries the Home Assistant Supervisor API for update
// availability and entity connectivity.
package homeassistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/smazurov/statusled/internal/logging"
)

// DefaultURL is the Supervisor address inside a Home Assistant add-on.
const DefaultURL = "http://supervisor"

const (
	defaultAttempts   = 2
	defaultRetryDelay = 250 * time.Millisecond
	maxBodyBytes      = 8 << 20
)

// Client is an HTTP client for the Supervisor API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	attempts   uint
	retryDelay time.Duration
	maxBody    int64
}

// NewClient creates a Supervisor client. A nil httpClient uses a client
// without its own timeout; callers bound each query through the context.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
		logger:     logging.GetLogger("homeassistant"),
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
		maxBody:    maxBodyBytes,
	}
	if token == "" {
		c.logger.Warn("Supervisor token not found, API calls will fail")
	}
	return c
}

// CoreInfo returns Home Assistant Core version info.
func (c *Client) CoreInfo(ctx context.Context) (*VersionInfo, error) {
	return c.versionInfo(ctx, "/core/info")
}

// OSInfo returns Home Assistant OS version info.
func (c *Client) OSInfo(ctx context.Context) (*VersionInfo, error) {
	return c.versionInfo(ctx, "/os/info")
}

// SupervisorInfo returns Supervisor version info.
func (c *Client) SupervisorInfo(ctx context.Context) (*VersionInfo, error) {
	return c.versionInfo(ctx, "/supervisor/info")
}

// Addons returns the installed add-ons.
func (c *Client) Addons(ctx context.Context) ([]Addon, error) {
	var resp envelope[addonList]
	if err := c.get(ctx, "/addons", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Addons, nil
}

// States returns every entity state known to Home Assistant Core.
func (c *Client) States(ctx context.Context) ([]Entity, error) {
	var states []Entity
	if err := c.get(ctx, "/core/api/states", &states); err != nil {
		return nil, err
	}
	return states, nil
}

func (c *Client) versionInfo(ctx context.Context, endpoint string) (*VersionInfo, error) {
	var resp envelope[VersionInfo]
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// get performs an authenticated GET and decodes the JSON body into out.
// Transport errors and 5xx responses are retried; 4xx responses are not.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if c.token == "" {
		return &QueryError{Endpoint: endpoint, Cause: ErrNoToken}
	}

	err := retry.Do(
		func() error { return c.do(ctx, endpoint, out) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var qe *QueryError
			if errors.As(err, &qe) && qe.Status >= 400 && qe.Status < 500 {
				return false
			}
			return !errors.Is(err, ErrResponseTooLarge)
		}),
		retry.OnRetry(func(attempt uint, err error) {
			c.logger.Debug("Retrying Supervisor request", "endpoint", endpoint, "attempt", attempt+1, "error", err)
		}),
	)
	if err == nil {
		return nil
	}

	var qe *QueryError
	if errors.As(err, &qe) {
		return qe
	}
	return &QueryError{Endpoint: endpoint, Cause: err}
}

func (c *Client) do(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return &QueryError{Endpoint: endpoint, Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &QueryError{Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &QueryError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Cause:    fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body))),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return &QueryError{Endpoint: endpoint, Status: resp.StatusCode, Cause: fmt.Errorf("failed to read response: %w", err)}
	}
	if int64(len(body)) > c.maxBody {
		return &QueryError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Cause:    fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody),
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &QueryError{Endpoint: endpoint, Status: resp.StatusCode, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
