package prusa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nerrad567/prusa-mqtt-bridge/internal/infrastructure/config"
)

const (
	// statusPath is the PrusaLink printer status endpoint.
	statusPath = "/api/v1/status"

	// apiKeyHeader carries the PrusaLink API key.
	apiKeyHeader = "X-Api-Key"

	// defaultRequestTimeout applies when the config leaves the timeout at zero.
	defaultRequestTimeout = 5 * time.Second

	// maxStatusBody caps how much of a response is read.
	maxStatusBody = 1 << 20
)

// Client issues status requests to a PrusaLink printer.
//
// Each FetchStatus call is a single GET with no internal retry; the poll
// loop decides what happens on failure.
//
// Thread Safety: All methods are safe for concurrent use.
type Client struct {
	statusURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a printer client.
//
// cfg.Address may be a bare host ("192.168.1.50"), host:port, or a full
// base URL ("https://printer.local"). Bare hosts use plain HTTP.
func NewClient(cfg config.PrinterConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		statusURL: baseURL(cfg.Address) + statusPath,
		apiKey:    cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// baseURL normalises the configured printer address.
func baseURL(address string) string {
	address = strings.TrimRight(strings.TrimSpace(address), "/")
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	return address
}

// StatusURL returns the full URL FetchStatus requests.
func (c *Client) StatusURL() string {
	return c.statusURL
}

// FetchStatus requests the printer status and extracts a Snapshot.
//
// Parameters:
//   - ctx: Context for cancellation; the request is also bounded by the
//     client timeout
//
// Returns:
//   - Snapshot: Telemetry for this cycle
//   - error: ErrPrinterUnreachable or ErrMalformedResponse
func (c *Client) FetchStatus(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusURL, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: building request: %w", ErrPrinterUnreachable, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrPrinterUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain body to allow connection reuse
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxStatusBody))
		return Snapshot{}, fmt.Errorf("%w: status %d", ErrPrinterUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxStatusBody))
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: reading body: %w", ErrPrinterUnreachable, err)
	}

	return parseStatus(body)
}
