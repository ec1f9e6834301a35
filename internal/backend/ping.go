package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/metrics"
)

// Ping checks that the backend answers HTTP at all. Any status below 500 counts
// as reachable; the API root may well reply 401 or 404.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath("api").String()+"/", nil)
	if err != nil {
		return fmt.Errorf("building ping request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(http.MethodGet, "/api/", "error", time.Since(start))
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	metrics.ObserveBackendCall(http.MethodGet, "/api/", strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}

	return nil
}
