package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/metrics"
)

// FetchMedia streams a file from backend media storage. Non-success statuses are
// not errors here: the proxy forwards them as they are.
func (c *Client) FetchMedia(ctx context.Context, path string) (*http.Response, error) {
	target := c.mediaURL.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building media request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(http.MethodGet, "/media/{path}", "error", time.Since(start))
		return nil, fmt.Errorf("fetching media %s: %w", path, err)
	}

	metrics.ObserveBackendCall(http.MethodGet, "/media/{path}", strconv.Itoa(resp.StatusCode), time.Since(start))

	return resp, nil
}
