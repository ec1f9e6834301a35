package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	"github.com/aaravmahajanofficial/storefront-console/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 4 << 20

// Client is the storefront's only way to talk to the backend REST API.
// It performs exactly one HTTP request per call: no retries, no backoff.
type Client struct {
	baseURL    *url.URL
	mediaURL   *url.URL
	csrfCookie string
	csrfHeader string
	http       *http.Client
}

var _ API = (*Client)(nil)

func NewClient(cfg config.Backend) (*Client, error) {

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend base url: %w", err)
	}

	media, err := url.Parse(cfg.MediaURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend media url: %w", err)
	}

	return &Client{
		baseURL:    base,
		mediaURL:   media,
		csrfCookie: cfg.CSRFCookie,
		csrfHeader: cfg.CSRFHeader,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

type call struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
}

func (c *Client) get(ctx context.Context, route, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, call{method: http.MethodGet, route: route, path: path, query: query})
}

func (c *Client) send(ctx context.Context, method, route, path string, body any) ([]byte, error) {
	return c.do(ctx, call{method: method, route: route, path: path, body: body})
}

func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {

	target := c.baseURL.JoinPath(cl.path)
	if len(cl.query) > 0 {
		target.RawQuery = cl.query.Encode()
	}
	// the backend routes all end in a slash
	if last := cl.path[len(cl.path)-1]; last == '/' && target.Path[len(target.Path)-1] != '/' {
		target.Path += "/"
	}

	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", cl.method, cl.route, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", cl.method, cl.route, err)
	}

	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	jar := JarFromContext(ctx)
	if jar != nil {
		for _, cookie := range jar.Cookies(target) {
			req.AddCookie(cookie)
		}
	}

	if isMutating(cl.method) {
		if jar != nil {
			if token, ok := jar.Get(c.csrfCookie); ok {
				req.Header.Set(c.csrfHeader, token)
			}
		}
		req.Header.Set("Referer", c.baseURL.String()+"/")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(cl.method, cl.route, "error", time.Since(start))
		return nil, fmt.Errorf("calling backend %s %s: %w", cl.method, cl.route, err)
	}
	defer resp.Body.Close()

	metrics.ObserveBackendCall(cl.method, cl.route, strconv.Itoa(resp.StatusCode), time.Since(start))

	if jar != nil {
		jar.SetCookies(target, resp.Cookies())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading backend %s %s response: %w", cl.method, cl.route, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respErr := &ResponseError{
			Method:     cl.method,
			Path:       cl.path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    extractMessage(body, resp.StatusCode, resp.Status),
			Body:       body,
		}

		slog.Default().DebugContext(ctx, "Backend call failed",
			slog.String("method", cl.method),
			slog.String("route", cl.route),
			slog.Int("status", resp.StatusCode),
			slog.String("message", respErr.Message))

		return nil, respErr
	}

	return body, nil
}

func decodeInto(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding backend response: %w", err)
	}

	return nil
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}

	return false
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

func pageQuery(q url.Values, page, pageSize int) url.Values {
	if q == nil {
		q = url.Values{}
	}

	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	return q
}
