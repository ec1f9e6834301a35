package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingOrderID means the backend reported success for a new order but sent no id back.
var ErrMissingOrderID = errors.New("order created without an id")

// ResponseError is returned for every non-success backend response. It carries the response.
type ResponseError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Message    string
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// extractMessage looks for the conventional error fields and falls back to the status text.
func extractMessage(body []byte, statusCode int, status string) string {
	var payload map[string]json.RawMessage

	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"error", "detail", "message"} {
			var s string
			if raw, ok := payload[key]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
				return s
			}
		}

		var nonField []string
		if raw, ok := payload["non_field_errors"]; ok && json.Unmarshal(raw, &nonField) == nil && len(nonField) > 0 {
			return nonField[0]
		}
	}

	if text := strings.TrimSpace(strings.TrimPrefix(status, fmt.Sprintf("%d", statusCode))); text != "" {
		return text
	}

	if text := http.StatusText(statusCode); text != "" {
		return text
	}

	return fmt.Sprintf("status %d", statusCode)
}
