package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const maxErrorBody = 512

// APIError is a non-2xx response from an upstream host.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Detail())
}

// Detail is the most readable reason the server gave: its "message" or "error"
// field, the raw body, or the status text.
func (e *APIError) Detail() string {
	body := strings.TrimSpace(e.Body)
	if strings.HasPrefix(body, "{") {
		var m map[string]any
		if json.Unmarshal([]byte(body), &m) == nil {
			for _, k := range []string{"message", "error"} {
				if v, ok := m[k].(string); ok && v != "" {
					return v
				}
			}
		}
	}
	if body != "" {
		return body
	}
	return http.StatusText(e.StatusCode)
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

// AsAPIError unwraps err into an *APIError when there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func hasStatus(err error, code int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == code
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ErrNoUser is returned by calls that need a restaurant identity when none is set.
var ErrNoUser = errors.New("userId boş")
