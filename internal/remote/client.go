package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// HTTPClient is the subset of *http.Client the wrappers need.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the two upstream hosts. It carries no identity; use Store for
// calls scoped to a signed-in restaurant.
type Client struct {
	HTTP    HTTPClient
	MenuURL string
	SiteURL string
}

func New(httpClient HTTPClient, menuURL, siteURL string) *Client {
	return &Client{
		HTTP:    httpClient,
		MenuURL: strings.TrimRight(menuURL, "/"),
		SiteURL: strings.TrimRight(siteURL, "/"),
	}
}

// Store binds the client to one restaurant. userID is sent as a path segment or
// a userId parameter, whichever the endpoint expects; token (if any) as a bearer.
func (c *Client) Store(userID, token string) *Store {
	return &Store{c: c, userID: userID, token: token}
}

type Store struct {
	c      *Client
	userID string
	token  string
}

func (s *Store) UserID() string { return s.userID }

// request is one upstream call.
type request struct {
	method      string
	base        string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	token       string
}

func (c *Client) endpoint(base, path string, query url.Values) string {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	u := c.endpoint(r.base, r.path, r.query)
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, fmt.Errorf("istek oluşturulamadı: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, u, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: yanıt okunamadı: %w", r.method, u, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     r.method,
			URL:        u,
			Body:       truncate(string(data), maxErrorBody),
		}
	}
	return data, nil
}

func (s *Store) send(ctx context.Context, r request) ([]byte, error) {
	r.token = s.token
	return s.c.send(ctx, r)
}

// call sends r and decodes a JSON response into out (when out is non-nil).
func (s *Store) call(ctx context.Context, r request, out any) error {
	data, err := s.send(ctx, r)
	if err != nil {
		return err
	}
	return decode(r, data, out)
}

func (s *Store) callJSON(ctx context.Context, r request, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("istek gövdesi kodlanamadı: %w", err)
	}
	r.body = bytes.NewReader(b)
	r.contentType = "application/json"
	return s.call(ctx, r, out)
}

func (s *Store) count(ctx context.Context, base, path string, query url.Values) (int64, error) {
	data, err := s.send(ctx, request{method: http.MethodGet, base: base, path: path, query: query})
	if err != nil {
		return 0, err
	}
	raw := strings.TrimSpace(string(data))
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	var wrapped struct {
		Count *int64 `json:"count"`
	}
	if json.Unmarshal(data, &wrapped) == nil && wrapped.Count != nil {
		return *wrapped.Count, nil
	}
	return 0, fmt.Errorf("GET %s: sayı beklenirken %q geldi", path, truncate(raw, 64))
}

func (s *Store) userQuery() url.Values {
	return url.Values{"userId": {s.userID}}
}

// seg escapes a value for use as a single path segment.
func seg(v any) string {
	return url.PathEscape(fmt.Sprint(v))
}

func decode(r request, data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: yanıt çözümlenemedi: %w", r.method, r.path, err)
	}
	return nil
}

// text reads a response that may be a bare string, a JSON string or an object
// with one of the given keys.
func text(data []byte, keys ...string) string {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return ""
	case trimmed[0] == '"':
		var s string
		if json.Unmarshal(trimmed, &s) == nil {
			return s
		}
	case trimmed[0] == '{':
		var m map[string]any
		if json.Unmarshal(trimmed, &m) == nil {
			for _, k := range keys {
				if v, ok := m[k].(string); ok {
					return v
				}
			}
		}
	}
	return string(trimmed)
}
