// Package webtest has helpers for handler tests: a recording fake of the
// upstream API, an app with a signed-in session and multipart builders.
package webtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/config"
	"restoran-backoffice/internal/database"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/session"
	"restoran-backoffice/internal/web"
)

const (
	UserID = "42"
	Email  = "chef@dar.ma"
)

type Call struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Upstream fakes both upstream hosts. Routes are keyed by "METHOD /path";
// anything else answers 404.
type Upstream struct {
	mu     sync.Mutex
	calls  []Call
	routes map[string]http.HandlerFunc
	Server *httptest.Server
}

func NewUpstream(t *testing.T) *Upstream {
	t.Helper()
	u := &Upstream{routes: map[string]http.HandlerFunc{}}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	u.mu.Lock()
	u.calls = append(u.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Header: r.Header.Clone(), Body: body})
	h, ok := u.routes[r.Method+" "+r.URL.Path]
	u.mu.Unlock()

	if !ok {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
		return
	}
	h(w, r)
}

// On registers a handler for method and path.
func (u *Upstream) On(method, path string, h http.HandlerFunc) *Upstream {
	u.mu.Lock()
	u.routes[method+" "+path] = h
	u.mu.Unlock()
	return u
}

// JSON registers a route that answers status with v encoded as JSON.
func (u *Upstream) JSON(method, path string, status int, v any) *Upstream {
	return u.On(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	})
}

func (u *Upstream) Calls() []Call {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]Call(nil), u.calls...)
}

// CallsTo counts the calls made to method and path.
func (u *Upstream) CallsTo(method, path string) int {
	n := 0
	for _, c := range u.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (u *Upstream) Client() *remote.Client {
	return remote.New(u.Server.Client(), u.Server.URL, u.Server.URL)
}

// Config is a valid config for tests.
func Config() *config.Config {
	return &config.Config{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		SessionTTL:      time.Hour,
		PollInterval:    time.Hour,
		PageSize:        5,
		DefaultLanguage: "en",
	}
}

// Deps wires the fake upstream and an in-memory audit store.
func Deps(t *testing.T, up *Upstream) *web.Deps {
	t.Helper()
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	return &web.Deps{Cfg: Config(), Remote: up.Client(), Audit: audit.NewService(db, nil)}
}

// App returns a fiber app that behaves as if UserID were signed in.
func App() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(i18n.Middleware("en"))
	app.Use(func(c *fiber.Ctx) error {
		session.Set(c, &session.Session{
			ID:            "sess-1",
			UserID:        UserID,
			Email:         Email,
			UpstreamToken: "up-token",
			ExpiresAt:     time.Now().Add(time.Hour),
		})
		return c.Next()
	})
	return app
}

// Do runs req against app and decodes a JSON body into a map.
func Do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func JSONRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Part is one file of a multipart request.
type Part struct {
	Field    string
	Filename string
	Data     []byte
}

func MultipartRequest(t *testing.T, method, target string, fields map[string][]string, files ...Part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.Field, f.Filename)
		require.NoError(t, err)
		_, err = fw.Write(f.Data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// JPEG is a small valid JPEG image.
func JPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for x := 0; x < 32; x++ {
		img.Set(x, x%24, color.RGBA{R: 180, G: 90, B: 20, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}
