package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/poller"
	"restoran-backoffice/internal/session"
	"restoran-backoffice/internal/webtest"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestToken_CarriesSealedUpstreamToken(t *testing.T) {
	tok, sess, err := GenerateToken(secret, time.Hour, "42", "chef@dar.ma", "up-token")
	require.NoError(t, err)
	assert.NotContains(t, tok, "up-token")

	got, err := ParseToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "42", got.UserID)
	assert.Equal(t, "up-token", got.UpstreamToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt, 2*time.Second)
}

func TestParseToken_Rejects(t *testing.T) {
	tok, _, err := GenerateToken(secret, time.Hour, "42", "", "")
	require.NoError(t, err)

	_, err = ParseToken(strings.Repeat("x", 32), tok)
	assert.Error(t, err, "wrong secret")

	expired, _, err := GenerateToken(secret, -time.Minute, "42", "", "")
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.Error(t, err, "expired")

	_, err = ParseToken(secret, "")
	assert.Error(t, err)
}

func TestSeal(t *testing.T) {
	sealed, err := seal(secret, "hello")
	require.NoError(t, err)

	plain, err := open(secret, sealed)
	require.NoError(t, err)
	assert.Equal(t, "hello", plain)

	_, err = open(strings.Repeat("y", 32), sealed)
	assert.Error(t, err)

	_, err = open(secret, sealed[:10])
	assert.Error(t, err)
}

func revocationStores(t *testing.T) map[string]Revocations {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return map[string]Revocations{
		"redis":  NewRedisRevocations(rdb),
		"memory": NewMemoryRevocations(),
	}
}

func TestRevocations(t *testing.T) {
	ctx := context.Background()
	for name, revs := range revocationStores(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := revs.IsRevoked(ctx, "a")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, revs.Revoke(ctx, "a", time.Now().Add(time.Hour)))
			ok, err = revs.IsRevoked(ctx, "a")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, revs.Revoke(ctx, "b", time.Now().Add(-time.Hour)))
			ok, err = revs.IsRevoked(ctx, "b")
			require.NoError(t, err)
			assert.False(t, ok, "already expired sessions need no entry")
		})
	}
}

func TestRedisRevocations_Expire(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	revs := NewRedisRevocations(rdb)
	ctx := context.Background()

	require.NoError(t, revs.Revoke(ctx, "a", time.Now().Add(time.Minute)))
	mr.FastForward(2 * time.Minute)

	ok, err := revs.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func gatedApp(revs Revocations) *fiber.App {
	app := fiber.New()
	app.Use(i18n.Middleware("en"))
	app.Get("/admin/foods", RequireSession(secret, revs), func(c *fiber.Ctx) error {
		s, _ := session.From(c)
		return c.SendString(s.UserID + ":" + s.UpstreamToken)
	})
	return app
}

func TestRequireSession(t *testing.T) {
	revs := NewMemoryRevocations()
	app := gatedApp(revs)
	tok, sess, err := GenerateToken(secret, time.Hour, "42", "", "up")
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/foods", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/foods", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("html redirects to login", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/foods?page=2", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login?next=%2Fadmin%2Ffoods%3Fpage%3D2", resp.Header.Get("Location"))
	})

	t.Run("api gets 401", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/admin/foods", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("revoked", func(t *testing.T) {
		require.NoError(t, revs.Revoke(context.Background(), sess.ID, sess.ExpiresAt))
		req := httptest.NewRequest("GET", "/admin/foods", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginHandler(t *testing.T) {
	up := webtest.NewUpstream(t)
	up.JSON("POST", "/api/users/login", 200, map[string]any{
		"token": "up-token",
		"user":  map[string]any{"id": 42, "email": "chef@dar.ma", "storeName": "Dar"},
	})
	for _, p := range []string{"/api/orders/count/table/42", "/api/orders/count/delivery/42", "/api/reservations/count/42"} {
		up.JSON("GET", p, 200, 1)
	}
	up.JSON("GET", "/api/messages/count", 200, 3)

	d := webtest.Deps(t, up)
	pm, err := poller.NewManager(time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pm.Shutdown() })
	d.Poller = pm

	app := fiber.New()
	app.Use(i18n.Middleware("en"))
	app.Post("/login", LoginHandler(d))

	resp, err := app.Test(webtest.JSONRequest("POST", "/login", map[string]string{"email": " Chef@Dar.ma ", "password": "pw"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	sc := cookieNamed(resp, SessionCookie)
	require.NotNil(t, sc)
	assert.True(t, sc.HttpOnly)
	uc := cookieNamed(resp, UserIDCookie)
	require.NotNil(t, uc)
	assert.Equal(t, "42", uc.Value)

	sess, err := ParseToken(secret, sc.Value)
	require.NoError(t, err)
	assert.Equal(t, "up-token", sess.UpstreamToken)

	sub, ok := pm.Get(sess.ID)
	require.True(t, ok, "login subscribes the badge poller")
	assert.Eventually(t, func() bool { return sub.Snapshot().Counts[poller.CounterMessages] == 3 }, time.Second, 10*time.Millisecond)
}

func TestLoginHandler_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		reply    any
		wantCode int
		wantMsg  string
	}{
		{name: "no user", status: 200, reply: map[string]any{"token": "x"}, wantCode: 401, wantMsg: "Invalid email or password"},
		{name: "rejected", status: 401, reply: map[string]any{"message": "bad"}, wantCode: 401, wantMsg: "Invalid email or password"},
		{name: "upstream down", status: 500, reply: map[string]any{}, wantCode: 502, wantMsg: "Login failed, please try again"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			up := webtest.NewUpstream(t)
			up.JSON("POST", "/api/users/login", tc.status, tc.reply)
			app := fiber.New()
			app.Use(i18n.Middleware("en"))
			app.Post("/login", LoginHandler(webtest.Deps(t, up)))

			status, body := webtest.Do(t, app, webtest.JSONRequest("POST", "/login", map[string]string{"email": "a@b.c", "password": "pw"}))
			assert.Equal(t, tc.wantCode, status)
			assert.Equal(t, tc.wantMsg, body["error"])
			assert.Equal(t, map[string]any{"email": "a@b.c"}, body["form"])
		})
	}
}

func TestLoginHandler_MissingFieldsMakeNoCall(t *testing.T) {
	up := webtest.NewUpstream(t)
	app := fiber.New()
	app.Post("/login", LoginHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, webtest.JSONRequest("POST", "/login", map[string]string{"email": "a@b.c"}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["fields"], "password")
	assert.Empty(t, up.Calls())
}

func TestLogoutHandler(t *testing.T) {
	up := webtest.NewUpstream(t)
	d := webtest.Deps(t, up)
	pm, err := poller.NewManager(time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pm.Shutdown() })
	d.Poller = pm

	tok, sess, err := GenerateToken(secret, time.Hour, "42", "", "")
	require.NoError(t, err)
	_, err = pm.Subscribe(sess.ID, nil, 0)
	require.NoError(t, err)

	revs := NewMemoryRevocations()
	app := fiber.New()
	app.Post("/logout", LogoutHandler(d, revs))

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	revoked, _ := revs.IsRevoked(context.Background(), sess.ID)
	assert.True(t, revoked)
	_, ok := pm.Get(sess.ID)
	assert.False(t, ok)

	sc := cookieNamed(resp, SessionCookie)
	require.NotNil(t, sc)
	assert.Empty(t, sc.Value)
}

func TestForgotPasswordHandler(t *testing.T) {
	up := webtest.NewUpstream(t)
	up.JSON("POST", "/api/users/forgot-password", 200, map[string]string{})
	app := fiber.New()
	app.Use(i18n.Middleware("en"))
	app.Post("/forgot-password", ForgotPasswordHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, webtest.JSONRequest("POST", "/forgot-password", map[string]string{"email": "not-an-email"}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please enter a valid email", body["error"])
	assert.Empty(t, up.Calls())

	status, _ = webtest.Do(t, app, webtest.JSONRequest("POST", "/forgot-password", map[string]string{"email": "chef@dar.ma"}))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, up.CallsTo("POST", "/api/users/forgot-password"))
}

func TestLangHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/lang", LangHandler())

	resp, err := app.Test(webtest.JSONRequest("POST", "/lang", map[string]string{"lang": "ar"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	lc := cookieNamed(resp, "lang")
	require.NotNil(t, lc)
	assert.Equal(t, "ar", lc.Value)
	assert.True(t, lc.Expires.After(time.Now().AddDate(0, 11, 0)))

	resp, err = app.Test(webtest.JSONRequest("POST", "/lang", map[string]string{"lang": "de"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/admin/foods", safeNext("/admin/foods"))
	assert.Equal(t, "/admin", safeNext("//evil.example"))
	assert.Equal(t, "/admin", safeNext("https://evil.example"))
}
