package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/poller"
	"restoran-backoffice/internal/webtest"
)

func TestDashboard_CardFailsAlone(t *testing.T) {
	up := webtest.NewUpstream(t)
	up.JSON("GET", "/visite/user/42/count", 200, 1280)
	up.JSON("GET", "/api/categories/names/42", 200, []string{"Tajines", "Soupes", "Desserts"})
	up.JSON("GET", "/api/foods/count/42", 500, map[string]string{"message": "down"})
	app := webtest.App()
	app.Get("/", DashboardHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, http.StatusOK, status)

	cards := body["cards"].([]any)
	require.Len(t, cards, 3)
	visits := cards[0].(map[string]any)
	assert.Equal(t, "Visits", visits["label"])
	assert.Equal(t, float64(1280), visits["value"])
	assert.Equal(t, float64(3), cards[1].(map[string]any)["value"])
	foods := cards[2].(map[string]any)
	assert.Nil(t, foods["value"])
	assert.Equal(t, "Could not load this figure", foods["error"])
}

func TestShell(t *testing.T) {
	up := webtest.NewUpstream(t)
	up.JSON("GET", "/api/users/42", 200, models.User{FirstName: "Salma", StoreName: "Dar Tajine"})
	var msgs []models.Message
	for i := 1; i <= 7; i++ {
		msgs = append(msgs, models.Message{ID: int64(i), Name: "Client"})
	}
	up.JSON("GET", "/api/messages", 200, msgs)

	d := webtest.Deps(t, up)
	m, err := poller.NewManager(time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown() })
	d.Poller = m

	app := webtest.App()
	app.Get("/shell", ShellHandler(d))

	req := httptest.NewRequest("GET", "/shell", nil)
	req.AddCookie(&http.Cookie{Name: "lang", Value: "ar"})
	status, body := webtest.Do(t, app, req)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "ar", body["lang"])
	assert.Equal(t, "rtl", body["dir"])
	assert.Equal(t, "Dar Tajine", body["user"].(map[string]any)["storeName"])
	assert.NotNil(t, body["badges"])
	assert.Len(t, body["languages"], 4)

	messages := body["messages"].([]any)
	require.Len(t, messages, latestMessages)
	assert.Equal(t, float64(7), messages[4].(map[string]any)["id"])

	nav := body["nav"].([]any)
	require.Len(t, nav, len(navLinks))
	assert.Equal(t, "tableOrders", nav[4].(map[string]any)["badge"])

	_, ok := m.Get("sess-1")
	assert.True(t, ok)
}

func TestShell_UserFailure(t *testing.T) {
	up := webtest.NewUpstream(t)
	up.JSON("GET", "/api/messages", 200, []models.Message{})
	app := webtest.App()
	app.Get("/shell", ShellHandler(webtest.Deps(t, up)))

	status, body := webtest.Do(t, app, httptest.NewRequest("GET", "/shell", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["user"])
	assert.Nil(t, body["badges"])
	assert.Contains(t, body["errors"], "user")
}

func TestBadgesUpgrade_RequiresWebsocket(t *testing.T) {
	up := webtest.NewUpstream(t)
	app := webtest.App()
	app.Get("/ws/badges", BadgesUpgrade(webtest.Deps(t, up)), BadgesSocket())

	status, _ := webtest.Do(t, app, httptest.NewRequest("GET", "/ws/badges", nil))
	assert.Equal(t, http.StatusUpgradeRequired, status)
}
