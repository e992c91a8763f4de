package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Header http.Header
	Body   []byte
}

type upstream struct {
	mu    sync.Mutex
	calls []recorded
	srv   *httptest.Server
}

// newUpstream serves routes keyed by "METHOD /path"; unknown routes get 404.
func newUpstream(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		u.mu.Lock()
		u.calls = append(u.calls, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Header: r.Header.Clone(),
			Body:   body,
		})
		u.mu.Unlock()

		if h, ok := routes[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) Calls() []recorded {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]recorded(nil), u.calls...)
}

func (u *upstream) store(userID, token string) *Store {
	return New(u.srv.Client(), u.srv.URL, u.srv.URL).Store(userID, token)
}

func reply(body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestListCategories_UsesUserPathAndBearer(t *testing.T) {
	up := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/categories/42": reply(`[{"id":1,"name":"Tajine"},{"id":2,"name":"Couscous"}]`),
	})

	cats, err := up.store("42", "tok").ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Couscous", cats[1].Name)

	calls := up.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok", calls[0].Auth)
}

func TestAPIError(t *testing.T) {
	up := newUpstream(t, nil)

	_, err := up.store("42", "").GetFood(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Equal(t, "not found", apiErr.Detail())
	assert.Contains(t, apiErr.URL, "/api/foods/9/42")
}

func TestAPIError_DetailFallsBackToStatusText(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadGateway}
	assert.Equal(t, "Bad Gateway", err.Detail())

	err = &APIError{StatusCode: 400, Body: "name is taken"}
	assert.Equal(t, "name is taken", err.Detail())
}

func TestTransportError(t *testing.T) {
	up := newUpstream(t, nil)
	s := up.store("42", "")
	up.srv.Close()

	_, err := s.ListChefs(context.Background())
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestUploadCategory_Multipart(t *testing.T) {
	var fields map[string][]string
	var fileName, fileBody string
	up := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/categories/upload": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			fields = r.MultipartForm.Value
			fh := r.MultipartForm.File["image"][0]
			fileName = fh.Filename
			f, _ := fh.Open()
			b, _ := io.ReadAll(f)
			fileBody = string(b)
			reply(`{"id":7,"name":"Tajine"}`)(w, r)
		},
	})

	cat, err := up.store("42", "").UploadCategory(context.Background(), "Tajine", File{Name: "t.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), cat.ID)
	assert.Equal(t, []string{"Tajine"}, fields["name"])
	assert.Equal(t, []string{"42"}, fields["userId"])
	assert.Equal(t, "t.jpg", fileName)
	assert.Equal(t, "jpeg", fileBody)
}

func TestUpdateFood_RemovedImagesAndNewImages(t *testing.T) {
	var form map[string][]string
	var images int
	up := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"PUT /api/foods/3": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			form = r.MultipartForm.Value
			images = len(r.MultipartForm.File["images"])
			reply(`{"id":3}`)(w, r)
		},
	})

	_, err := up.store("42", "").UpdateFood(context.Background(), 3,
		FoodForm{Name: "Pastilla", Price: 12.5, Description: "d", CategoryName: "Entrées"},
		[]File{{Data: []byte("a")}, {Data: []byte("b")}, {}},
		[]int64{10, 11},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11"}, form["removedImageIds"])
	assert.Equal(t, []string{"12.5"}, form["price"])
	assert.Equal(t, 2, images)
}

func TestUpdateOrderStatus_JSONBody(t *testing.T) {
	up := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"PUT /api/orders/5/status": reply(`{"id":5,"status":true}`),
	})

	o, err := up.store("42", "").UpdateOrderStatus(context.Background(), 5, true)
	require.NoError(t, err)
	assert.True(t, o.Status)

	calls := up.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "userId=42", calls[0].Query)
	var body map[string]bool
	require.NoError(t, json.Unmarshal(calls[0].Body, &body))
	assert.Equal(t, map[string]bool{"status": true}, body)
}

func TestGetLocation_EmptyUserMakesNoCall(t *testing.T) {
	up := newUpstream(t, nil)

	_, err := up.store("", "").GetLocation(context.Background())
	assert.ErrorIs(t, err, ErrNoUser)
	assert.Empty(t, up.Calls())
}

func TestCounts(t *testing.T) {
	up := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/messages/count":           reply(`4`),
		"GET /api/orders/count/table/42":    reply(`{"count":3}`),
		"GET /api/reservations/count/42":    reply(`nope`),
		"GET /visite/user/42/count":         reply("17\n"),
		"GET /api/orders/count/delivery/42": reply(`0`),
	})
	s := up.store("42", "")
	ctx := context.Background()

	n, err := s.CountMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = s.CountTableOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = s.VisitCountByUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(17), n)

	n, err = s.CountDeliveryOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = s.CountReservations(ctx)
	assert.Error(t, err)
}

func TestTokenAndWebsiteURL(t *testing.T) {
	up := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/tokens/generate":     reply(`{"token":"abc"}`),
		"GET /api/users/42/website-url": reply(`"https://dar-tajine.example"`),
	})
	s := up.store("42", "")

	tok, err := s.GenerateTableToken(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
	assert.Contains(t, up.Calls()[0].Query, "tableNumber=3")

	site, err := s.WebsiteURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://dar-tajine.example", site)
}

func TestLogin(t *testing.T) {
	up := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/users/login": reply(`{"token":"up-tok","user":{"id":42,"email":"chef@dar.ma","storeName":"Dar"}}`),
	})
	c := New(up.srv.Client(), up.srv.URL, up.srv.URL)

	res, err := c.Login(context.Background(), "chef@dar.ma", "secret")
	require.NoError(t, err)
	assert.Equal(t, "up-tok", res.Token)
	require.NotNil(t, res.User)
	assert.Equal(t, int64(42), res.User.ID)
	assert.Empty(t, up.Calls()[0].Auth)
}

func TestSeg_EscapesPathSegments(t *testing.T) {
	up := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/foods/by-category/Plats chauds/42": reply(`[]`),
	})

	foods, err := up.store("42", "").FoodsByCategory(context.Background(), "Plats chauds")
	require.NoError(t, err)
	assert.Empty(t, foods)
}
