package web_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoran-backoffice/internal/media"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/web"
	"restoran-backoffice/internal/webtest"
)

type categoryForm struct {
	Name  string `json:"name" form:"name" validate:"required"`
	Notes string `json:"notes" form:"notes"`
}

func TestBind_ValidationEchoesForm(t *testing.T) {
	app := webtest.App()
	app.Post("/", func(c *fiber.Ctx) error {
		var form categoryForm
		if ok, err := web.Bind(c, &form); !ok {
			return err
		}
		return web.OK(c, fiber.StatusCreated, "ok", form)
	})

	status, body := webtest.Do(t, app, webtest.JSONRequest("POST", "/", map[string]string{"notes": "keep me"}))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Please fill in the required fields", body["error"])
	assert.Equal(t, map[string]any{"name": "This field is required"}, body["fields"])
	assert.Equal(t, "keep me", body["form"].(map[string]any)["notes"])

	status, body = webtest.Do(t, app, webtest.JSONRequest("POST", "/", map[string]string{"name": "Tajine"}))
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "ok", body["message"])
}

func TestCopy(t *testing.T) {
	type reservationForm struct {
		Name           string
		NumberOfPeople int
	}
	app := webtest.App()
	app.Post("/", func(c *fiber.Ctx) error {
		src := reservationForm{Name: "Nadia", NumberOfPeople: 4}
		var dst struct {
			Name           string
			NumberOfPeople int
		}
		if err := web.Copy(c, &dst, &src); err != nil {
			return err
		}
		if c.Query("broken") != "" {
			// a non-pointer destination cannot be filled
			if err := web.Copy(c, dst, &src); err != nil {
				return err
			}
		}
		return c.JSON(dst)
	})

	status, body := webtest.Do(t, app, httptest.NewRequest("POST", "/", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Nadia", body["Name"])
	assert.Equal(t, float64(4), body["NumberOfPeople"])

	status, body = webtest.Do(t, app, httptest.NewRequest("POST", "/?broken=1", nil))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Something went wrong", body["error"])
}

func TestUpstream_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{name: "client error kept", err: &remote.APIError{StatusCode: 409, Body: `{"message":"name taken"}`}, status: 409, msg: "Failed to add category: name taken"},
		{name: "server error is 502", err: &remote.APIError{StatusCode: 500}, status: 502, msg: "Failed to add category: Internal Server Error"},
		{name: "transport error", err: errors.New("dial tcp: refused"), status: 502, msg: "Failed to add category: Something went wrong"},
		{name: "no user", err: remote.ErrNoUser, status: 401, msg: "Failed to add category: Please sign in again"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := webtest.App()
			app.Get("/", func(c *fiber.Ctx) error {
				return web.Upstream(c, "category.error.add", tc.err, fiber.Map{"name": "x"})
			})
			status, body := webtest.Do(t, app, httptest.NewRequest("GET", "/", nil))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, body["error"])
			assert.Equal(t, map[string]any{"name": "x"}, body["form"])
		})
	}
}

func TestParamID(t *testing.T) {
	app := webtest.App()
	app.Get("/:id", func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": id})
	})

	status, body := webtest.Do(t, app, httptest.NewRequest("GET", "/17", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(17), body["id"])

	status, _ = webtest.Do(t, app, httptest.NewRequest("GET", "/abc", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestImage(t *testing.T) {
	var got remote.File
	var gotErr error
	app := webtest.App()
	app.Post("/", func(c *fiber.Ctx) error {
		got, gotErr = web.Image(c, "image", media.Food)
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := webtest.MultipartRequest(t, "POST", "/", nil, webtest.Part{Field: "image", Filename: "plat.jpeg", Data: webtest.JPEG(t)})
	_, err := app.Test(req, -1)
	require.NoError(t, err)
	require.NoError(t, gotErr)
	assert.Equal(t, "plat.jpg", got.Name)
	assert.Equal(t, "image/jpeg", got.ContentType)

	req = webtest.MultipartRequest(t, "POST", "/", map[string][]string{"name": {"x"}})
	_, err = app.Test(req, -1)
	require.NoError(t, err)
	require.NoError(t, gotErr)
	assert.True(t, got.Empty())

	req = webtest.MultipartRequest(t, "POST", "/", nil, webtest.Part{Field: "image", Filename: "bad.png", Data: []byte("nope")})
	_, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.ErrorIs(t, gotErr, web.ErrBadImage)
}
