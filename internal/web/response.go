// Package web holds what every admin screen shares: response envelopes, form
// validation, upload handling and the handler dependencies.
package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/listing"
	"restoran-backoffice/internal/remote"
)

// ListPage is the body of every list screen.
type ListPage[T any] struct {
	listing.Page[T]
	Search  string            `json:"search"`
	Filters map[string]string `json:"filters,omitempty"`
}

// Paginate pages items by the request's ?page= and echoes ?search=.
func Paginate[T any](c *fiber.Ctx, items []T, size int) ListPage[T] {
	return ListPage[T]{
		Page:   listing.Paginate(items, Page(c), size),
		Search: c.Query("search"),
	}
}

// OK sends {message, data}.
func OK(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

// Fail sends {error, fields, form}. form echoes the submitted values so the
// client can keep what the user typed.
func Fail(c *fiber.Ctx, status int, message string, fields map[string]string, form any) error {
	body := fiber.Map{"error": message}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	if form != nil {
		body["form"] = form
	}
	return c.Status(status).JSON(body)
}

// Invalid is the 400 answer for a form that did not pass validation.
func Invalid(c *fiber.Ctx, fields map[string]string, form any) error {
	return Fail(c, fiber.StatusBadRequest, i18n.Tc(c, "common.error.validation"), fields, form)
}

// Upstream reports a failed remote call as "<localized key>: <detail>". Client
// errors from the server keep their status, anything else is a 502.
func Upstream(c *fiber.Ctx, key string, err error, form any) error {
	status := fiber.StatusBadGateway
	detail := i18n.Tc(c, "common.error.generic")
	if apiErr, ok := remote.AsAPIError(err); ok {
		detail = apiErr.Detail()
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			status = apiErr.StatusCode
		}
	} else if errors.Is(err, remote.ErrNoUser) {
		status = http.StatusUnauthorized
		detail = i18n.Tc(c, "common.error.unauthorized")
	}
	return Fail(c, status, i18n.Tc(c, key)+": "+detail, nil, form)
}

// ParamID reads a positive integer route parameter.
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, i18n.Tc(c, "common.error.invalidId"))
	}
	return id, nil
}

// Page reads the 1-based ?page= query value.
func Page(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}
