package site

import (
	"strings"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/media"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

type HeaderImageRequest struct {
	Title    string `json:"title" form:"title" validate:"required"`
	Subtitle string `json:"subtitle" form:"subtitle" validate:"required"`
}

// POST /admin/header-images (multipart: title, subtitle, bgImage)
func CreateHeaderImageHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body HeaderImageRequest
		_ = c.BodyParser(&body)
		body.Title = strings.TrimSpace(body.Title)
		body.Subtitle = strings.TrimSpace(body.Subtitle)

		bg, err := web.Image(c, "bgImage", media.Header)
		if err != nil {
			return web.ImageFailed(c, "bgImage", err, body)
		}

		fields := web.Validate(c, &body)
		fields = web.Required(c, fields, "bgImage", bg.Empty())
		if fields != nil {
			return web.Invalid(c, fields, body)
		}

		img, err := d.Store(c).SaveHeaderImage(c.UserContext(), body.Title, body.Subtitle, bg)
		if err != nil {
			return web.Upstream(c, "header.error.save", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "header_image",
			EntityID:    img.ID,
			Action:      models.AuditActionCreate,
			Description: "Kapak görseli kaydedildi: " + body.Title,
			Payload:     body,
		})
		return web.OK(c, fiber.StatusCreated, i18n.Tc(c, "header.success.saved"), img)
	}
}
