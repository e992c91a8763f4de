package site

import (
	"strings"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

type LocationRequest struct {
	MapLink string `json:"mapLink" form:"mapLink" validate:"required,url"`
}

// GET /admin/location, data is null when none is saved.
func GetLocationHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := d.Store(c).GetLocation(c.UserContext())
		if err != nil {
			if remote.IsNotFound(err) {
				return c.JSON(fiber.Map{"data": nil})
			}
			return web.Upstream(c, "location.error.load", err, nil)
		}
		return c.JSON(fiber.Map{"data": loc})
	}
}

// POST /admin/location {mapLink}
func SaveLocationHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LocationRequest
		_ = c.BodyParser(&body)
		body.MapLink = strings.TrimSpace(body.MapLink)
		if fields := web.Validate(c, &body); fields != nil {
			return web.Invalid(c, fields, body)
		}

		loc, err := d.Store(c).SaveLocation(c.UserContext(), body.MapLink)
		if err != nil {
			return web.Upstream(c, "location.error.save", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType: "location",
			EntityID:   loc.ID,
			Action:     models.AuditActionCreate,
			Payload:    body,
		})
		return web.OK(c, fiber.StatusCreated, i18n.Tc(c, "location.success.saved"), loc)
	}
}

// DELETE /admin/location/:id
func DeleteLocationHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		if err := d.Store(c).DeleteLocation(c.UserContext(), id); err != nil {
			return web.Upstream(c, "location.error.delete", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType: "location",
			EntityID:   id,
			Action:     models.AuditActionDelete,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "location.success.deleted"), fiber.Map{"id": id})
	}
}
