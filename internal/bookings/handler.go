package bookings

import (
	"strings"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/listing"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

type UpdateReservationRequest struct {
	Name           string `json:"name" form:"name" validate:"required"`
	Phone          string `json:"phone" form:"phone" validate:"required"`
	Datetime       string `json:"datetime" form:"datetime" validate:"required"`
	NumberOfPeople int    `json:"numberOfPeople" form:"numberOfPeople" validate:"required,gt=0"`
	Message        string `json:"message" form:"message"`
}

// GET /admin/reservations?search=&page=
func ListReservationsHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := d.Store(c).ListReservations(c.UserContext())
		if err != nil {
			return web.Upstream(c, "reservation.error.load", err, nil)
		}

		search := c.Query("search")
		matched := listing.Filter(list, func(r models.Reservation) bool {
			return listing.MatchFold(r.Name, search)
		})
		return c.JSON(web.Paginate(c, matched, d.PageSize()))
	}
}

// GET /admin/reservations/:id
func GetReservationHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		r, err := d.Store(c).GetReservation(c.UserContext(), id)
		if err != nil {
			return web.Upstream(c, "reservation.error.load", err, nil)
		}
		return c.JSON(r)
	}
}

// PUT /admin/reservations/:id
func UpdateReservationHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		var body UpdateReservationRequest
		if err := c.BodyParser(&body); err != nil {
			return web.Invalid(c, map[string]string{"_": i18n.Tc(c, "common.field.invalid")}, body)
		}
		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		if fields := web.Validate(c, &body); fields != nil {
			return web.Invalid(c, fields, body)
		}

		var payload models.Reservation
		if err := web.Copy(c, &payload, &body); err != nil {
			return err
		}
		payload.ID = id

		r, err := d.Store(c).UpdateReservation(c.UserContext(), id, payload)
		if err != nil {
			return web.Upstream(c, "reservation.error.update", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "reservation",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Rezervasyon güncellendi: " + body.Name,
			Payload:     body,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "reservation.success.updated"), r)
	}
}

// DELETE /admin/reservations/:id
func DeleteReservationHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		if err := d.Store(c).DeleteReservation(c.UserContext(), id); err != nil {
			return web.Upstream(c, "reservation.error.delete", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType: "reservation",
			EntityID:   id,
			Action:     models.AuditActionDelete,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "reservation.success.deleted"), fiber.Map{"id": id})
	}
}
