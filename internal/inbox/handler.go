package inbox

import (
	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/listing"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

// Matches is the inbox search: name, email or subject.
func Matches(m models.Message, search string) bool {
	return listing.MatchFold(m.Name, search) ||
		listing.MatchFold(m.Email, search) ||
		listing.MatchFold(m.Subject, search)
}

// GET /admin/messages?search=&page=
func ListMessagesHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msgs, err := d.Store(c).ListMessages(c.UserContext())
		if err != nil {
			return web.Upstream(c, "message.error.load", err, nil)
		}

		search := c.Query("search")
		matched := listing.Filter(msgs, func(m models.Message) bool {
			return Matches(m, search)
		})
		return c.JSON(web.Paginate(c, matched, d.PageSize()))
	}
}

// DELETE /admin/messages/:id
func DeleteMessageHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		if err := d.Store(c).DeleteMessage(c.UserContext(), id); err != nil {
			return web.Upstream(c, "message.error.delete", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType: "message",
			EntityID:   id,
			Action:     models.AuditActionDelete,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "message.success.deleted"), fiber.Map{"id": id})
	}
}
