package staff

import (
	"strings"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/listing"
	"restoran-backoffice/internal/media"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

type ChefResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Designation  string `json:"designation"`
	Image        string `json:"image,omitempty"`
	FacebookURL  string `json:"facebookUrl,omitempty"`
	InstagramURL string `json:"instagramUrl,omitempty"`
}

type ChefRequest struct {
	Name         string `json:"name" form:"name" validate:"required"`
	Designation  string `json:"designation" form:"designation" validate:"required"`
	FacebookURL  string `json:"facebookUrl" form:"facebookUrl" validate:"omitempty,url"`
	InstagramURL string `json:"instagramUrl" form:"instagramUrl" validate:"omitempty,url"`
}

func (r *ChefRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Designation = strings.TrimSpace(r.Designation)
	r.FacebookURL = strings.TrimSpace(r.FacebookURL)
	r.InstagramURL = strings.TrimSpace(r.InstagramURL)
}

func toChefResponse(c *fiber.Ctx, ch models.Chef) (ChefResponse, error) {
	var res ChefResponse
	err := web.Copy(c, &res, &ch)
	return res, err
}

// chefForm parses and validates the multipart body. Like web.Bind, ok=false
// means the response has already been written.
func chefForm(c *fiber.Ctx, imageRequired bool) (body ChefRequest, form remote.ChefForm, image remote.File, ok bool, err error) {
	_ = c.BodyParser(&body)
	body.trim()

	image, err = web.Image(c, "image", media.Chef)
	if err != nil {
		return body, form, image, false, web.ImageFailed(c, "image", err, body)
	}

	fields := web.Validate(c, &body)
	if imageRequired {
		fields = web.Required(c, fields, "image", image.Empty())
	}
	if fields != nil {
		return body, form, image, false, web.Invalid(c, fields, body)
	}

	if err := web.Copy(c, &form, &body); err != nil {
		return body, form, image, false, err
	}
	return body, form, image, true, nil
}

// GET /admin/chefs?search=&page=
func ListChefsHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		chefs, err := d.Store(c).ListChefs(c.UserContext())
		if err != nil {
			return web.Upstream(c, "chef.error.load", err, nil)
		}

		search := c.Query("search")
		matched := listing.Filter(chefs, func(ch models.Chef) bool {
			return listing.MatchFold(ch.Name, search)
		})

		res := make([]ChefResponse, 0, len(matched))
		for _, ch := range matched {
			r, err := toChefResponse(c, ch)
			if err != nil {
				return err
			}
			res = append(res, r)
		}
		return c.JSON(web.Paginate(c, res, d.PageSize()))
	}
}

// POST /admin/chefs (multipart: name, designation, facebookUrl, instagramUrl, image)
func CreateChefHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, form, image, ok, err := chefForm(c, true)
		if !ok {
			return err
		}

		chef, err := d.Store(c).SaveChef(c.UserContext(), form, image)
		if err != nil {
			return web.Upstream(c, "chef.error.add", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "chef",
			EntityID:    chef.ID,
			Action:      models.AuditActionCreate,
			Description: "Şef eklendi: " + form.Name,
			Payload:     body,
		})
		res, err := toChefResponse(c, *chef)
		if err != nil {
			return err
		}
		return web.OK(c, fiber.StatusCreated, i18n.Tc(c, "chef.success.added"), res)
	}
}

// PUT /admin/chefs/:id, image optional (the current one stays)
func UpdateChefHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		body, form, image, ok, err := chefForm(c, false)
		if !ok {
			return err
		}

		chef, err := d.Store(c).UpdateChef(c.UserContext(), id, form, image)
		if err != nil {
			return web.Upstream(c, "chef.error.update", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "chef",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Şef güncellendi: " + form.Name,
			Payload:     fiber.Map{"form": body, "imageReplaced": !image.Empty()},
		})
		res, err := toChefResponse(c, *chef)
		if err != nil {
			return err
		}
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "chef.success.updated"), res)
	}
}

// DELETE /admin/chefs/:id
func DeleteChefHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		if err := d.Store(c).DeleteChef(c.UserContext(), id); err != nil {
			return web.Upstream(c, "chef.error.delete", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType: "chef",
			EntityID:   id,
			Action:     models.AuditActionDelete,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "chef.success.deleted"), fiber.Map{"id": id})
	}
}
