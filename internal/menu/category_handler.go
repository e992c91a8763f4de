package menu

import (
	"strings"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/listing"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
}

func toCategoryResponse(cat models.Category) CategoryResponse {
	return CategoryResponse{ID: cat.ID, Name: cat.Name, Image: cat.Image}
}

// GET /admin/categories?search=&page=
func ListCategoriesHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := d.Store(c).ListCategories(c.UserContext())
		if err != nil {
			return web.Upstream(c, "category.error.load", err, nil)
		}

		search := c.Query("search")
		matched := listing.Filter(cats, func(cat models.Category) bool {
			return listing.MatchFold(cat.Name, search)
		})

		res := make([]CategoryResponse, 0, len(matched))
		for _, cat := range matched {
			res = append(res, toCategoryResponse(cat))
		}
		return c.JSON(web.Paginate(c, res, d.PageSize()))
	}
}

// POST /admin/categories (multipart: name, image)
func CreateCategoryHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		_ = c.BodyParser(&body)
		body.Name = strings.TrimSpace(body.Name)

		image, err := web.File(c, "image")
		if err != nil {
			return web.ImageFailed(c, "image", err, body)
		}

		fields := web.Validate(c, &body)
		fields = web.Required(c, fields, "image", image.Empty())
		if fields != nil {
			return web.Invalid(c, fields, body)
		}

		cat, err := d.Store(c).UploadCategory(c.UserContext(), body.Name, image)
		if err != nil {
			return web.Upstream(c, "category.error.add", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "category",
			EntityID:    cat.ID,
			Action:      models.AuditActionCreate,
			Description: "Kategori eklendi: " + body.Name,
			Payload:     body,
		})
		return web.OK(c, fiber.StatusCreated, i18n.Tc(c, "category.success.added"), toCategoryResponse(*cat))
	}
}

// DELETE /admin/categories/:id
func DeleteCategoryHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		if err := d.Store(c).DeleteCategory(c.UserContext(), id); err != nil {
			return web.Upstream(c, "category.error.delete", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType: "category",
			EntityID:   id,
			Action:     models.AuditActionDelete,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "category.success.deleted"), fiber.Map{"id": id})
	}
}
