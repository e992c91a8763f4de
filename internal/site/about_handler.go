package site

import (
	"slices"
	"strings"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/media"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

type AboutRequest struct {
	Title             string `json:"title" form:"title" validate:"required"`
	Subtitle          string `json:"subtitle" form:"subtitle" validate:"required"`
	Description       string `json:"description" form:"description" validate:"required"`
	YearsOfExperience int    `json:"yearsOfExperience" form:"yearsOfExperience" validate:"gte=0"`
	NumberOfChefs     int    `json:"numberOfChefs" form:"numberOfChefs" validate:"gte=0"`
}

// aboutForm parses the text fields and the image1..image4 uploads. With
// allImages every image is required.
func aboutForm(c *fiber.Ctx, allImages bool) (AboutRequest, remote.AboutForm, remote.AboutImages, map[string]string, error) {
	var body AboutRequest
	if err := c.BodyParser(&body); err != nil {
		return body, remote.AboutForm{}, nil, map[string]string{"_": i18n.Tc(c, "common.field.invalid")}, nil
	}
	body.Title = strings.TrimSpace(body.Title)
	body.Subtitle = strings.TrimSpace(body.Subtitle)
	body.Description = strings.TrimSpace(body.Description)

	fields := web.Validate(c, &body)
	images := remote.AboutImages{}
	for _, key := range models.AboutImageKeys {
		img, err := web.Image(c, key, media.About)
		if err != nil {
			if fields == nil {
				fields = map[string]string{}
			}
			fields[key] = i18n.Tc(c, "common.error.invalidImage")
			continue
		}
		if allImages {
			fields = web.Required(c, fields, key, img.Empty())
		}
		if !img.Empty() {
			images[key] = img
		}
	}

	var form remote.AboutForm
	if err := web.Copy(c, &form, &body); err != nil {
		return body, form, nil, nil, err
	}
	return body, form, images, fields, nil
}

// GET /admin/about, data is null when the section was never saved.
func GetAboutHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		about, err := d.Store(c).GetAbout(c.UserContext())
		if err != nil {
			if remote.IsNotFound(err) {
				return c.JSON(fiber.Map{"data": nil})
			}
			return web.Upstream(c, "about.error.load", err, nil)
		}
		return c.JSON(fiber.Map{"data": about})
	}
}

// POST /admin/about (multipart, image1..image4 required)
func CreateAboutHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, form, images, fields, err := aboutForm(c, true)
		if err != nil {
			return err
		}
		if fields != nil {
			return web.Invalid(c, fields, body)
		}

		about, err := d.Store(c).SaveAbout(c.UserContext(), form, images)
		if err != nil {
			return web.Upstream(c, "about.error.save", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "about",
			EntityID:    about.ID,
			Action:      models.AuditActionCreate,
			Description: "Hakkımızda bölümü kaydedildi",
			Payload:     body,
		})
		return web.OK(c, fiber.StatusCreated, i18n.Tc(c, "about.success.saved"), about)
	}
}

// PUT /admin/about (multipart, images optional)
func UpdateAboutHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, form, images, fields, err := aboutForm(c, false)
		if err != nil {
			return err
		}
		if fields != nil {
			return web.Invalid(c, fields, body)
		}

		about, err := d.Store(c).UpdateAbout(c.UserContext(), form, images)
		if err != nil {
			return web.Upstream(c, "about.error.update", err, body)
		}

		replaced := make([]string, 0, len(images))
		for _, key := range models.AboutImageKeys {
			if _, ok := images[key]; ok {
				replaced = append(replaced, key)
			}
		}
		d.Record(c, audit.LogOptions{
			EntityType:  "about",
			EntityID:    about.ID,
			Action:      models.AuditActionUpdate,
			Description: "Hakkımızda bölümü güncellendi",
			Payload:     fiber.Map{"form": body, "images": replaced},
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "about.success.updated"), about)
	}
}

// DELETE /admin/about/images/:key
func DeleteAboutImageHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		if !slices.Contains(models.AboutImageKeys, key) {
			return fiber.NewError(fiber.StatusBadRequest, i18n.Tc(c, "about.error.imageKey"))
		}

		if err := d.Store(c).DeleteAboutImage(c.UserContext(), key); err != nil {
			return web.Upstream(c, "about.error.imageDelete", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "about",
			EntityID:    key,
			Action:      models.AuditActionDelete,
			Description: "Hakkımızda görseli silindi: " + key,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "about.success.imageDeleted"), fiber.Map{"key": key})
	}
}

// DELETE /admin/about
func DeleteAboutHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := d.Store(c).DeleteAbout(c.UserContext()); err != nil {
			return web.Upstream(c, "about.error.delete", err, nil)
		}

		d.Record(c, audit.LogOptions{
			EntityType: "about",
			Action:     models.AuditActionDelete,
		})
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "about.success.deleted"), nil)
	}
}
