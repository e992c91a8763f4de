package profile

import (
	"net/http"
	"strings"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

type ProfileResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StoreName string `json:"storeName"`
	City      string `json:"city"`
	HasLogo   bool   `json:"hasLogo"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName" form:"firstName" validate:"required"`
	LastName  string `json:"lastName" form:"lastName" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Phone     string `json:"phone" form:"phone"`
	StoreName string `json:"storeName" form:"storeName" validate:"required"`
	City      string `json:"city" form:"city"`
}

func toProfileResponse(c *fiber.Ctx, u models.User) (ProfileResponse, error) {
	var res ProfileResponse
	if err := web.Copy(c, &res, &u); err != nil {
		return res, err
	}
	res.HasLogo = u.Logo != ""
	return res, nil
}

// GET /admin/profile
func GetProfileHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := d.Store(c).GetUser(c.UserContext())
		if err != nil {
			return web.Upstream(c, "profile.error.load", err, nil)
		}
		res, err := toProfileResponse(c, *user)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GET /admin/profile/logo
func GetLogoHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logo, err := d.Store(c).GetLogo(c.UserContext())
		if err != nil && !remote.IsNotFound(err) {
			return web.Upstream(c, "profile.error.load", err, nil)
		}
		if len(logo) == 0 {
			return fiber.NewError(fiber.StatusNotFound, i18n.Tc(c, "profile.error.noLogo"))
		}

		c.Set(fiber.HeaderContentType, http.DetectContentType(logo))
		return c.Send(logo)
	}
}

// PUT /admin/profile (multipart, logo optional)
func UpdateProfileHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateProfileRequest
		_ = c.BodyParser(&body)
		body.FirstName = strings.TrimSpace(body.FirstName)
		body.LastName = strings.TrimSpace(body.LastName)
		body.Email = strings.TrimSpace(body.Email)
		body.StoreName = strings.TrimSpace(body.StoreName)

		logo, err := web.File(c, "logo")
		if err != nil {
			return web.ImageFailed(c, "logo", err, body)
		}
		if fields := web.Validate(c, &body); fields != nil {
			return web.Invalid(c, fields, body)
		}

		var form remote.ProfileForm
		if err := web.Copy(c, &form, &body); err != nil {
			return err
		}

		user, err := d.Store(c).UpdateUser(c.UserContext(), form, logo)
		if err != nil {
			return web.Upstream(c, "profile.error.update", err, body)
		}

		d.Record(c, audit.LogOptions{
			EntityType:  "profile",
			EntityID:    user.ID,
			Action:      models.AuditActionUpdate,
			Description: "Profil güncellendi",
			Payload:     fiber.Map{"form": body, "logoReplaced": !logo.Empty()},
		})
		res, err := toProfileResponse(c, *user)
		if err != nil {
			return err
		}
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "profile.success.updated"), res)
	}
}
