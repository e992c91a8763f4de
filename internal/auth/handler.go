package auth

import (
	"log"
	"strconv"
	"strings"
	"time"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/poller"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type LangRequest struct {
	Lang string `json:"lang" form:"lang" validate:"required"`
}

// echo is the login form without the password.
func (r LoginRequest) echo() fiber.Map {
	return fiber.Map{"email": r.Email}
}

// GET /login
func LoginPageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := i18n.Lang(c)
		return c.JSON(fiber.Map{
			"lang":      lang,
			"dir":       i18n.Dir(lang),
			"languages": i18n.Languages,
			"next":      safeNext(c.Query("next")),
			"labels": fiber.Map{
				"title":          i18n.T(lang, "login.title"),
				"email":          i18n.T(lang, "login.email"),
				"password":       i18n.T(lang, "login.password"),
				"submit":         i18n.T(lang, "login.submit"),
				"forgotPassword": i18n.T(lang, "login.forgotPassword"),
			},
		})
	}
}

// POST /login
func LoginHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, i18n.Tc(c, "common.field.invalid"))
		}
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if fields := web.Validate(c, &body); fields != nil {
			return web.Invalid(c, fields, body.echo())
		}

		res, err := d.Remote.Login(c.UserContext(), body.Email, body.Password)
		if err != nil {
			if remote.IsUnauthorized(err) || remote.IsNotFound(err) {
				return web.Fail(c, fiber.StatusUnauthorized, i18n.Tc(c, "login.error.invalidCredentials"), nil, body.echo())
			}
			log.Printf("[WARN] giriş başarısız (%s): %v", body.Email, err)
			return web.Fail(c, fiber.StatusBadGateway, i18n.Tc(c, "login.error.failedLogin"), nil, body.echo())
		}
		if res.User == nil || res.User.ID == 0 {
			return web.Fail(c, fiber.StatusUnauthorized, i18n.Tc(c, "login.error.invalidCredentials"), nil, body.echo())
		}

		userID := strconv.FormatInt(res.User.ID, 10)
		token, sess, err := GenerateToken(d.Cfg.JWTSecret, d.Cfg.SessionTTL, userID, res.User.Email, res.Token)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, i18n.Tc(c, "common.error.generic"))
		}

		setSessionCookies(c, token, userID, sess.ExpiresAt)

		if d.Poller != nil {
			store := d.Remote.Store(userID, res.Token)
			if _, err := d.Poller.Subscribe(sess.ID, poller.BadgeCounters(store), d.Cfg.SessionTTL); err != nil {
				log.Printf("[POLL] abonelik başlatılamadı: %v", err)
			}
		}

		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "login.success"), fiber.Map{
			"token":      token,
			"expires_at": sess.ExpiresAt.Format("2006-01-02 15:04:05"),
			"user":       publicUser(res.User),
			"next":       safeNext(c.Query("next")),
		})
	}
}

// POST /logout
func LogoutHandler(d *web.Deps, revs Revocations) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sess, err := ParseToken(d.Cfg.JWTSecret, tokenFrom(c)); err == nil {
			if err := revs.Revoke(c.UserContext(), sess.ID, sess.ExpiresAt); err != nil {
				log.Printf("[WARN] oturum iptal edilemedi: %v", err)
			}
			if d.Poller != nil {
				d.Poller.Stop(sess.ID)
			}
		}

		clearSessionCookies(c)
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "logout.success"), nil)
	}
}

// POST /forgot-password
func ForgotPasswordHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ForgotPasswordRequest
		_ = c.BodyParser(&body)
		body.Email = strings.TrimSpace(body.Email)

		if fields := web.Validate(c, &body); fields != nil {
			return web.Fail(c, fiber.StatusBadRequest, i18n.Tc(c, "forgot.error.invalidEmail"), fields, body)
		}

		if err := d.Remote.ForgotPassword(c.UserContext(), body.Email); err != nil {
			return web.Upstream(c, "forgot.error.failed", err, body)
		}
		return web.OK(c, fiber.StatusOK, i18n.Tc(c, "forgot.success"), nil)
	}
}

// POST /lang
func LangHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LangRequest
		_ = c.BodyParser(&body)
		if !i18n.Supported(body.Lang) {
			return web.Fail(c, fiber.StatusBadRequest, i18n.Tc(c, "lang.error.unsupported"), nil, body)
		}

		c.Cookie(&fiber.Cookie{
			Name:     i18n.CookieName,
			Value:    body.Lang,
			Path:     "/",
			Expires:  time.Now().AddDate(1, 0, 0),
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return web.OK(c, fiber.StatusOK, i18n.T(body.Lang, "lang.changed"), fiber.Map{
			"lang": body.Lang,
			"dir":  i18n.Dir(body.Lang),
		})
	}
}

func setSessionCookies(c *fiber.Ctx, token, userID string, expires time.Time) {
	secure := c.Protocol() == "https"
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     UserIDCookie,
		Value:    userID,
		Path:     "/",
		Expires:  expires,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{SessionCookie, UserIDCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HTTPOnly: name == SessionCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}

// safeNext keeps redirects on this host.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/admin"
}

func publicUser(u *models.User) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"store_name": u.StoreName,
		"city":       u.City,
	}
}
