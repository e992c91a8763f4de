package auth

import (
	"log"
	"net/url"
	"strings"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookie = "session"
	UserIDCookie  = "userId"
)

// tokenFrom reads the session cookie, falling back to a bearer header.
func tokenFrom(c *fiber.Ctx) string {
	if tok := c.Cookies(SessionCookie); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireSession admits requests with a valid, non-revoked session. Browsers
// asking for HTML are sent to the login page; everything else gets 401.
func RequireSession(secret string, revs Revocations) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := ParseToken(secret, tokenFrom(c))
		if err == nil {
			revoked, rerr := revs.IsRevoked(c.UserContext(), sess.ID)
			if rerr != nil {
				log.Printf("[WARN] oturum iptal kontrolü başarısız: %v", rerr)
				return fiber.NewError(fiber.StatusServiceUnavailable, i18n.Tc(c, "common.error.generic"))
			}
			if !revoked {
				session.Set(c, sess)
				return c.Next()
			}
		}

		if prefersHTML(c) {
			return c.Redirect("/login?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
		}
		return fiber.NewError(fiber.StatusUnauthorized, i18n.Tc(c, "common.error.unauthorized"))
	}
}

func prefersHTML(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodGet && strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}
