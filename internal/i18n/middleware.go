package i18n

import "github.com/gofiber/fiber/v2"

const (
	CookieName = "lang"
	ctxLangKey = "lang"
)

// Middleware stores the resolved language in c.Locals.
func Middleware(def string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(ctxLangKey, Resolve(c.Cookies(CookieName), c.Get(fiber.HeaderAcceptLanguage), def))
		return c.Next()
	}
}

// Lang returns the request language, English when the middleware did not run.
func Lang(c *fiber.Ctx) string {
	if l, ok := c.Locals(ctxLangKey).(string); ok && l != "" {
		return l
	}
	return Fallback
}

// Tc translates key in the request language.
func Tc(c *fiber.Ctx, key string, args ...any) string {
	return T(Lang(c), key, args...)
}
