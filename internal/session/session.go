// Package session carries the signed-in identity through a request.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const ctxSessionKey = "session"

// Session is the decoded session cookie.
type Session struct {
	ID            string // jti
	UserID        string
	Email         string
	UpstreamToken string
	ExpiresAt     time.Time
}

// TTL is the time left before the session expires.
func (s *Session) TTL() time.Duration {
	return time.Until(s.ExpiresAt)
}

func Set(c *fiber.Ctx, s *Session) {
	c.Locals(ctxSessionKey, s)
}

func From(c *fiber.Ctx) (*Session, bool) {
	s, ok := c.Locals(ctxSessionKey).(*Session)
	return s, ok && s != nil
}
