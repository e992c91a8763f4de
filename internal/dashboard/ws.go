package dashboard

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/poller"
	"restoran-backoffice/internal/web"
)

const ctxBadgesKey = "badges"

// BadgesUpgrade accepts only websocket upgrades and hands the session's
// poller subscription to the websocket handler.
func BadgesUpgrade(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		sub, err := d.Badges(c)
		if err != nil {
			log.Printf("[WARN] rozet aboneliği alınamadı: %v", err)
			return fiber.NewError(fiber.StatusServiceUnavailable, i18n.Tc(c, "common.error.generic"))
		}
		c.Locals(ctxBadgesKey, sub)
		return c.Next()
	}
}

// GET /admin/ws/badges
// Sends the current snapshot, then every new one until the subscription stops
// or the client goes away.
func BadgesSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		sub, ok := conn.Locals(ctxBadgesKey).(*poller.Subscription)
		if !ok {
			return
		}
		snaps, unwatch := sub.Watch()
		defer unwatch()

		// okuma döngüsü sadece kapanışı fark etmek için
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case snap, ok := <-snaps:
				if !ok {
					return
				}
				if err := conn.WriteJSON(snap); err != nil {
					log.Printf("[WS] rozet gönderilemedi (%s): %v", sub.Key(), err)
					return
				}
			}
		}
	})
}
