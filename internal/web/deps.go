package web

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/config"
	"restoran-backoffice/internal/poller"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/session"
)

// Deps is what the admin handlers are built from.
type Deps struct {
	Cfg    *config.Config
	Remote *remote.Client
	Audit  *audit.Service
	Poller *poller.Manager
}

func (d *Deps) PageSize() int {
	if d.Cfg == nil || d.Cfg.PageSize <= 0 {
		return 5
	}
	return d.Cfg.PageSize
}

// Store is the upstream client bound to the signed-in restaurant.
func (d *Deps) Store(c *fiber.Ctx) *remote.Store {
	sess, ok := session.From(c)
	if !ok {
		return d.Remote.Store("", "")
	}
	return d.Remote.Store(sess.UserID, sess.UpstreamToken)
}

// Record writes an audit entry for the current request. Failures are logged only.
func (d *Deps) Record(c *fiber.Ctx, opts audit.LogOptions) {
	if d.Audit == nil {
		return
	}
	if sess, ok := session.From(c); ok {
		opts.StoreID = sess.UserID
		opts.UserEmail = sess.Email
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		opts.RequestID = rid
	}
	if err := d.Audit.WriteLog(c.UserContext(), opts); err != nil {
		log.Printf("[AUDIT] %s %s yazılamadı: %v", opts.EntityType, opts.Action, err)
	}
}

// Badges returns the poller subscription of the current session, starting one
// if this process has none yet.
func (d *Deps) Badges(c *fiber.Ctx) (*poller.Subscription, error) {
	sess, ok := session.From(c)
	if !ok || d.Poller == nil {
		return nil, poller.ErrStopped
	}
	if sub, ok := d.Poller.Get(sess.ID); ok {
		return sub, nil
	}
	return d.Poller.Subscribe(sess.ID, poller.BadgeCounters(d.Remote.Store(sess.UserID, sess.UpstreamToken)), sess.TTL())
}
