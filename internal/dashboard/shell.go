package dashboard

import (
	"log"

	"golang.org/x/sync/errgroup"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/poller"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

// latestMessages is how many messages the header dropdown shows.
const latestMessages = 5

type NavLink struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
	Badge string `json:"badge,omitempty"` // poller counter name
}

var navLinks = []NavLink{
	{Key: "dashboard", Path: "/admin/"},
	{Key: "categories", Path: "/admin/categories"},
	{Key: "foods", Path: "/admin/foods"},
	{Key: "chefs", Path: "/admin/chefs"},
	{Key: "tableOrders", Path: "/admin/orders/table", Badge: poller.CounterTableOrders},
	{Key: "deliveryOrders", Path: "/admin/orders/delivery", Badge: poller.CounterDeliveryOrders},
	{Key: "reservations", Path: "/admin/reservations", Badge: poller.CounterReservations},
	{Key: "messages", Path: "/admin/messages", Badge: poller.CounterMessages},
	{Key: "about", Path: "/admin/about"},
	{Key: "headerImages", Path: "/admin/header-images"},
	{Key: "location", Path: "/admin/location"},
	{Key: "qrCodes", Path: "/admin/qr-codes"},
	{Key: "profile", Path: "/admin/profile"},
	{Key: "auditLogs", Path: "/admin/audit-logs"},
}

type ShellUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	StoreName string `json:"storeName"`
}

type ShellResponse struct {
	User      *ShellUser        `json:"user"`
	Badges    *poller.Snapshot  `json:"badges"`
	Lang      string            `json:"lang"`
	Dir       string            `json:"dir"`
	Languages []i18n.Language   `json:"languages"`
	Nav       []NavLink         `json:"nav"`
	Messages  []models.Message  `json:"messages"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// GET /admin/shell, the chrome around every screen.
func ShellHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := i18n.Lang(c)
		res := ShellResponse{
			Lang:      lang,
			Dir:       i18n.Dir(lang),
			Languages: i18n.Languages,
			Messages:  []models.Message{},
			Errors:    map[string]string{},
		}

		for _, l := range navLinks {
			l.Label = i18n.T(lang, "nav."+l.Key)
			res.Nav = append(res.Nav, l)
		}

		if sub, err := d.Badges(c); err == nil {
			snap := sub.Snapshot()
			res.Badges = &snap
		} else {
			log.Printf("[WARN] rozet sayaçları başlatılamadı: %v", err)
		}

		store := d.Store(c)
		var (
			g        errgroup.Group
			user     *models.User
			messages []models.Message
			userErr  error
			msgErr   error
		)
		g.Go(func() error {
			user, userErr = store.GetUser(c.UserContext())
			return nil
		})
		g.Go(func() error {
			messages, msgErr = store.ListMessages(c.UserContext())
			return nil
		})
		_ = g.Wait()

		if userErr != nil {
			res.Errors["user"] = i18n.T(lang, "profile.error.load")
		} else {
			res.User = &ShellUser{FirstName: user.FirstName, LastName: user.LastName, Email: user.Email, StoreName: user.StoreName}
		}

		if msgErr != nil {
			res.Errors["messages"] = i18n.T(lang, "message.error.load")
		} else {
			if len(messages) > latestMessages {
				messages = messages[len(messages)-latestMessages:]
			}
			res.Messages = append(res.Messages, messages...)
		}

		if len(res.Errors) == 0 {
			res.Errors = nil
		}
		return c.JSON(res)
	}
}
