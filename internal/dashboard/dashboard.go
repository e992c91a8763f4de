package dashboard

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

// Card is one dashboard figure. Value is nil when it could not be loaded.
type Card struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value *int64 `json:"value"`
	Error string `json:"error,omitempty"`
}

type DashboardResponse struct {
	Cards []Card `json:"cards"`
}

type cardSource struct {
	key   string
	fetch func(ctx context.Context) (int64, error)
}

// GET /admin/
// The three figures are fetched together; one failing leaves the others intact.
func DashboardHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := d.Store(c)
		sources := []cardSource{
			{key: "visits", fetch: store.VisitCountByUser},
			{key: "categories", fetch: func(ctx context.Context) (int64, error) {
				names, err := store.CategoryNames(ctx)
				return int64(len(names)), err
			}},
			{key: "foods", fetch: store.CountFoods},
		}

		cards := make([]Card, len(sources))
		cardErr := i18n.Tc(c, "dashboard.error.card")
		g, ctx := errgroup.WithContext(c.UserContext())
		for i, src := range sources {
			cards[i] = Card{Key: src.key, Label: i18n.Tc(c, "dashboard."+src.key)}
			g.Go(func() error {
				n, err := src.fetch(ctx)
				if err != nil {
					log.Printf("[WARN] dashboard %s alınamadı: %v", src.key, err)
					cards[i].Error = cardErr
					return nil
				}
				cards[i].Value = &n
				return nil
			})
		}
		_ = g.Wait()

		return c.JSON(DashboardResponse{Cards: cards})
	}
}
