package tables

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/listing"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/session"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

// generateLimit bounds concurrent token requests.
const generateLimit = 5

type GenerateRequest struct {
	TableCount int `json:"tableCount" form:"tableCount" validate:"required,gt=0,lte=500"`
}

// TokenSource issues a table token.
type TokenSource interface {
	GenerateTableToken(ctx context.Context, table int) (string, error)
}

// Generate requests a token for tables 1..count. Failed tables are logged and
// left out; the rest keep table order.
func Generate(ctx context.Context, src TokenSource, websiteURL string, count int) []TableCode {
	results := make([]*TableCode, count)

	var g errgroup.Group
	g.SetLimit(generateLimit)
	for i := 0; i < count; i++ {
		table := i + 1
		g.Go(func() error {
			token, err := src.GenerateTableToken(ctx, table)
			if err != nil {
				log.Printf("[WARN] masa %d için token alınamadı: %v", table, err)
				return nil
			}
			if token == "" {
				log.Printf("[WARN] masa %d için boş token döndü", table)
				return nil
			}
			results[i] = &TableCode{TableNumber: table, Token: token, URL: Payload(websiteURL, token)}
			return nil
		})
	}
	_ = g.Wait()

	codes := make([]TableCode, 0, count)
	for _, r := range results {
		if r != nil {
			codes = append(codes, *r)
		}
	}
	return codes
}

// POST /admin/qr-codes {tableCount}
func GenerateHandler(d *web.Deps, reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := session.From(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, i18n.Tc(c, "common.error.unauthorized"))
		}

		var body GenerateRequest
		if ok, err := web.Bind(c, &body); !ok {
			return err
		}

		store := d.Store(c)
		websiteURL, err := store.WebsiteURL(c.UserContext())
		if err != nil {
			return web.Upstream(c, "qr.error.generate", err, body)
		}
		websiteURL = strings.TrimSpace(websiteURL)
		if websiteURL == "" {
			return web.Fail(c, fiber.StatusBadRequest, i18n.Tc(c, "qr.error.websiteUrl"), nil, body)
		}

		codes := Generate(c.UserContext(), store, websiteURL, body.TableCount)
		if len(codes) == 0 {
			return web.Fail(c, fiber.StatusBadGateway, i18n.Tc(c, "qr.error.generate"), nil, body)
		}
		reg.Put(sess.ID, codes, sess.ExpiresAt)

		d.Record(c, audit.LogOptions{
			EntityType:  "table_token",
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%d/%d masa için QR kodu oluşturuldu", len(codes), body.TableCount),
			Payload:     body,
		})
		return web.OK(c, fiber.StatusCreated, i18n.Tc(c, "qr.success.generated", len(codes)),
			web.Paginate(c, codes, d.PageSize()))
	}
}

// GET /admin/qr-codes?search=&page=
func ListHandler(d *web.Deps, reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := session.From(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, i18n.Tc(c, "common.error.unauthorized"))
		}

		search := c.Query("search")
		matched := listing.Filter(reg.Get(sess.ID), func(code TableCode) bool {
			return search == "" || strings.Contains(strconv.Itoa(code.TableNumber), search)
		})
		return c.JSON(web.Paginate(c, matched, d.PageSize()))
	}
}

// GET /admin/qr-codes/:table/png
func PNGHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := session.From(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, i18n.Tc(c, "common.error.unauthorized"))
		}

		table, err := strconv.Atoi(c.Params("table"))
		if err != nil || table <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, i18n.Tc(c, "common.error.invalidId"))
		}

		code, ok := reg.Find(sess.ID, table)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, i18n.Tc(c, "qr.error.notFound"))
		}

		data, err := PNG(code.URL, qrSize, qrMargin)
		if err != nil {
			log.Printf("[ERROR] masa %d QR kodu çizilemedi: %v", table, err)
			return fiber.NewError(fiber.StatusInternalServerError, i18n.Tc(c, "qr.error.generate"))
		}

		c.Set(fiber.HeaderContentType, "image/png")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, FileName(table)))
		return c.Send(data)
	}
}
