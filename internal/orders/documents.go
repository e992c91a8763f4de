package orders

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"restoran-backoffice/internal/export"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/invoice"
	"restoran-backoffice/internal/models"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
)

// Now is the clock of invoices and export file names.
var Now = time.Now

// invoiceLang is the lang cookie when it names a supported language, French otherwise.
func invoiceLang(c *fiber.Ctx) string {
	if l := c.Cookies(i18n.CookieName); i18n.Supported(l) {
		return l
	}
	return invoice.DefaultLang
}

// storeLogo prefers the logo endpoint and falls back to the profile's base64
// logo. No logo at all is not an error.
func storeLogo(ctx context.Context, store *remote.Store, user *models.User) []byte {
	logo, err := store.GetLogo(ctx)
	if err != nil && !remote.IsNotFound(err) {
		log.Printf("[WARN] logo alınamadı: %v", err)
	}
	if len(logo) > 0 {
		return logo
	}
	if user != nil && user.Logo != "" {
		if b, err := base64.StdEncoding.DecodeString(user.Logo); err == nil {
			return b
		}
		log.Printf("[WARN] profil logosu çözülemedi (user %d)", user.ID)
	}
	return nil
}

func attachment(c *fiber.Ctx, contentType, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}

// GET /admin/orders/:kind/:id/invoice
func InvoiceHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindParam(c)
		if err != nil {
			return err
		}
		id, err := web.ParamID(c, "id")
		if err != nil {
			return err
		}

		store := d.Store(c)
		ctx := c.UserContext()

		orders, err := store.Orders(ctx, kind)
		if err != nil {
			return web.Upstream(c, "order.error.invoice", err, nil)
		}
		var order *models.Order
		for i := range orders {
			if orders[i].ID == id {
				order = &orders[i]
				break
			}
		}
		if order == nil {
			return fiber.NewError(fiber.StatusNotFound, i18n.Tc(c, "common.error.notFound"))
		}

		user, err := store.GetUser(ctx)
		if err != nil {
			return web.Upstream(c, "order.error.invoice", err, nil)
		}

		var buf bytes.Buffer
		err = invoice.Render(&buf, invoice.Invoice{
			Kind:  kind,
			Order: *order,
			Store: invoice.StoreInfo{Name: user.StoreName, City: user.City, Phone: user.Phone, Email: user.Email},
			Lang:  invoiceLang(c),
			Logo:  storeLogo(ctx, store, user),
			Now:   Now(),
		})
		if err != nil {
			log.Printf("[ERROR] fatura oluşturulamadı (order %d): %v", id, err)
			return web.Fail(c, fiber.StatusInternalServerError, i18n.Tc(c, "order.error.invoice"), nil, nil)
		}

		return attachment(c, "application/pdf", invoice.FileName(kind, *order), buf.Bytes())
	}
}

// GET /admin/orders/:kind/export?search=&status=
// Exports every order that matches the list filters, not just the current page.
func ExportHandler(d *web.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindParam(c)
		if err != nil {
			return err
		}

		store := d.Store(c)
		orders, err := store.Orders(c.UserContext(), kind)
		if err != nil {
			return web.Upstream(c, "order.error.export", err, nil)
		}

		search, status := c.Query("search"), c.Query("status")
		var matched []models.Order
		for _, o := range orders {
			if Matches(kind, o, search, status) {
				matched = append(matched, o)
			}
		}

		storeName := ""
		if user, err := store.GetUser(c.UserContext()); err == nil {
			storeName = user.StoreName
		} else {
			log.Printf("[WARN] mağaza adı alınamadı: %v", err)
		}

		var buf bytes.Buffer
		if err := export.Orders(&buf, kind, matched, i18n.Lang(c)); err != nil {
			log.Printf("[ERROR] sipariş dışa aktarımı başarısız: %v", err)
			return web.Fail(c, fiber.StatusInternalServerError, i18n.Tc(c, "order.error.export"), nil, nil)
		}

		return attachment(c, export.ContentType, export.FileName(storeName, kind, Now()), buf.Bytes())
	}
}
