package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/auth"
	"restoran-backoffice/internal/bookings"
	"restoran-backoffice/internal/dashboard"
	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/inbox"
	"restoran-backoffice/internal/menu"
	"restoran-backoffice/internal/orders"
	"restoran-backoffice/internal/profile"
	"restoran-backoffice/internal/site"
	"restoran-backoffice/internal/staff"
	"restoran-backoffice/internal/tables"
	"restoran-backoffice/internal/web"
)

// ErrorHandler maps *fiber.Error to {"error": msg}; anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": i18n.Tc(c, "common.error.generic"),
	})
}

// Middleware installs the stack every request goes through.
func Middleware(app *fiber.App, d *web.Deps) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// CORS origins virgülle ayrılmış gelir
	origins := strings.Split(d.Cfg.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Accept-Language",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(i18n.Middleware(d.Cfg.DefaultLanguage))
}

// SetupRoutes registers the public auth routes and the /admin screens.
func SetupRoutes(app *fiber.App, d *web.Deps, revs auth.Revocations) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Public
	app.Get("/login", auth.LoginPageHandler())
	app.Post("/login", auth.LoginHandler(d))
	app.Post("/forgot-password", auth.ForgotPasswordHandler(d))
	app.Post("/logout", auth.LogoutHandler(d, revs))
	app.Post("/lang", auth.LangHandler())

	admin := app.Group("/admin", auth.RequireSession(d.Cfg.JWTSecret, revs))

	// Dashboard & kabuk
	admin.Get("/", dashboard.DashboardHandler(d))
	admin.Get("/shell", dashboard.ShellHandler(d))
	admin.Get("/ws/badges", dashboard.BadgesUpgrade(d), dashboard.BadgesSocket())

	// Menü
	admin.Get("/categories", menu.ListCategoriesHandler(d))
	admin.Post("/categories", menu.CreateCategoryHandler(d))
	admin.Delete("/categories/:id", menu.DeleteCategoryHandler(d))

	admin.Get("/foods", menu.ListFoodsHandler(d))
	admin.Get("/foods/form", menu.FoodFormHandler(d))
	admin.Get("/foods/:id", menu.GetFoodHandler(d))
	admin.Post("/foods", menu.CreateFoodHandler(d))
	admin.Put("/foods/:id", menu.UpdateFoodHandler(d))
	admin.Post("/foods/:id/images", menu.AddFoodImageHandler(d))
	admin.Delete("/foods/:id", menu.DeleteFoodHandler(d))

	// Şefler
	admin.Get("/chefs", staff.ListChefsHandler(d))
	admin.Post("/chefs", staff.CreateChefHandler(d))
	admin.Put("/chefs/:id", staff.UpdateChefHandler(d))
	admin.Delete("/chefs/:id", staff.DeleteChefHandler(d))

	// Siparişler
	admin.Get("/orders/:kind", orders.ListOrdersHandler(d))
	admin.Get("/orders/:kind/export", orders.ExportHandler(d))
	admin.Get("/orders/:kind/:id/invoice", orders.InvoiceHandler(d))
	admin.Put("/orders/:id/status", orders.UpdateOrderStatusHandler(d))
	admin.Delete("/orders/:id", orders.DeleteOrderHandler(d))

	// Rezervasyonlar & mesajlar
	admin.Get("/reservations", bookings.ListReservationsHandler(d))
	admin.Get("/reservations/:id", bookings.GetReservationHandler(d))
	admin.Put("/reservations/:id", bookings.UpdateReservationHandler(d))
	admin.Delete("/reservations/:id", bookings.DeleteReservationHandler(d))

	admin.Get("/messages", inbox.ListMessagesHandler(d))
	admin.Delete("/messages/:id", inbox.DeleteMessageHandler(d))

	// Site içeriği
	admin.Get("/about", site.GetAboutHandler(d))
	admin.Post("/about", site.CreateAboutHandler(d))
	admin.Put("/about", site.UpdateAboutHandler(d))
	admin.Delete("/about/images/:key", site.DeleteAboutImageHandler(d))
	admin.Delete("/about", site.DeleteAboutHandler(d))

	admin.Post("/header-images", site.CreateHeaderImageHandler(d))

	admin.Get("/location", site.GetLocationHandler(d))
	admin.Post("/location", site.SaveLocationHandler(d))
	admin.Delete("/location/:id", site.DeleteLocationHandler(d))

	// QR kodları
	codes := tables.NewRegistry()
	admin.Post("/qr-codes", tables.GenerateHandler(d, codes))
	admin.Get("/qr-codes", tables.ListHandler(d, codes))
	admin.Get("/qr-codes/:table/png", tables.PNGHandler(codes))

	// Profil
	admin.Get("/profile", profile.GetProfileHandler(d))
	admin.Get("/profile/logo", profile.GetLogoHandler(d))
	admin.Put("/profile", profile.UpdateProfileHandler(d))

	// Audit logs
	admin.Get("/audit-logs", audit.ListAuditLogsHandler(d.Audit, d.PageSize()))
}
