package router

import (
	"strings"

	"restaurant_site/config"
	"restaurant_site/handler"
	"restaurant_site/middleware"
	"restaurant_site/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber app with the global middleware and every route.
func NewApp(h *handler.Handler, cfg config.Settings) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Origins,
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
		// Browsers refuse credentials for a wildcard origin.
		AllowCredentials: !strings.Contains(cfg.Origins, "*"),
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))
	if cfg.Env != "test" {
		app.Use(logger.New())
	}
	SetupRoutes(app, h, middleware.NewRateLimiter(cfg.BookingRate, cfg.BookingBurst))
	return app
}

func SetupRoutes(app *fiber.App, h *handler.Handler, limiter *middleware.RateLimiter) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	protected := middleware.Protected(h.Tokens())
	admin := []fiber.Handler{protected, middleware.RequireAdmin()}
	with := func(hs ...fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, admin...), hs...)
	}

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), h.Login)
	auth.Post("/refresh-token", h.RefreshToken)
	auth.Post("/logout", h.Logout)

	account := v1.Group("/account")
	account.Get("/me", protected, h.Me)
	account.Post("/change-password", protected, validate.ChangePassword(), h.ChangePassword)
	account.Get("/profile", protected, h.GetProfile)
	account.Put("/profile", protected, validate.UpdateProfile(), h.UpdateProfile)

	reservation := v1.Group("/reservations")
	reservation.Post("/", limiter.Limit(), h.CreateReservation)
	reservation.Get("/availability", validate.QueryDate(), h.Availability)
	reservation.Get("/", with(h.GetReservations)...)
	reservation.Get("/sheet", with(validate.QueryDate(), h.ReservationSheet)...)
	reservation.Post("/sync", with(validate.SyncReservations(), h.SyncReservations)...)
	reservation.Patch("/:reservationId/confirm", with(validate.GetById("reservationId"), h.ConfirmReservation)...)
	reservation.Delete("/", with(validate.Delete(), h.DeleteReservations)...)

	menu := v1.Group("/menu")
	menu.Get("/", h.GetMenu)
	menu.Get("/:itemId", validate.GetById("itemId"), h.GetMenuItem)
	menu.Post("/", with(validate.CreateMenuItem(), h.CreateMenuItem)...)
	menu.Put("/:itemId", with(validate.GetById("itemId"), validate.UpdateMenuItem(), h.UpdateMenuItem)...)
	menu.Delete("/", with(validate.Delete(), h.DeleteMenuItems)...)

	event := v1.Group("/events")
	event.Get("/", validate.EventFilter(), h.GetEvents)
	event.Get("/:key", h.GetEvent)
	event.Post("/", with(validate.CreateEvent(), h.CreateEvent)...)
	event.Put("/:eventId", with(validate.GetById("eventId"), validate.UpdateEvent(), h.UpdateEvent)...)
	event.Delete("/", with(validate.Delete(), h.DeleteEvents)...)

	site := v1.Group("/site")
	site.Get("/theme", h.GetTheme)
	site.Get("/theme.css", h.GetThemeCSS)
	site.Put("/theme", with(validate.UpdateTheme(), h.UpdateTheme)...)
	site.Post("/theme/reload", with(h.ReloadTheme)...)

	site.Get("/settings", h.GetSiteSettings)
	site.Put("/settings", with(validate.UpsertSiteSetting(), h.UpsertSiteSetting)...)
	site.Delete("/settings/:settingId", with(validate.GetById("settingId"), h.DeleteSiteSetting)...)

	site.Get("/features", h.GetFeatures)
	site.Get("/features/:name", h.GetFeature)
	site.Put("/features/:name", with(validate.SetFeature(), h.SetFeature)...)

	site.Get("/editable", h.GetEditableElements)
	site.Put("/editable", with(validate.UpsertEditable(), h.UpsertEditableElement)...)
	site.Delete("/editable/:elementId", with(validate.GetById("elementId"), h.DeleteEditableElement)...)

	v1.Post("/uploads/:bucket", with(validate.Bucket("bucket"), h.Upload)...)

	v1.Get("/realtime/:channel", h.UpgradeRealtime, h.Realtime())
}
