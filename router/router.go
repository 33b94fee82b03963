package router

import (
	"booking-frontend/config"
	"booking-frontend/errors"
	"booking-frontend/handlers"
	"booking-frontend/metrics"
	"booking-frontend/middleware"
	"booking-frontend/templates"
	"booking-frontend/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// New builds the app with the page templates and every route wired.
func New(cfg *config.Config) (*fiber.App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		Views:        templates.New(loc, cfg.Display.FallbackServiceName),
		ErrorHandler: errors.Handler,
	})
	if err := SetupRoutes(app, cfg, views.NewStore(cfg.Views.TTL)); err != nil {
		return nil, err
	}
	return app, nil
}

func SetupRoutes(app *fiber.App, cfg *config.Config, store *views.Store) error {
	bookings, err := handlers.NewBookingHandler(cfg, store)
	if err != nil {
		return err
	}

	app.Get("/health", handlers.GetHealth)
	if cfg.Metrics.Enabled {
		metrics.Register()
		app.Get(cfg.Metrics.Path, metrics.Handler())
	}

	api := app.Group("/", logger.New())

	//My bookings
	myBookings := api.Group("/my-bookings", middleware.Authorize(cfg.Auth), middleware.ViewSession(cfg.Views))
	myBookings.Get("/", bookings.GetMyBookings)
	myBookings.Get("/:id/cancel", bookings.ConfirmCancel)
	myBookings.Post("/:id/cancel", bookings.CancelBooking)
	myBookings.Get("/:id/edit", bookings.EditBooking)
	myBookings.Post("/:id/edit", bookings.UpdateBooking)
	return nil
}
