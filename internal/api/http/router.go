package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/bloodlink-service/internal/api/http/handlers"
	"github.com/spec-kit/bloodlink-service/internal/auth"
	"github.com/spec-kit/bloodlink-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Requests       *handlers.RequestsHandler
	Banks          *handlers.BanksHandler
	Camps          *handlers.CampsHandler
	Events         *handlers.EventsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/google", cfg.Auth.GoogleLogin)
	authGroup.Post("/bloodbank/register", cfg.Auth.RegisterBloodBank)
	authGroup.Post("/bloodbank/login", cfg.Auth.LoginBloodBank)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/donors", auth.RequireAnyActor(), cfg.Users.SearchDonors)
	users.Get("/profile", auth.RequireUser(), cfg.Users.GetProfile)
	users.Put("/profile", auth.RequireUser(), cfg.Users.UpdateProfile)
	users.Put("/donor-info", auth.RequireUser(), cfg.Users.UpdateDonorInfo)

	requests := app.Group("/requests")
	requests.Get("/", cfg.Requests.List)
	requests.Get("/my-requests", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Requests.ListMine)
	requests.Post("/", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Requests.Create)
	requests.Patch("/:id/status", cfg.AuthMiddleware.Handle, auth.RequireAnyActor(), cfg.Requests.UpdateStatus)

	banks := app.Group("/bloodbanks")
	banks.Get("/", cfg.Banks.List)
	banks.Put("/inventory", cfg.AuthMiddleware.Handle, auth.RequireBloodBank(), cfg.Banks.UpdateInventory)
	banks.Get("/:id", cfg.Banks.Get)

	camps := app.Group("/camps")
	camps.Get("/", cfg.Camps.List)
	camps.Get("/my-camps", cfg.AuthMiddleware.Handle, auth.RequireBloodBank(), cfg.Camps.ListMine)
	camps.Post("/", cfg.AuthMiddleware.Handle, auth.RequireBloodBank(), cfg.Camps.Create)
	camps.Get("/:id", cfg.Camps.Get)
	camps.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireBloodBank(), cfg.Camps.Update)
	camps.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireBloodBank(), cfg.Camps.Delete)
	camps.Post("/:id/register", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Camps.Register)
	camps.Patch("/:id/collected", cfg.AuthMiddleware.Handle, auth.RequireBloodBank(), cfg.Camps.RecordCollected)
	camps.Get("/:id/registrations", cfg.AuthMiddleware.Handle, auth.RequireBloodBank(), cfg.Camps.ListRegistrations)
	camps.Get("/:id/registrations/export", cfg.AuthMiddleware.Handle, auth.RequireBloodBank(), cfg.Camps.ExportRegistrations)

	events := app.Group("/events")
	events.Get("/", cfg.Events.List)
	events.Post("/", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Events.Create)
	events.Post("/:id/register", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Events.Register)
	events.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Events.Delete)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/export/users", cfg.Admin.ExportUsers)
	admin.Get("/export/requests", cfg.Admin.ExportRequests)
	admin.Get("/export/bloodbanks", cfg.Admin.ExportBloodBanks)
	admin.Get("/export/camps", cfg.Admin.ExportCamps)
	admin.Get("/export/events", cfg.Admin.ExportEvents)
}
