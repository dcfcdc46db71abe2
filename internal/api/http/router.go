package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/api/http/handlers"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Webhook        *handlers.WebhookHandler
	Dashboard      *handlers.DashboardHandler
	Employees      *handlers.EmployeesHandler
	Settings       *handlers.SettingsHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The webhook and dashboard views are
// public; roster and settings administration require the admin token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api")
	api.Post("/whatsapp/webhook", cfg.Webhook.Receive)
	api.Post("/whatsapp/simulate", cfg.Webhook.Receive)

	api.Get("/employees/status", cfg.Dashboard.EmployeeStatuses)
	api.Get("/employees/:id/status", cfg.Dashboard.EmployeeStatus)
	api.Get("/stats", cfg.Dashboard.Stats)
	api.Get("/attendance", cfg.Dashboard.Attendance)
	api.Get("/messages/recent", cfg.Dashboard.RecentMessages)

	admin := api.Group("", cfg.AuthMiddleware.Handle)
	admin.Post("/employees", cfg.Employees.Create)
	admin.Get("/employees", cfg.Employees.List)
	admin.Get("/employees/:id", cfg.Employees.Get)
	admin.Put("/employees/:id", cfg.Employees.Update)

	admin.Get("/settings", cfg.Settings.List)
	admin.Get("/settings/:key", cfg.Settings.Get)
	admin.Put("/settings/:key", cfg.Settings.Set)
}
