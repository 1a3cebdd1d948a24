package routes

import (
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func SetupOrganizationRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewOrganizationHandler(d.Organizations)

	api.Post("/organizations/validate", throttle(d), hdl.Validate)
	api.Get("/organizations/:id/departments", throttle(d), hdl.Departments)

	api.Post("/supervisors", throttle(d), hdl.RegisterSupervisor)
	api.Get("/supervisors", auth(d), hdl.Supervisors)
}

func SetupDashboardRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewDashboardHandler(d.Organizations)
	api.Get("/dashboard", auth(d), hdl.GetStats)
}

func SetupHealthRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewHealthHandler(d.DB, nil)
	api.Get("/health", hdl.Check)
}
