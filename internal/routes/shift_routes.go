package routes

import (
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/handler"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupShiftRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewShiftHandler(d.Shifts)
	admin := []fiber.Handler{auth(d), middleware.Role(model.RoleAdmin)}

	api.Get("/shifts/current", throttle(d), hdl.Current)

	api.Get("/shifts", append(admin, hdl.GetAll)...)
	api.Post("/shifts", append(admin, hdl.Create)...)
	api.Put("/shifts/:id", append(admin, hdl.Update)...)
	api.Delete("/shifts/:id", append(admin, hdl.Delete)...)
}
