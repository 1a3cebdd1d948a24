package routes

import (
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/handler"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupGeofenceRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewGeofenceHandler(d.Geofences)

	group := api.Group("/geofences", auth(d))
	group.Get("/", hdl.GetAll)
	group.Post("/", middleware.Role(model.RoleAdmin), hdl.Create)
	group.Put("/:id", middleware.Role(model.RoleAdmin), hdl.Update)
	group.Delete("/:id", middleware.Role(model.RoleAdmin), hdl.Delete)
}
