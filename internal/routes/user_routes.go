package routes

import (
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/handler"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewUserHandler(d.Auth)

	api.Post("/web/login", throttle(d), hdl.Login)

	admin := api.Group("/web/users", auth(d), middleware.Role(model.RoleAdmin))
	admin.Get("/", hdl.GetAll)
	admin.Post("/", hdl.Create)
	admin.Delete("/:id", hdl.Delete)
	admin.Put("/:id/password", hdl.ChangePassword)
}
