package routes

import (
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewAttendanceHandler(d.Attendance)

	// Field devices
	api.Post("/attendance/marks", throttle(d), hdl.Record)
	api.Get("/attendance/last/:dni", throttle(d), hdl.Last)

	// Web panel
	api.Get("/attendance/marks", auth(d), hdl.List)
	api.Get("/attendance/recap", auth(d), hdl.Recap)
}
