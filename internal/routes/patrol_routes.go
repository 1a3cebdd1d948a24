package routes

import (
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func SetupPatrolRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewPatrolHandler(d.Patrol)

	// Supervisor phones post every few seconds; no throttle here.
	api.Post("/patrol/pings", hdl.Ping)

	// Middleware is attached per route: a Group with handlers would also
	// cover /patrol/pings.
	api.Get("/patrol/supervisors", auth(d), hdl.Supervisors)
	api.Get("/patrol/supervisors/:dni/track.geojson", auth(d), hdl.TrackGeoJSON)
	api.Get("/patrol/supervisors/:dni/track", auth(d), hdl.Track)
}
