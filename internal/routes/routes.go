package routes

import (
	"context"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/handler"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Deps carries everything the routes need.
type Deps struct {
	Attendance    handler.AttendanceService
	Patrol        handler.PatrolService
	Shifts        handler.ShiftService
	Geofences     handler.GeofenceService
	Organizations handler.OrganizationService
	Auth          handler.AuthService
	DB            handler.Pinger

	JWTSecret []byte
	// Now overrides the clock used to check token expiry.
	Now            func() time.Time
	RequestTimeout time.Duration
	// Limiter throttles the unauthenticated device endpoints; nil disables it.
	Limiter *middleware.IPRateLimiter
}

// Setup mounts every route under /api.
func Setup(app *fiber.App, d Deps) {
	api := app.Group("/api", timeout(d.RequestTimeout))

	SetupHealthRoutes(api, d)
	SetupOrganizationRoutes(api, d)
	SetupAttendanceRoutes(api, d)
	SetupPatrolRoutes(api, d)
	SetupShiftRoutes(api, d)
	SetupGeofenceRoutes(api, d)
	SetupUserRoutes(api, d)
	SetupDashboardRoutes(api, d)
}

// timeout bounds the request context handed to usecases.
func timeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func auth(d Deps) fiber.Handler {
	if d.Now != nil {
		return middleware.Auth(d.JWTSecret, jwt.WithTimeFunc(d.Now))
	}
	return middleware.Auth(d.JWTSecret)
}

func throttle(d Deps) fiber.Handler {
	return middleware.RateLimit(d.Limiter)
}
