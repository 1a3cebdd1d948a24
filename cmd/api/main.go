package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/config"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/database"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/lock"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/routes"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Environment
	if err := config.LoadDotEnv(); err != nil {
		logrus.WithError(err).Fatal("no se pudo leer .env")
	}
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuración inválida")
	}
	log := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	// 2. Database
	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	store := repository.NewStore(db)

	// 3. Usecases
	clock := usecase.NewSystemClock(cfg.Location)
	guard := usecase.DebounceGuard{Window: cfg.DebounceWindow, PerOrganization: cfg.DebouncePerOrganization}

	deps := routes.Deps{
		Attendance:     usecase.NewAttendanceUsecase(store, clock, lock.NewKeyed(), guard, log),
		Patrol:         usecase.NewPatrolUsecase(store, clock, cfg.PatrolStaleAfter, log),
		Shifts:         usecase.NewShiftUsecase(store, clock),
		Geofences:      usecase.NewGeofenceUsecase(store),
		Organizations:  usecase.NewOrganizationUsecase(store, clock, cfg.PatrolStaleAfter),
		Auth:           usecase.NewAuthUsecase(store, clock, cfg.JWTSecret, cfg.JWTTTL),
		DB:             store,
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
		Limiter:        middleware.NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	}

	// 4. HTTP server
	app := fiber.New(fiber.Config{
		AppName:      "sistema-integral",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: strings.Join([]string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization}, ","),
	}))
	app.Use(logger.New(logger.Config{Output: log.Writer()}))

	routes.Setup(app, deps)

	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "timezone": cfg.Location.String()}).Info("server listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
