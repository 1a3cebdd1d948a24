package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(GetEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsDuration accepts Go durations ("90s", "2m") or plain seconds.
func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := strings.TrimSpace(GetEnv(key, ""))
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

type Config struct {
	Port string

	DBDriver          string
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	JWTSecret []byte
	JWTTTL    time.Duration

	// Location is the business timezone used for mark dates and shift times.
	Location *time.Location

	DebounceWindow          time.Duration
	DebouncePerOrganization bool
	PatrolStaleAfter        time.Duration

	RequestTimeout     time.Duration
	RateLimitPerSecond float64
	RateLimitBurst     int

	LogLevel    string
	LogFormat   string
	CORSOrigins string
}

// LoadDotEnv reads .env when present; a missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// LoadDB reads only the database and logging keys; the seeder needs no more.
func LoadDB() (*Config, error) {
	cfg := &Config{
		DBDriver:          strings.ToLower(GetEnv("DB_DRIVER", "postgres")),
		DatabaseURL:       GetEnv("DATABASE_URL", ""),
		DBMaxOpenConns:    GetEnvAsInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    GetEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: GetEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		LogFormat:         GetEnv("LOG_FORMAT", "text"),
	}

	switch cfg.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("DB_DRIVER %q no soportado (postgres, mysql, sqlite)", cfg.DBDriver)
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL es requerido")
	}
	return cfg, nil
}

// Load reads the full API configuration from the environment.
func Load() (*Config, error) {
	cfg, err := LoadDB()
	if err != nil {
		return nil, err
	}
	cfg.Port = GetEnv("PORT", "3000")
	cfg.JWTSecret = []byte(GetEnv("JWT_SECRET", ""))
	cfg.JWTTTL = GetEnvAsDuration("JWT_TTL", 12*time.Hour)
	cfg.DebounceWindow = GetEnvAsDuration("DEBOUNCE_WINDOW", 180*time.Second)
	cfg.DebouncePerOrganization = GetEnvAsBool("DEBOUNCE_PER_ORGANIZATION", false)
	cfg.PatrolStaleAfter = GetEnvAsDuration("PATROL_STALE_AFTER", 120*time.Second)
	cfg.RequestTimeout = GetEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second)
	cfg.RateLimitPerSecond = GetEnvAsFloat("RATE_LIMIT_PER_SECOND", 5)
	cfg.RateLimitBurst = GetEnvAsInt("RATE_LIMIT_BURST", 10)
	cfg.CORSOrigins = GetEnv("CORS_ORIGINS", "*")

	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWT_SECRET es requerido")
	}
	if cfg.DebounceWindow <= 0 || cfg.PatrolStaleAfter <= 0 {
		return nil, errors.New("DEBOUNCE_WINDOW y PATROL_STALE_AFTER deben ser positivos")
	}

	loc, err := BusinessLocation(GetEnv("BUSINESS_TIMEZONE", "America/Lima"), GetEnv("BUSINESS_UTC_OFFSET", "-05:00"))
	if err != nil {
		return nil, err
	}
	cfg.Location = loc
	return cfg, nil
}

// BusinessLocation loads the named zone, falling back to a fixed offset
// like "-05:00" when the tz database is not available on the host.
func BusinessLocation(name, offset string) (*time.Location, error) {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, nil
		}
	}
	t, err := time.Parse("-07:00", offset)
	if err != nil {
		return nil, fmt.Errorf("BUSINESS_UTC_OFFSET inválido %q: %w", offset, err)
	}
	_, secs := t.Zone()
	label := name
	if label == "" {
		label = "UTC" + offset
	}
	return time.FixedZone(label, secs), nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
