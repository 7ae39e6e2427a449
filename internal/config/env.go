package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	LogLevel           string
	UploadDir          string
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	JWTSecret          string
	Migrate            bool
}

// LoadEnv reads an optional .env file, then the process environment.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	env := Env{
		AppAddr:    getenv("APP_ADDR", ":8080"),
		GinMode:    strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:     getenv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:     getenv("DB_NAME", "fleetops"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		UploadDir:  getenv("UPLOAD_DIR", "uploads"),
		JWTSecret:  strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}

	var errs []error

	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
		}
	}

	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_PER_MINUTE")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_MINUTE: invalid value %q", raw))
		} else {
			env.RateLimitPerMinute = n
		}
	}

	if raw := strings.TrimSpace(os.Getenv("MIGRATE")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("MIGRATE: invalid value %q", raw))
		} else {
			env.Migrate = b
		}
	}

	return env, errors.Join(errs...)
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
