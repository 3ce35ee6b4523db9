package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret string
	JWTExpiry time.Duration

	UploadDir     string
	MaxResumeSize int64

	AllowedOrigins []string
}

const defaultMaxResumeSize = 5 << 20 // 5 MB

// Load reads the process environment into a Config. The JWT secret is
// the only hard requirement; everything else has a development default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	expiry := 30 * 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRE_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRE_HOURS %q: %w", v, err)
		}
		expiry = time.Duration(hours) * time.Hour
	}

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DatabaseDSN:   getenv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=jobhive port=5432 sslmode=disable"),
		JWTSecret:     secret,
		JWTExpiry:     expiry,
		UploadDir:     getenv("UPLOAD_DIR", "uploads/resumes"),
		MaxResumeSize: defaultMaxResumeSize,
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
