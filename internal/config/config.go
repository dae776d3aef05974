package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL    string
	Port           string
	Environment    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	RefreshTTL     time.Duration

	AMQPURL string

	// HealthKey gates the health monitor endpoint for non-admin callers.
	HealthKey string

	// BusinessWhatsApp is the number booking deep links are addressed to,
	// digits only with country code (e.g. 6281234567890).
	BusinessWhatsApp string

	SiteBaseURL string
	UploadsDir  string

	AllowedOrigins []string
}

func Load() *Config {
	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "beachride.db"),
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AccessTokenTTL:   getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTTL:       getDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		AMQPURL:          os.Getenv("AMQP_URL"),
		HealthKey:        os.Getenv("HEALTH_KEY"),
		BusinessWhatsApp: getEnv("BUSINESS_WHATSAPP", "6281234567890"),
		SiteBaseURL:      getEnv("SITE_BASE_URL", "https://beachride.example.com"),
		UploadsDir:       getEnv("UPLOADS_DIR", "./uploads"),
		AllowedOrigins:   origins,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
