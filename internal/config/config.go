package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env     string
	Port    int
	Version string

	DBURL string

	JWTSecret           string
	JWTAccessTTLMinutes int

	CORSAllowedOrigins []string

	OTELEndpoint   string
	TracingEnabled bool
}

func Load() Config {
	env := getEnv("APP_ENV", "development")
	port := getEnvInt("PORT", 3000)

	return Config{
		Env:                 env,
		Port:                port,
		Version:             getEnv("APP_VERSION", "1.0.0"),
		DBURL:               buildDBURL(),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTAccessTTLMinutes: getEnvInt("JWT_ACCESS_TTL_MINUTES", 60),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		OTELEndpoint:        getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TracingEnabled:      getEnv("TRACING_ENABLED", "false") == "true",
	}
}

func buildDBURL() string {
	host := getEnv("DATABASE_HOST", "127.0.0.1")
	port := getEnv("DATABASE_PORT", "5432")
	user := getEnv("DATABASE_USERNAME", "recipehub")
	pass := getEnv("DATABASE_PASSWORD", "recipehub")
	name := getEnv("DATABASE_NAME", "recipehub")
	ssl := getEnv("DATABASE_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}
