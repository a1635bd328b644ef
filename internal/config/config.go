package config

import (
	"os"
	"strings"
)

// Server holds the dev backend configuration, environment-driven with
// local defaults.
type Server struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	HMACSecret string
	SeedDemo   bool

	CORSOrigins []string
}

func ServerFromEnv() Server {
	return Server{
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		DBDriver:    envOr("DB_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		HMACSecret:  envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		SeedDemo:    envBool("SEED_DEMO", true),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	parts := strings.Split(envOr(k, def), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
