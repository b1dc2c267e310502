package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	CORSAllowedOrigins []string

	TavilyAPIKey         string
	TavilyEndpoint       string
	SearchTimeout        time.Duration
	AllowOfflineFallback bool
	OfflineResultsFile   string

	DBDSN      string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret          string
	RateLimitPerMinute int
}

// DBConfigured reports whether any database setting was given.
func (e Env) DBConfigured() bool {
	return e.DBDSN != "" || e.DBHost != "" || e.DBName != ""
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	origins := splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if frontend := strings.TrimSpace(os.Getenv("FRONTEND_URL")); frontend != "" {
		origins = append(origins, frontend)
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	timeout := 8 * time.Second
	if raw := strings.TrimSpace(os.Getenv("SEARCH_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		} else if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	rateLimit := 60
	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_PER_MINUTE")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			rateLimit = n
		}
	}

	offline, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("ALLOW_OFFLINE_FALLBACK")))

	return Env{
		AppAddr:              appAddr,
		GinMode:              ginMode,
		CORSAllowedOrigins:   origins,
		TavilyAPIKey:         strings.TrimSpace(os.Getenv("TAVILY_API_KEY")),
		TavilyEndpoint:       strings.TrimSpace(os.Getenv("TAVILY_ENDPOINT")),
		SearchTimeout:        timeout,
		AllowOfflineFallback: offline,
		OfflineResultsFile:   strings.TrimSpace(os.Getenv("OFFLINE_RESULTS_FILE")),
		DBDSN:                strings.TrimSpace(os.Getenv("DB_DSN")),
		DBHost:               strings.TrimSpace(os.Getenv("DB_HOST")),
		DBUser:               strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               strings.TrimSpace(os.Getenv("DB_NAME")),
		JWTSecret:            strings.TrimSpace(os.Getenv("JWT_SECRET")),
		RateLimitPerMinute:   rateLimit,
	}
}

func splitCSV(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
