// Command reelsite runs the portfolio site server. All configuration comes
// from environment variables; a .env file is loaded when present.
package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rfxvisual/reelsite"
	"github.com/rfxvisual/reelsite/views"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := reelsite.Config{
		Name:        envOr("SITE_NAME", "RFX Visual"),
		URL:         strings.TrimSuffix(envOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Author:      os.Getenv("SITE_AUTHOR"),

		Addr:         envOr("ADDR", ":3000"),
		DatabasePath: envOr("DATABASE_PATH", "data/site.db"),

		AdminPassword: mustEnv(log, "ADMIN_PASSWORD"),
		SessionSecret: mustEnv(log, "ADMIN_SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		AnalyticsEnabled:      !strings.EqualFold(os.Getenv("ANALYTICS_DISABLED"), "true"),
		AnalyticsDatabasePath: envOr("ANALYTICS_DATABASE_PATH", "data/analytics.db"),

		ContentCacheTTL: envDuration(log, "CONTENT_CACHE_TTL", 5*time.Minute),
		AutosaveWindow:  envDuration(log, "AUTOSAVE_WINDOW", 1500*time.Millisecond),
	}

	app := reelsite.New(cfg, views.Funcs())

	// Flush pending autosaves before the process exits.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		if err := app.Close(); err != nil {
			log.WithError(err).Error("shutdown")
		}
		os.Exit(0)
	}()

	if err := app.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(log *logrus.Logger, key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("%s environment variable is required", key)
	}
	return v
}

func envDuration(log *logrus.Logger, key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s: invalid duration %q", key, v)
	}
	return d
}
