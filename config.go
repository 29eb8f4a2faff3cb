package reelsite

import "time"

// Config holds all server configuration for a reelsite instance.
// Site text lives in the store (SiteContent), not here.
type Config struct {
	Name        string // Site name (default "Reelsite")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for feed and meta tags
	Author      string // Videographer name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	GeminiAPIKey string // Generative-text API key, held server-side only

	AnalyticsEnabled      bool   // Enable page-view analytics (default true)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	ContentCacheTTL time.Duration // Content cache TTL (default 5min)
	AutosaveWindow  time.Duration // Autosave debounce window (default 1500ms)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Reelsite"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
	if c.AutosaveWindow == 0 {
		c.AutosaveWindow = 1500 * time.Millisecond
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
