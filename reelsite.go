// Package reelsite is a single-binary portfolio/marketing site server for a
// freelance videographer, built with Echo, templ, and SQLite. It serves a
// landing page, a filterable gallery, a contact page with an AI brainstorm
// assistant, and a session-gated admin panel for editing site content.
package reelsite

import (
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/rfxvisual/reelsite/analytics"
	"github.com/rfxvisual/reelsite/autosave"
	"github.com/rfxvisual/reelsite/brainstorm"
)

// ViewFuncs holds the templ components the engine calls when rendering
// pages. The deployment owns layout and styling; the engine owns behavior.
type ViewFuncs struct {
	Home             func(content SiteContent, csrfToken, jsonLD string) templ.Component
	HomePartial      func(content SiteContent, csrfToken string) templ.Component
	Portfolio        func(items []PortfolioItem, activeCategory string, content SiteContent) templ.Component
	PortfolioPartial func(items []PortfolioItem, activeCategory string, content SiteContent) templ.Component
	GallerySection   func(items []PortfolioItem, activeCategory string) templ.Component
	ItemDetail       func(item PortfolioItem, related []PortfolioItem, jsonLD string) templ.Component
	Contact          func(content SiteContent, skills []Skill, exps []Experience, csrfToken string) templ.Component
	ContactPartial   func(content SiteContent, skills []Skill, exps []Experience, csrfToken string) templ.Component
	BrainstormReply  func(text string) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(items []PortfolioItem, content SiteContent, skills []Skill, exps []Experience, message, csrfToken string) templ.Component
	AdminItemForm    func(item PortfolioItem, csrfToken string) templ.Component
	AdminImages      func(images []Image, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central reelsite application. It wires together the store,
// cache, broadcaster, handlers, and middleware.
type App struct {
	Config      Config
	Echo        *echo.Echo
	Store       *Store
	Cache       *ContentCache
	Broadcaster *Broadcaster
	Brainstorm  *brainstorm.Client
	Autosave    *autosave.Saver[PortfolioItem]
	Views       ViewFuncs

	log            *logrus.Logger
	loginLimiter   *LoginLimiter
	askLimiter     *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a reelsite App with the given configuration and views.
func New(cfg Config, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		log:       logrus.StandardLogger(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, and routes, then starts
// the server. It blocks until the server stops.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init wires all dependencies without starting the listener. Split out so
// tests can exercise a fully routed app via httptest.
func (a *App) init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("reelsite: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("reelsite: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("reelsite: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewContentCache(a.Store, a.Config.ContentCacheTTL)
	a.Broadcaster = NewBroadcaster()
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.askLimiter = NewLoginLimiter(10, time.Minute)

	// Autosaved drafts flow through the same update path as explicit saves,
	// so subscribers see them too.
	a.Autosave = autosave.New(a.Config.AutosaveWindow, func(id string, draft PortfolioItem) error {
		if err := a.Store.UpdateItem(id, draft); err != nil {
			return err
		}
		a.publishChange("portfolio", "update", id)
		return nil
	}, a.log)

	if a.Config.GeminiAPIKey != "" {
		client, err := brainstorm.New(brainstorm.Config{
			APIKey:     a.Config.GeminiAPIKey,
			StudioName: a.Config.Name,
			Log:        a.log,
		})
		if err != nil {
			return fmt.Errorf("reelsite: init brainstorm: %w", err)
		}
		a.Brainstorm = client
	} else {
		a.log.Warn("reelsite: GEMINI_API_KEY not set, brainstorm assistant disabled")
	}

	if a.Config.AnalyticsEnabled {
		as, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("reelsite: init analytics: %w", err)
		}
		a.analyticsStore = as
		if err := as.InitSalt(); err != nil {
			return fmt.Errorf("reelsite: init analytics salt: %w", err)
		}
		as.StartCleanupScheduler(365, 24*time.Hour)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/portfolio/", a.handlePortfolio)
	e.GET("/portfolio/:id/", a.handlePortfolioItem)
	e.GET("/contact/", a.handleContact)

	// Live content sync + brainstorm assistant
	e.GET("/api/events", a.handleEvents)
	e.POST("/api/brainstorm", a.handleBrainstorm)

	// Admin panel
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	e.GET("/admin/items/:id/", a.handleAdminItemForm)
	e.POST("/admin/items/", a.handleAdminItemCreate)
	e.POST("/admin/items/:id/", a.handleAdminItemUpdate)
	e.POST("/admin/items/:id/autosave", a.handleAdminItemAutosave)
	e.DELETE("/admin/items/:id/", a.handleAdminItemDelete)

	e.POST("/admin/content/", a.handleAdminContentSave)

	e.POST("/admin/skills/", a.handleAdminSkillCreate)
	e.POST("/admin/skills/:id/", a.handleAdminSkillUpdate)
	e.DELETE("/admin/skills/:id/", a.handleAdminSkillDelete)

	e.POST("/admin/experiences/", a.handleAdminExperienceCreate)
	e.POST("/admin/experiences/:id/", a.handleAdminExperienceUpdate)
	e.DELETE("/admin/experiences/:id/", a.handleAdminExperienceDelete)

	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)

	if a.analyticsStore != nil {
		e.POST("/api/analytics/track", a.handleAnalyticsTrack)
		e.GET("/admin/analytics/stats", a.handleAnalyticsStats)
	}
}

// Close flushes pending autosaves and releases resources. Call on shutdown.
func (a *App) Close() error {
	var firstErr error
	if a.Autosave != nil {
		if err := a.Autosave.Close(); err != nil {
			firstErr = err
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.analyticsStore != nil {
		if err := a.analyticsStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
