package reelsite

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	content, err := a.Cache.Content()
	if err != nil {
		return err
	}
	if isHXRequest(c) && c.QueryParam("partial") == "home" {
		return Render(c, a.Views.HomePartial(content, CsrfToken(c)))
	}
	return Render(c, a.Views.Home(content, CsrfToken(c), WebsiteJsonLD(a.Config)))
}

// handlePortfolio serves the gallery, optionally filtered by category.
// The filter is an exact match over stored order; unknown categories simply
// yield an empty gallery.
func (a *App) handlePortfolio(c echo.Context) error {
	category := c.QueryParam("category")
	items, err := a.Cache.ListItems(category)
	if err != nil {
		return err
	}
	content, err := a.Cache.Content()
	if err != nil {
		return err
	}
	if isHXRequest(c) {
		switch c.QueryParam("partial") {
		case "gallery":
			return Render(c, a.Views.GallerySection(items, category))
		case "portfolio":
			return Render(c, a.Views.PortfolioPartial(items, category, content))
		}
	}
	return Render(c, a.Views.Portfolio(items, category, content))
}

func (a *App) handlePortfolioItem(c echo.Context) error {
	item, err := a.Cache.GetItem(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	related, err := a.Cache.ListItems(item.Category)
	if err != nil {
		return err
	}
	// Drop the item itself from its related list.
	filtered := related[:0:0]
	for _, r := range related {
		if r.ID != item.ID {
			filtered = append(filtered, r)
		}
	}
	return Render(c, a.Views.ItemDetail(item, filtered, VideoJsonLD(a.Config, item)))
}

func (a *App) handleContact(c echo.Context) error {
	content, err := a.Cache.Content()
	if err != nil {
		return err
	}
	skills, err := a.Cache.ListSkills()
	if err != nil {
		return err
	}
	exps, err := a.Cache.ListExperiences()
	if err != nil {
		return err
	}
	if isHXRequest(c) && c.QueryParam("partial") == "contact" {
		return Render(c, a.Views.ContactPartial(content, skills, exps, CsrfToken(c)))
	}
	return Render(c, a.Views.Contact(content, skills, exps, CsrfToken(c)))
}

// handleBrainstorm relays a visitor question to the generative-text client
// and always answers 200 with displayable text.
func (a *App) handleBrainstorm(c echo.Context) error {
	if a.Brainstorm == nil {
		return Render(c, a.Views.BrainstormReply("The assistant is taking a break. Reach out by email instead!"))
	}
	if !a.askLimiter.Allow(c.RealIP()) {
		return Render(c, a.Views.BrainstormReply("Slow down a little! Give it a minute and ask again."))
	}
	prompt := strings.TrimSpace(c.FormValue("prompt"))
	if prompt == "" {
		return Render(c, a.Views.BrainstormReply("Ask me anything about your next video project."))
	}
	answer := a.Brainstorm.Ask(c.Request().Context(), prompt)
	return Render(c, a.Views.BrainstormReply(answer))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically using the canonical URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func isHXRequest(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
