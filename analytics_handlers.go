package reelsite

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// handleAnalyticsTrack records a page view posted by the tracking snippet.
func (a *App) handleAnalyticsTrack(c echo.Context) error {
	var body struct {
		Path     string `json:"path"`
		Referrer string `json:"referrer"`
	}
	if err := c.Bind(&body); err != nil || body.Path == "" {
		return c.NoContent(http.StatusBadRequest)
	}
	// Admin traffic is not visitor traffic.
	if strings.HasPrefix(body.Path, "/admin") {
		return c.NoContent(http.StatusNoContent)
	}
	if err := a.analyticsStore.RecordVisit(body.Path, body.Referrer, c.RealIP(), c.Request().UserAgent()); err != nil {
		a.log.WithError(err).Warn("analytics: record visit")
	}
	return c.NoContent(http.StatusNoContent)
}

// handleAnalyticsStats returns the admin traffic summary as JSON.
func (a *App) handleAnalyticsStats(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	days, _ := strconv.Atoi(c.QueryParam("days"))
	stats, err := a.analyticsStore.GetStats(days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
