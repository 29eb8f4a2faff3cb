package reelsite

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// --- Portfolio items ---

// handleAdminItemForm loads a record into the edit form (startEdit).
func (a *App) handleAdminItemForm(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	item, err := a.Store.GetItem(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminItemForm(item, CsrfToken(c)))
}

func (a *App) handleAdminItemCreate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	draft, ok := itemFromForm(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Title+and+thumbnail+are+required.")
	}
	id, err := a.Store.CreateItem(draft)
	if err != nil {
		return err
	}
	a.publishChange("portfolio", "create", id)
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminItemUpdate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	draft, ok := itemFromForm(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Title+and+thumbnail+are+required.")
	}
	id := c.Param("id")
	// An explicit save supersedes any draft still waiting out its window.
	if err := a.Autosave.Flush(id); err != nil {
		a.log.WithError(err).WithField("id", id).Warn("flush before save failed")
	}
	if err := a.Store.UpdateItem(id, draft); err != nil {
		return err
	}
	a.publishChange("portfolio", "update", id)
	return a.renderAdminDashboard(c, "saved")
}

// handleAdminItemAutosave routes a draft through the debounced saver and
// reports the record's save state so the form can show a saved indicator.
func (a *App) handleAdminItemAutosave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	draft, ok := itemFromForm(c)
	id := c.Param("id")
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"state": "invalid"})
	}
	a.Autosave.Submit(id, draft)
	return c.JSON(http.StatusOK, map[string]string{"state": a.Autosave.State(id).String()})
}

func (a *App) handleAdminItemDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	if err := a.Store.DeleteItem(id); err != nil {
		return err
	}
	a.publishChange("portfolio", "delete", id)
	return a.renderAdminDashboard(c, "deleted")
}

// itemFromForm builds a draft from the admin form. Returns ok=false when a
// required field (title, image) is missing; nothing is written in that case.
func itemFromForm(c echo.Context) (PortfolioItem, bool) {
	title := strings.TrimSpace(c.FormValue("title"))
	image := strings.TrimSpace(c.FormValue("image"))
	category := strings.TrimSpace(c.FormValue("category"))
	if category == "" {
		category = CategoryVideo
	}
	draft := PortfolioItem{
		Title:       title,
		Category:    category,
		Image:       NormalizeImageURL(image),
		Description: strings.TrimSpace(c.FormValue("description")),
		YouTubeURL:  strings.TrimSpace(c.FormValue("youtube_url")),
	}
	return draft, title != "" && image != ""
}

// --- Site content ---

func (a *App) handleAdminContentSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	in := SiteContent{
		HeroImage:      strings.TrimSpace(c.FormValue("hero_image")),
		AboutImage:     strings.TrimSpace(c.FormValue("about_image")),
		Headline:       strings.TrimSpace(c.FormValue("headline")),
		HomeCaption:    strings.TrimSpace(c.FormValue("home_caption")),
		AboutText:      strings.TrimSpace(c.FormValue("about_text")),
		PortfolioTitle: strings.TrimSpace(c.FormValue("portfolio_title")),
		ContactTitle:   strings.TrimSpace(c.FormValue("contact_title")),
		ContactEmail:   strings.TrimSpace(c.FormValue("contact_email")),
		StatusTag:      strings.TrimSpace(c.FormValue("status_tag")),
	}
	if err := a.Store.SaveContent(in); err != nil {
		return err
	}
	a.publishChange("content", "update", "")
	return a.renderAdminDashboard(c, "saved")
}

// --- Skills ---

func (a *App) handleAdminSkillCreate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	sk, ok := skillFromForm(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Skill+title+is+required.")
	}
	id, err := a.Store.CreateSkill(sk)
	if err != nil {
		return err
	}
	a.publishChange("skills", "create", id)
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminSkillUpdate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	sk, ok := skillFromForm(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Skill+title+is+required.")
	}
	id := c.Param("id")
	if err := a.Store.UpdateSkill(id, sk); err != nil {
		return err
	}
	a.publishChange("skills", "update", id)
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminSkillDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	if err := a.Store.DeleteSkill(id); err != nil {
		return err
	}
	a.publishChange("skills", "delete", id)
	return a.renderAdminDashboard(c, "deleted")
}

func skillFromForm(c echo.Context) (Skill, bool) {
	title := strings.TrimSpace(c.FormValue("title"))
	level, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("level")))
	sk := Skill{
		Title:    title,
		Level:    level,
		Category: strings.TrimSpace(c.FormValue("category")),
	}
	return sk, title != ""
}

// --- Experiences ---

func (a *App) handleAdminExperienceCreate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	exp, ok := experienceFromForm(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Experience+title+is+required.")
	}
	id, err := a.Store.CreateExperience(exp)
	if err != nil {
		return err
	}
	a.publishChange("experiences", "create", id)
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminExperienceUpdate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	exp, ok := experienceFromForm(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Experience+title+is+required.")
	}
	id := c.Param("id")
	if err := a.Store.UpdateExperience(id, exp); err != nil {
		return err
	}
	a.publishChange("experiences", "update", id)
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminExperienceDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	if err := a.Store.DeleteExperience(id); err != nil {
		return err
	}
	a.publishChange("experiences", "delete", id)
	return a.renderAdminDashboard(c, "deleted")
}

func experienceFromForm(c echo.Context) (Experience, bool) {
	title := strings.TrimSpace(c.FormValue("title"))
	exp := Experience{
		Year:        strings.TrimSpace(c.FormValue("year")),
		Title:       title,
		Company:     strings.TrimSpace(c.FormValue("company")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Icon:        strings.TrimSpace(c.FormValue("icon")),
	}
	return exp, title != ""
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	items, err := a.Store.ListItems("")
	if err != nil {
		return err
	}
	content, err := a.Store.GetContent()
	if err != nil {
		return err
	}
	skills, err := a.Store.ListSkills()
	if err != nil {
		return err
	}
	exps, err := a.Store.ListExperiences()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(items, content, skills, exps, msg, CsrfToken(c)))
}
