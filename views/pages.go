package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/rfxvisual/reelsite"
)

func categoryIcon(category string) string {
	switch category {
	case reelsite.CategoryVideo:
		return "&#127909;"
	case reelsite.CategoryPhoto:
		return "&#128247;"
	case reelsite.CategoryAnimation:
		return "&#10024;"
	}
	return "&#127902;"
}

func writeHome(buf *bytes.Buffer, content reelsite.SiteContent, csrfToken string) {
	buf.WriteString(`<section class="hero">`)
	if content.HeroImage != "" {
		buf.WriteString(`<img class="hero-image" src="` + attr(content.HeroImage) + `" alt="">`)
	}
	buf.WriteString(`<div class="hero-copy">`)
	if content.StatusTag != "" {
		buf.WriteString(`<span class="status-tag">` + esc(content.StatusTag) + `</span>`)
	}
	buf.WriteString(`<h1>` + esc(content.Headline) + `</h1>`)
	if content.HomeCaption != "" {
		buf.WriteString(`<p class="caption">` + esc(content.HomeCaption) + `</p>`)
	}
	buf.WriteString(`<a class="cta" href="/portfolio/" hx-get="/portfolio/?partial=portfolio" hx-target="#page" hx-swap="innerHTML swap:400ms" hx-push-url="/portfolio/">See the work</a>`)
	buf.WriteString(`</div></section>`)
	writeBrainstorm(buf, csrfToken)
}

// Home renders the landing page.
func Home(content reelsite.SiteContent, csrfToken, jsonLD string) templ.Component {
	return pageWithHead(content.Headline, "/", ldScript(jsonLD), func(buf *bytes.Buffer) {
		writeHome(buf, content, csrfToken)
	})
}

func ldScript(jsonLD string) string {
	if jsonLD == "" {
		return ""
	}
	return `<script type="application/ld+json">` + jsonLD + `</script>`
}

// HomePartial renders only the landing content, for HTMX page swaps.
func HomePartial(content reelsite.SiteContent, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeHome(buf, content, csrfToken)
	})
}

func writeGallery(buf *bytes.Buffer, items []reelsite.PortfolioItem, activeCategory string) {
	buf.WriteString(`<div id="gallery">`)
	buf.WriteString(`<div class="filters">`)
	filters := append([]string{""}, reelsite.CategoryVideo, reelsite.CategoryPhoto, reelsite.CategoryAnimation)
	for _, f := range filters {
		label := f
		if f == "" {
			label = "All"
		}
		class := "filter"
		if f == activeCategory {
			class += " active"
		}
		buf.WriteString(`<button class="` + class + `"`)
		buf.WriteString(` hx-get="/portfolio/?partial=gallery&amp;category=` + attr(f) + `"`)
		buf.WriteString(` hx-target="#gallery" hx-swap="outerHTML">`)
		buf.WriteString(esc(label))
		buf.WriteString(`</button>`)
	}
	buf.WriteString(`</div>`)
	buf.WriteString(`<div class="grid">`)
	for _, item := range items {
		buf.WriteString(`<a class="card" href="/portfolio/` + attr(item.ID) + `/">`)
		thumb := reelsite.ItemThumbnail(item)
		if thumb != "" {
			buf.WriteString(`<img src="` + attr(thumb) + `" alt="` + attr(item.Title) + `" loading="lazy">`)
		}
		buf.WriteString(`<div class="card-meta"><span class="icon">` + categoryIcon(item.Category) + `</span>`)
		buf.WriteString(`<h3>` + esc(item.Title) + `</h3>`)
		buf.WriteString(`<span class="tag">` + esc(item.Category) + `</span></div>`)
		buf.WriteString(`</a>`)
	}
	if len(items) == 0 {
		buf.WriteString(`<p class="empty">Nothing here yet.</p>`)
	}
	buf.WriteString(`</div></div>`)
}

func writePortfolio(buf *bytes.Buffer, items []reelsite.PortfolioItem, activeCategory string, content reelsite.SiteContent) {
	buf.WriteString(`<section class="portfolio"><h1>` + esc(content.PortfolioTitle) + `</h1>`)
	writeGallery(buf, items, activeCategory)
	buf.WriteString(`</section>`)
}

// Portfolio renders the full work gallery page.
func Portfolio(items []reelsite.PortfolioItem, activeCategory string, content reelsite.SiteContent) templ.Component {
	return page(content.PortfolioTitle, "/portfolio/", func(buf *bytes.Buffer) {
		writePortfolio(buf, items, activeCategory, content)
	})
}

// PortfolioPartial renders only the gallery page content for HTMX swaps.
func PortfolioPartial(items []reelsite.PortfolioItem, activeCategory string, content reelsite.SiteContent) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writePortfolio(buf, items, activeCategory, content)
	})
}

// GallerySection renders the filterable grid alone, swapped in place when a
// category filter button is pressed.
func GallerySection(items []reelsite.PortfolioItem, activeCategory string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeGallery(buf, items, activeCategory)
	})
}

// ItemDetail renders a single work, with the embedded player when the item
// carries a YouTube link.
func ItemDetail(item reelsite.PortfolioItem, related []reelsite.PortfolioItem, jsonLD string) templ.Component {
	return pageWithHead(item.Title, "/portfolio/", ldScript(jsonLD), func(buf *bytes.Buffer) {
		buf.WriteString(`<article class="work">`)
		buf.WriteString(`<h1>` + esc(item.Title) + `</h1>`)
		buf.WriteString(`<span class="tag">` + esc(item.Category) + `</span>`)
		if item.HasPlayer() {
			id := reelsite.YouTubeID(item.YouTubeURL)
			buf.WriteString(`<div class="player"><iframe src="` + attr(reelsite.YouTubeEmbedURL(id)) + `"`)
			buf.WriteString(` title="` + attr(item.Title) + `" allowfullscreen loading="lazy"></iframe></div>`)
		} else if item.Image != "" {
			buf.WriteString(`<img class="work-image" src="` + attr(item.Image) + `" alt="` + attr(item.Title) + `">`)
		}
		if item.Description != "" {
			buf.WriteString(`<p class="description">` + esc(item.Description) + `</p>`)
		}
		buf.WriteString(`</article>`)
		if len(related) > 0 {
			buf.WriteString(`<section class="related"><h2>More like this</h2>`)
			writeGallery(buf, related, item.Category)
			buf.WriteString(`</section>`)
		}
	})
}

func writeContact(buf *bytes.Buffer, content reelsite.SiteContent, skills []reelsite.Skill, exps []reelsite.Experience, csrfToken string) {
	buf.WriteString(`<section class="contact"><h1>` + esc(content.ContactTitle) + `</h1>`)
	if content.AboutImage != "" {
		buf.WriteString(`<img class="about-image" src="` + attr(content.AboutImage) + `" alt="">`)
	}
	if content.AboutText != "" {
		buf.WriteString(`<p class="about">` + esc(content.AboutText) + `</p>`)
	}
	if content.ContactEmail != "" {
		buf.WriteString(`<a class="email" href="mailto:` + attr(content.ContactEmail) + `">` + esc(content.ContactEmail) + `</a>`)
	}
	if len(skills) > 0 {
		buf.WriteString(`<h2>Skills</h2><ul class="skills">`)
		for _, s := range skills {
			buf.WriteString(`<li><span>` + esc(s.Title) + `</span>`)
			buf.WriteString(`<div class="bar"><div class="fill" style="width:` + itoa(s.Level) + `%"></div></div></li>`)
		}
		buf.WriteString(`</ul>`)
	}
	if len(exps) > 0 {
		buf.WriteString(`<h2>Experience</h2><ol class="timeline">`)
		for _, e := range exps {
			buf.WriteString(`<li><span class="icon" data-icon="` + attr(e.DisplayIcon()) + `"></span>`)
			buf.WriteString(`<div><h3>` + esc(e.Title) + `</h3>`)
			if e.Company != "" {
				buf.WriteString(`<p class="company">` + esc(e.Company) + `</p>`)
			}
			if e.Year != "" {
				buf.WriteString(`<p class="year">` + esc(e.Year) + `</p>`)
			}
			if e.Description != "" {
				buf.WriteString(`<p>` + esc(e.Description) + `</p>`)
			}
			buf.WriteString(`</div></li>`)
		}
		buf.WriteString(`</ol>`)
	}
	writeBrainstorm(buf, csrfToken)
	buf.WriteString(`</section>`)
}

// Contact renders the contact and about page.
func Contact(content reelsite.SiteContent, skills []reelsite.Skill, exps []reelsite.Experience, csrfToken string) templ.Component {
	return page(content.ContactTitle, "/contact/", func(buf *bytes.Buffer) {
		writeContact(buf, content, skills, exps, csrfToken)
	})
}

// ContactPartial renders only the contact content for HTMX swaps.
func ContactPartial(content reelsite.SiteContent, skills []reelsite.Skill, exps []reelsite.Experience, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeContact(buf, content, skills, exps, csrfToken)
	})
}

// writeBrainstorm renders the idea widget. The submit button is disabled
// while a request is in flight so a prompt can't be double-sent.
func writeBrainstorm(buf *bytes.Buffer, csrfToken string) {
	buf.WriteString(`<div class="brainstorm"><h2>Brainstorm an idea</h2>`)
	buf.WriteString(`<form hx-post="/api/brainstorm" hx-target="#brainstorm-reply" hx-swap="innerHTML" hx-disabled-elt="find button">`)
	buf.WriteString(`<input type="hidden" name="_csrf" value="` + attr(csrfToken) + `">`)
	buf.WriteString(`<textarea name="prompt" rows="3" placeholder="Describe the video you have in mind..."></textarea>`)
	buf.WriteString(`<button type="submit">Ask</button>`)
	buf.WriteString(`</form><div id="brainstorm-reply"></div></div>`)
}

// BrainstormReply renders the assistant's answer fragment.
func BrainstormReply(text string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<p class="brainstorm-answer">` + esc(text) + `</p>`)
	})
}
