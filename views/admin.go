package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/rfxvisual/reelsite"
)

func adminPage(title string, body func(buf *bytes.Buffer)) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		buf.WriteString(`<title>` + esc(title) + `</title>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/admin.css">`)
		buf.WriteString(`<script src="/public/htmx.min.js" defer></script>`)
		buf.WriteString(`</head><body class="admin">`)
		body(buf)
		buf.WriteString(`</body></html>`)
	})
}

// AdminLogin renders the password prompt, with an error banner after a
// failed attempt.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return adminPage("Admin Login", func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="login"><h1>Admin</h1>`)
		if showError {
			buf.WriteString(`<p class="error">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<input type="password" name="password" autofocus autocomplete="current-password">`)
		buf.WriteString(`<button type="submit">Unlock</button>`)
		buf.WriteString(`</form></section>`)
	})
}

func writeCsrf(buf *bytes.Buffer, csrfToken string) {
	buf.WriteString(`<input type="hidden" name="_csrf" value="` + attr(csrfToken) + `">`)
}

// AdminDashboard renders the full control panel: work items, site texts,
// skills and experience entries.
func AdminDashboard(items []reelsite.PortfolioItem, content reelsite.SiteContent, skills []reelsite.Skill, exps []reelsite.Experience, message, csrfToken string) templ.Component {
	return adminPage("Dashboard", func(buf *bytes.Buffer) {
		buf.WriteString(`<header class="admin-header"><h1>Dashboard</h1>`)
		buf.WriteString(`<nav><a href="/admin/images/">Images</a><a href="/" target="_blank">View site</a>`)
		buf.WriteString(`<form method="post" action="/admin/logout/" class="inline">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<button type="submit">Log out</button></form></nav></header>`)
		if message != "" {
			buf.WriteString(`<p class="flash">` + esc(message) + `</p>`)
		}

		buf.WriteString(`<section class="panel"><h2>Work</h2><table class="items"><thead><tr><th></th><th>Title</th><th>Category</th><th></th></tr></thead><tbody>`)
		for _, item := range items {
			buf.WriteString(`<tr><td>`)
			if thumb := reelsite.ItemThumbnail(item); thumb != "" {
				buf.WriteString(`<img class="thumb" src="` + attr(thumb) + `" alt="">`)
			}
			buf.WriteString(`</td><td>` + esc(item.Title) + `</td><td>` + esc(item.Category) + `</td><td>`)
			buf.WriteString(`<a href="/admin/items/` + attr(item.ID) + `/">Edit</a> `)
			buf.WriteString(`<button hx-delete="/admin/items/` + attr(item.ID) + `/"`)
			buf.WriteString(` hx-headers='{"X-CSRF-Token":"` + attr(csrfToken) + `"}'`)
			buf.WriteString(` hx-confirm="Delete this work?" hx-target="body">Delete</button>`)
			buf.WriteString(`</td></tr>`)
		}
		buf.WriteString(`</tbody></table>`)
		buf.WriteString(`<h3>Add work</h3>`)
		writeItemFields(buf, reelsite.PortfolioItem{}, "/admin/items/", csrfToken)
		buf.WriteString(`</section>`)

		buf.WriteString(`<section class="panel"><h2>Site texts</h2>`)
		buf.WriteString(`<form method="post" action="/admin/content/">`)
		writeCsrf(buf, csrfToken)
		writeTextField(buf, "headline", "Headline", content.Headline)
		writeTextField(buf, "home_caption", "Home caption", content.HomeCaption)
		writeTextField(buf, "status_tag", "Status tag", content.StatusTag)
		writeTextField(buf, "hero_image", "Hero image URL", content.HeroImage)
		writeTextField(buf, "about_image", "About image URL", content.AboutImage)
		writeTextArea(buf, "about_text", "About text", content.AboutText)
		writeTextField(buf, "portfolio_title", "Portfolio title", content.PortfolioTitle)
		writeTextField(buf, "contact_title", "Contact title", content.ContactTitle)
		writeTextField(buf, "contact_email", "Contact email", content.ContactEmail)
		buf.WriteString(`<button type="submit">Save texts</button></form></section>`)

		buf.WriteString(`<section class="panel"><h2>Skills</h2><ul class="skill-list">`)
		for _, s := range skills {
			buf.WriteString(`<li><form method="post" action="/admin/skills/` + attr(s.ID) + `/" class="inline">`)
			writeCsrf(buf, csrfToken)
			buf.WriteString(`<input name="title" value="` + attr(s.Title) + `">`)
			buf.WriteString(`<input name="level" type="number" min="0" max="100" value="` + itoa(s.Level) + `">`)
			buf.WriteString(`<input name="category" value="` + attr(s.Category) + `">`)
			buf.WriteString(`<button type="submit">Save</button></form>`)
			buf.WriteString(`<button hx-delete="/admin/skills/` + attr(s.ID) + `/"`)
			buf.WriteString(` hx-headers='{"X-CSRF-Token":"` + attr(csrfToken) + `"}'`)
			buf.WriteString(` hx-confirm="Delete this skill?" hx-target="body">Delete</button></li>`)
		}
		buf.WriteString(`</ul>`)
		buf.WriteString(`<form method="post" action="/admin/skills/" class="inline">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<input name="title" placeholder="Skill">`)
		buf.WriteString(`<input name="level" type="number" min="0" max="100" value="80">`)
		buf.WriteString(`<input name="category" placeholder="Category">`)
		buf.WriteString(`<button type="submit">Add</button></form></section>`)

		buf.WriteString(`<section class="panel"><h2>Experience</h2><ul class="exp-list">`)
		for _, e := range exps {
			buf.WriteString(`<li><form method="post" action="/admin/experiences/` + attr(e.ID) + `/" class="inline">`)
			writeCsrf(buf, csrfToken)
			writeExperienceFields(buf, e)
			buf.WriteString(`<button type="submit">Save</button></form>`)
			buf.WriteString(`<button hx-delete="/admin/experiences/` + attr(e.ID) + `/"`)
			buf.WriteString(` hx-headers='{"X-CSRF-Token":"` + attr(csrfToken) + `"}'`)
			buf.WriteString(` hx-confirm="Delete this entry?" hx-target="body">Delete</button></li>`)
		}
		buf.WriteString(`</ul>`)
		buf.WriteString(`<form method="post" action="/admin/experiences/" class="inline">`)
		writeCsrf(buf, csrfToken)
		writeExperienceFields(buf, reelsite.Experience{})
		buf.WriteString(`<button type="submit">Add</button></form></section>`)
	})
}

func writeExperienceFields(buf *bytes.Buffer, e reelsite.Experience) {
	buf.WriteString(`<input name="title" placeholder="Title" value="` + attr(e.Title) + `">`)
	buf.WriteString(`<input name="company" placeholder="Company" value="` + attr(e.Company) + `">`)
	buf.WriteString(`<input name="year" placeholder="Year" value="` + attr(e.Year) + `">`)
	buf.WriteString(`<input name="description" placeholder="Description" value="` + attr(e.Description) + `">`)
	buf.WriteString(`<select name="icon">`)
	for _, ic := range reelsite.ExperienceIcons {
		buf.WriteString(`<option value="` + attr(ic) + `"`)
		if ic == e.DisplayIcon() {
			buf.WriteString(` selected`)
		}
		buf.WriteString(`>` + esc(ic) + `</option>`)
	}
	buf.WriteString(`</select>`)
}

func writeTextField(buf *bytes.Buffer, name, label, value string) {
	buf.WriteString(`<label>` + esc(label))
	buf.WriteString(`<input name="` + attr(name) + `" value="` + attr(value) + `">`)
	buf.WriteString(`</label>`)
}

func writeTextArea(buf *bytes.Buffer, name, label, value string) {
	buf.WriteString(`<label>` + esc(label))
	buf.WriteString(`<textarea name="` + attr(name) + `" rows="4">` + esc(value) + `</textarea>`)
	buf.WriteString(`</label>`)
}

func writeItemFields(buf *bytes.Buffer, item reelsite.PortfolioItem, action, csrfToken string) {
	buf.WriteString(`<form method="post" action="` + attr(action) + `" class="item-form"`)
	if item.ID != "" {
		// Edits stream through the autosave endpoint while typing; the
		// explicit save button still posts the full form.
		buf.WriteString(` hx-post="/admin/items/` + attr(item.ID) + `/autosave"`)
		buf.WriteString(` hx-trigger="input delay:500ms" hx-target="#autosave-state" hx-swap="innerHTML"`)
	}
	buf.WriteString(`>`)
	writeCsrf(buf, csrfToken)
	writeTextField(buf, "title", "Title", item.Title)
	buf.WriteString(`<label>Category<select name="category">`)
	for _, cat := range []string{reelsite.CategoryVideo, reelsite.CategoryPhoto, reelsite.CategoryAnimation} {
		buf.WriteString(`<option value="` + attr(cat) + `"`)
		if cat == item.Category {
			buf.WriteString(` selected`)
		}
		buf.WriteString(`>` + esc(cat) + `</option>`)
	}
	buf.WriteString(`</select></label>`)
	writeTextField(buf, "image", "Thumbnail URL", item.Image)
	writeTextField(buf, "youtube_url", "YouTube URL", item.YouTubeURL)
	writeTextArea(buf, "description", "Description", item.Description)
	buf.WriteString(`<button type="submit">Save</button>`)
	if item.ID != "" {
		buf.WriteString(`<span id="autosave-state" class="autosave-state"></span>`)
	}
	buf.WriteString(`</form>`)
}

// AdminItemForm renders the edit page for one work item.
func AdminItemForm(item reelsite.PortfolioItem, csrfToken string) templ.Component {
	return adminPage("Edit "+item.Title, func(buf *bytes.Buffer) {
		buf.WriteString(`<header class="admin-header"><h1>Edit work</h1><nav><a href="/admin/">Back</a></nav></header>`)
		writeItemFields(buf, item, "/admin/items/"+item.ID+"/", csrfToken)
	})
}

// AdminImages renders the upload form and the stored image list.
func AdminImages(images []reelsite.Image, csrfToken string) templ.Component {
	return adminPage("Images", func(buf *bytes.Buffer) {
		buf.WriteString(`<header class="admin-header"><h1>Images</h1><nav><a href="/admin/">Back</a></nav></header>`)
		buf.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<input type="file" name="image" accept="image/*">`)
		buf.WriteString(`<button type="submit">Upload</button></form>`)
		buf.WriteString(`<ul class="image-list">`)
		for _, img := range images {
			buf.WriteString(`<li><img src="/public/uploads/` + attr(img.Filename) + `" alt="` + attr(img.OriginalName) + `" loading="lazy">`)
			buf.WriteString(`<code>/public/uploads/` + esc(img.Filename) + `</code>`)
			buf.WriteString(`<span>` + itoa(img.Width) + `x` + itoa(img.Height) + `</span>`)
			buf.WriteString(`<button hx-delete="/admin/images/` + attr(img.Filename) + `/"`)
			buf.WriteString(` hx-headers='{"X-CSRF-Token":"` + attr(csrfToken) + `"}'`)
			buf.WriteString(` hx-confirm="Delete this image?" hx-target="body">Delete</button></li>`)
		}
		buf.WriteString(`</ul>`)
	})
}
