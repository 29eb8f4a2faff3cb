// Package views renders the site's HTML as templ components. Components are
// built in Go with buffered writes; all dynamic text is escaped.
package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func esc(s string) string {
	return html.EscapeString(s)
}

func attr(s string) string {
	return html.EscapeString(s)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// component wraps a buffer-writing func as a templ component.
func component(render func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		render(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

type navLink struct {
	label   string
	href    string
	partial string
}

var navLinks = []navLink{
	{"Home", "/", "home"},
	{"Work", "/portfolio/", "portfolio"},
	{"Contact", "/contact/", "contact"},
}

// page wraps body content in the full document shell: head, nav, the #page
// content region that HTMX swaps with a fade, and the live-sync script.
func page(title, activeHref string, body func(buf *bytes.Buffer)) templ.Component {
	return pageWithHead(title, activeHref, "", body)
}

// pageWithHead additionally injects raw markup into <head>, used for
// JSON-LD blocks. headExtra must be trusted markup, never user input.
func pageWithHead(title, activeHref, headExtra string, body func(buf *bytes.Buffer)) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		buf.WriteString(`<title>`)
		buf.WriteString(esc(title))
		buf.WriteString(`</title>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/site.css">`)
		buf.WriteString(`<script src="/public/htmx.min.js" defer></script>`)
		// Page swaps fade the content region; 400ms matches the CSS rule.
		buf.WriteString(`<style>#page{transition:opacity .4s}#page.htmx-swapping{opacity:0}</style>`)
		buf.WriteString(headExtra)
		buf.WriteString(`</head><body>`)
		writeNav(buf, activeHref)
		buf.WriteString(`<main id="page">`)
		body(buf)
		buf.WriteString(`</main>`)
		writeFooter(buf)
		writeLiveSync(buf)
		writeTracking(buf)
		buf.WriteString(`</body></html>`)
	})
}

func writeNav(buf *bytes.Buffer, activeHref string) {
	buf.WriteString(`<nav class="topnav"><a class="brand" href="/">RFX.VISUAL</a><div class="links">`)
	for _, l := range navLinks {
		class := "navlink"
		if l.href == activeHref {
			class += " active"
		}
		buf.WriteString(`<a class="` + class + `" href="` + attr(l.href) + `"`)
		buf.WriteString(` hx-get="` + attr(l.href+"?partial="+l.partial) + `"`)
		buf.WriteString(` hx-target="#page" hx-swap="innerHTML swap:400ms" hx-push-url="` + attr(l.href) + `">`)
		buf.WriteString(esc(l.label))
		buf.WriteString(`</a>`)
	}
	buf.WriteString(`<a class="navlink lock" href="/admin/">&#128274;</a>`)
	buf.WriteString(`</div></nav>`)
}

func writeFooter(buf *bytes.Buffer) {
	buf.WriteString(`<footer class="footer"><span>RFX Visual</span></footer>`)
}

// writeLiveSync subscribes the page to content change events so an open tab
// re-fetches the current view when an admin edits the site elsewhere.
func writeLiveSync(buf *bytes.Buffer) {
	buf.WriteString(`<script>
(function () {
  if (!window.EventSource) return;
  var partials = { '/': 'home', '/portfolio/': 'portfolio', '/contact/': 'contact' };
  var es = new EventSource('/api/events');
  es.addEventListener('change', function () {
    var partial = partials[location.pathname];
    if (partial && window.htmx) {
      htmx.ajax('GET', location.pathname + '?partial=' + partial,
        { target: '#page', swap: 'innerHTML' });
    }
  });
  window.addEventListener('beforeunload', function () { es.close(); });
})();
</script>`)
}

func writeTracking(buf *bytes.Buffer) {
	buf.WriteString(`<script>
(function () {
  try {
    fetch('/api/analytics/track', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ path: location.pathname, referrer: document.referrer })
    });
  } catch (e) {}
})();
</script>`)
}

// NotFound renders the styled 404 page.
func NotFound() templ.Component {
	return page("Not Found", "", func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="status-page"><h1>404</h1><p>That page doesn't exist.</p><a href="/">Back home</a></section>`)
	})
}

// ServerError renders the styled 500 page.
func ServerError() templ.Component {
	return page("Something went wrong", "", func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="status-page"><h1>500</h1><p>Something went wrong on our side. Try again shortly.</p></section>`)
	})
}
