package reelsite

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// Slugify converts a title to a URL-safe slug. Used for upload filenames.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// WebsiteJsonLD returns a Schema.org WebSite JSON-LD block for the home page.
func WebsiteJsonLD(cfg Config) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// VideoJsonLD returns a Schema.org VideoObject JSON-LD block for a video
// portfolio item, or "" when the item has no embeddable video.
func VideoJsonLD(cfg Config, p PortfolioItem) string {
	if !p.HasPlayer() {
		return ""
	}
	data := map[string]interface{}{
		"@context":     "https://schema.org",
		"@type":        "VideoObject",
		"name":         p.Title,
		"description":  p.Description,
		"thumbnailUrl": ItemThumbnail(p),
		"embedUrl":     YouTubeEmbedURL(YouTubeID(p.YouTubeURL)),
		"url":          BuildURL(cfg.URL, "portfolio", p.ID),
	}
	if p.CreatedAt != "" {
		data["uploadDate"] = p.CreatedAt
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
