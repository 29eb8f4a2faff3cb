package reelsite

import (
	"net/url"
	"strings"
)

// NormalizeImageURL rewrites known share links into directly fetchable image
// URLs. Google Drive viewer links become uc?export=view links; anything else
// passes through unchanged.
func NormalizeImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	if !strings.HasSuffix(u.Host, "drive.google.com") {
		return raw
	}
	// https://drive.google.com/file/d/<id>/view?... form
	if strings.HasPrefix(u.Path, "/file/d/") {
		rest := strings.TrimPrefix(u.Path, "/file/d/")
		if id, _, _ := strings.Cut(rest, "/"); id != "" {
			return "https://drive.google.com/uc?export=view&id=" + id
		}
	}
	// https://drive.google.com/open?id=<id> form
	if u.Path == "/open" {
		if id := u.Query().Get("id"); id != "" {
			return "https://drive.google.com/uc?export=view&id=" + id
		}
	}
	return raw
}

// YouTubeID extracts the video id from the common YouTube URL shapes
// (watch, share, shorts, embed, live). Returns "" when none is found.
func YouTubeID(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(u.Host, "www.")
	switch host {
	case "youtu.be":
		return firstPathSegment(u.Path)
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if u.Path == "/watch" {
			return u.Query().Get("v")
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				return firstPathSegment(strings.TrimPrefix(u.Path, prefix))
			}
		}
	}
	return ""
}

func firstPathSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	seg, _, _ := strings.Cut(p, "/")
	return seg
}

// YouTubeThumbnail derives a thumbnail URL from a video id.
func YouTubeThumbnail(id string) string {
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + url.PathEscape(id) + "/hqdefault.jpg"
}

// YouTubeEmbedURL builds the embeddable player URL for a video id.
func YouTubeEmbedURL(id string) string {
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + url.PathEscape(id)
}

// ItemThumbnail picks the display thumbnail for an item: the stored image if
// set, otherwise a thumbnail derived from its video, otherwise empty.
func ItemThumbnail(p PortfolioItem) string {
	if p.Image != "" {
		return NormalizeImageURL(p.Image)
	}
	if id := YouTubeID(p.YouTubeURL); id != "" {
		return YouTubeThumbnail(id)
	}
	return ""
}
