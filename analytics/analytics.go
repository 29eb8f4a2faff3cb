// Package analytics provides privacy-first page-view tracking: IPs are
// salted and hashed before storage, and rows are pruned after a retention
// period. Bots are counted separately by user-agent heuristics.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Visit is a single page view.
type Visit struct {
	Path      string `json:"path"`
	Referrer  string `json:"referrer,omitempty"`
	IPHash    string `json:"-"`
	Bot       bool   `json:"-"`
	BotName   string `json:"-"`
	Timestamp string `json:"timestamp"`
}

// PathCount aggregates views for one path.
type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// Stats is the admin-facing summary over a day range.
type Stats struct {
	Days           int         `json:"days"`
	TotalViews     int64       `json:"total_views"`
	UniqueVisitors int64       `json:"unique_visitors"`
	BotViews       int64       `json:"bot_views"`
	TopPaths       []PathCount `json:"top_paths"`
}

var botMarkers = []string{
	"bot", "crawl", "spider", "slurp", "curl", "wget",
	"python-requests", "headless", "lighthouse", "preview",
}

// BotName returns the matched bot marker for a user agent, or "" for
// what looks like a real browser.
func BotName(userAgent string) string {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return "unknown"
	}
	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return marker
		}
	}
	return ""
}

// HashIP returns a salted, hex-encoded hash of the IP so raw addresses are
// never stored.
func HashIP(salt, ip string) string {
	sum := sha256.Sum256([]byte(salt + ip))
	return hex.EncodeToString(sum[:])
}

func newSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
