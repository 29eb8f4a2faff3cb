package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.InitSalt(); err != nil {
		t.Fatalf("InitSalt failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndStats(t *testing.T) {
	s := setupTestStore(t)

	browser := "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0"
	visits := []struct{ path, ip string }{
		{"/", "10.0.0.1"},
		{"/", "10.0.0.2"},
		{"/portfolio/", "10.0.0.1"},
	}
	for _, v := range visits {
		if err := s.RecordVisit(v.path, "", v.ip, browser); err != nil {
			t.Fatalf("RecordVisit failed: %v", err)
		}
	}
	if err := s.RecordVisit("/", "", "10.0.0.9", "Googlebot/2.1"); err != nil {
		t.Fatalf("RecordVisit bot failed: %v", err)
	}

	stats, err := s.GetStats(30)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalViews != 3 {
		t.Errorf("TotalViews = %d, want 3 (bot excluded)", stats.TotalViews)
	}
	if stats.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", stats.UniqueVisitors)
	}
	if stats.BotViews != 1 {
		t.Errorf("BotViews = %d, want 1", stats.BotViews)
	}
	if len(stats.TopPaths) == 0 || stats.TopPaths[0].Path != "/" || stats.TopPaths[0].Count != 2 {
		t.Errorf("TopPaths = %+v, want / with 2 views first", stats.TopPaths)
	}
}

func TestSaltPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analytics.db")

	s1, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := s1.InitSalt(); err != nil {
		t.Fatalf("InitSalt failed: %v", err)
	}
	first := s1.salt
	if first == "" {
		t.Fatal("salt should be generated")
	}
	s1.Close()

	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore reopen failed: %v", err)
	}
	defer s2.Close()
	if err := s2.InitSalt(); err != nil {
		t.Fatalf("InitSalt reopen failed: %v", err)
	}
	if s2.salt != first {
		t.Errorf("salt changed across restarts: %q != %q", s2.salt, first)
	}
}

func TestCleanup(t *testing.T) {
	s := setupTestStore(t)

	old := time.Now().UTC().AddDate(0, 0, -400).Format(time.RFC3339)
	if _, err := s.db.Exec(`INSERT INTO visits (path, referrer, ip_hash, bot, bot_name, timestamp) VALUES ('/', '', 'x', 0, '', ?)`, old); err != nil {
		t.Fatalf("insert old visit: %v", err)
	}
	if err := s.RecordVisit("/", "", "10.0.0.1", "Mozilla/5.0 Firefox"); err != nil {
		t.Fatalf("RecordVisit failed: %v", err)
	}

	pruned, err := s.Cleanup(365)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
}

func TestBotName(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (X11; Linux) Firefox/128.0", ""},
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", "bot"},
		{"curl/8.5.0", "curl"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		if got := BotName(tt.ua); got != tt.want {
			t.Errorf("BotName(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}

func TestHashIPStable(t *testing.T) {
	a := HashIP("salt", "1.2.3.4")
	b := HashIP("salt", "1.2.3.4")
	c := HashIP("other", "1.2.3.4")
	if a != b {
		t.Error("same salt+IP should hash identically")
	}
	if a == c {
		t.Error("different salts should produce different hashes")
	}
	if a == "1.2.3.4" || len(a) != 64 {
		t.Errorf("hash looks wrong: %q", a)
	}
}
