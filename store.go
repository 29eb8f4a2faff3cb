package reelsite

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database and provides CRUD operations for portfolio
// items, the site-content singleton, skills, experiences, and uploads.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write, busy timeout so writers wait instead of
	// failing with SQLITE_BUSY, synchronous=NORMAL is safe under WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS portfolio_items (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    category TEXT NOT NULL,
    image TEXT NOT NULL,
    description TEXT NOT NULL,
    youtube_url TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS site_content (
    id TEXT PRIMARY KEY,
    hero_image TEXT NOT NULL DEFAULT '',
    about_image TEXT NOT NULL DEFAULT '',
    headline TEXT NOT NULL DEFAULT '',
    home_caption TEXT NOT NULL DEFAULT '',
    about_text TEXT NOT NULL DEFAULT '',
    portfolio_title TEXT NOT NULL DEFAULT '',
    contact_title TEXT NOT NULL DEFAULT '',
    contact_email TEXT NOT NULL DEFAULT '',
    status_tag TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS skills (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    level INTEGER NOT NULL DEFAULT 0,
    category TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS experiences (
    id TEXT PRIMARY KEY,
    year TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    company TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// --- Portfolio items ---

const itemColumns = `id, title, category, image, description, youtube_url, created_at`

func scanItem(row interface{ Scan(...any) error }) (PortfolioItem, error) {
	var p PortfolioItem
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Image, &p.Description, &p.YouTubeURL, &p.CreatedAt)
	return p, err
}

// ListItems returns portfolio items in insertion order. If category is
// non-empty, only items with that exact category are returned; the filter
// never re-sorts.
func (s *Store) ListItems(category string) ([]PortfolioItem, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = s.db.Query(`SELECT ` + itemColumns + ` FROM portfolio_items ORDER BY rowid`)
	} else {
		rows, err = s.db.Query(`SELECT `+itemColumns+` FROM portfolio_items WHERE category = ? ORDER BY rowid`, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PortfolioItem
	for rows.Next() {
		p, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// GetItem returns a single portfolio item by id.
func (s *Store) GetItem(id string) (PortfolioItem, error) {
	return scanItem(s.db.QueryRow(`SELECT `+itemColumns+` FROM portfolio_items WHERE id = ?`, id))
}

// CreateItem inserts a new portfolio item and returns its assigned id.
// The caller validates required fields; the store assigns id and timestamp.
func (s *Store) CreateItem(p PortfolioItem) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT INTO portfolio_items (id, title, category, image, description, youtube_url, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, p.Category, p.Image, p.Description, p.YouTubeURL, createdAt)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateItem overwrites all editable fields of the item identified by id.
// Last writer wins; there is no concurrency token.
func (s *Store) UpdateItem(id string, p PortfolioItem) error {
	_, err := s.db.Exec(`UPDATE portfolio_items SET title = ?, category = ?, image = ?, description = ?, youtube_url = ? WHERE id = ?`,
		p.Title, p.Category, p.Image, p.Description, p.YouTubeURL, id)
	return err
}

// DeleteItem removes an item by id. Deleting an absent id is a no-op.
func (s *Store) DeleteItem(id string) error {
	_, err := s.db.Exec(`DELETE FROM portfolio_items WHERE id = ?`, id)
	return err
}

// --- Site content singleton ---

const siteContentID = "home"

// GetContent returns the site-content singleton. A missing row yields the
// zero value; defaults are applied at render time, not here.
func (s *Store) GetContent() (SiteContent, error) {
	var c SiteContent
	err := s.db.QueryRow(`SELECT hero_image, about_image, headline, home_caption, about_text, portfolio_title, contact_title, contact_email, status_tag FROM site_content WHERE id = ?`, siteContentID).
		Scan(&c.HeroImage, &c.AboutImage, &c.Headline, &c.HomeCaption, &c.AboutText, &c.PortfolioTitle, &c.ContactTitle, &c.ContactEmail, &c.StatusTag)
	if err == sql.ErrNoRows {
		return SiteContent{}, nil
	}
	return c, err
}

// SaveContent merge-saves the singleton: empty incoming fields keep their
// stored value so a partial form submit never erases text.
func (s *Store) SaveContent(in SiteContent) error {
	cur, err := s.GetContent()
	if err != nil {
		return err
	}
	merged := mergeContent(cur, in)
	_, err = s.db.Exec(`INSERT OR REPLACE INTO site_content (id, hero_image, about_image, headline, home_caption, about_text, portfolio_title, contact_title, contact_email, status_tag) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		siteContentID, merged.HeroImage, merged.AboutImage, merged.Headline, merged.HomeCaption, merged.AboutText, merged.PortfolioTitle, merged.ContactTitle, merged.ContactEmail, merged.StatusTag)
	return err
}

func mergeContent(cur, in SiteContent) SiteContent {
	pick := func(incoming, existing string) string {
		if incoming != "" {
			return incoming
		}
		return existing
	}
	return SiteContent{
		HeroImage:      pick(in.HeroImage, cur.HeroImage),
		AboutImage:     pick(in.AboutImage, cur.AboutImage),
		Headline:       pick(in.Headline, cur.Headline),
		HomeCaption:    pick(in.HomeCaption, cur.HomeCaption),
		AboutText:      pick(in.AboutText, cur.AboutText),
		PortfolioTitle: pick(in.PortfolioTitle, cur.PortfolioTitle),
		ContactTitle:   pick(in.ContactTitle, cur.ContactTitle),
		ContactEmail:   pick(in.ContactEmail, cur.ContactEmail),
		StatusTag:      pick(in.StatusTag, cur.StatusTag),
	}
}

// --- Skills ---

// ListSkills returns all skills in insertion order.
func (s *Store) ListSkills() ([]Skill, error) {
	rows, err := s.db.Query(`SELECT id, title, level, category FROM skills ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []Skill
	for rows.Next() {
		var sk Skill
		if err := rows.Scan(&sk.ID, &sk.Title, &sk.Level, &sk.Category); err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

// CreateSkill inserts a skill and returns its assigned id.
// Level is clamped to 0-100.
func (s *Store) CreateSkill(sk Skill) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO skills (id, title, level, category) VALUES (?, ?, ?, ?)`,
		id, sk.Title, clampLevel(sk.Level), sk.Category)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateSkill overwrites all fields of the skill identified by id.
func (s *Store) UpdateSkill(id string, sk Skill) error {
	_, err := s.db.Exec(`UPDATE skills SET title = ?, level = ?, category = ? WHERE id = ?`,
		sk.Title, clampLevel(sk.Level), sk.Category, id)
	return err
}

// DeleteSkill removes a skill by id.
func (s *Store) DeleteSkill(id string) error {
	_, err := s.db.Exec(`DELETE FROM skills WHERE id = ?`, id)
	return err
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// --- Experiences ---

// ListExperiences returns all experiences in insertion order.
func (s *Store) ListExperiences() ([]Experience, error) {
	rows, err := s.db.Query(`SELECT id, year, title, company, description, icon FROM experiences ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exps []Experience
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.Year, &e.Title, &e.Company, &e.Description, &e.Icon); err != nil {
			return nil, err
		}
		exps = append(exps, e)
	}
	return exps, rows.Err()
}

// CreateExperience inserts an experience and returns its assigned id.
func (s *Store) CreateExperience(e Experience) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO experiences (id, year, title, company, description, icon) VALUES (?, ?, ?, ?, ?, ?)`,
		id, e.Year, e.Title, e.Company, e.Description, e.Icon)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateExperience overwrites all fields of the experience identified by id.
func (s *Store) UpdateExperience(id string, e Experience) error {
	_, err := s.db.Exec(`UPDATE experiences SET year = ?, title = ?, company = ?, description = ?, icon = ? WHERE id = ?`,
		e.Year, e.Title, e.Company, e.Description, e.Icon, id)
	return err
}

// DeleteExperience removes an experience by id.
func (s *Store) DeleteExperience(id string) error {
	_, err := s.db.Exec(`DELETE FROM experiences WHERE id = ?`, id)
	return err
}

// --- Uploaded images ---

// ListImages returns uploaded image metadata, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SaveImage records metadata for an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
