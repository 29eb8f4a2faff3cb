package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Store persists visits in its own SQLite database, separate from site
// content so analytics churn never contends with content reads.
type Store struct {
	db *sql.DB

	saltOnce sync.Once
	salt     string

	stopOnce sync.Once
	stop     chan struct{}
}

// NewStore opens (or creates) the analytics database at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db, stop: make(chan struct{})}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure analytics schema: %w", err)
	}
	return s, nil
}

// Close stops the cleanup scheduler and closes the database.
func (s *Store) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL,
    referrer TEXT NOT NULL DEFAULT '',
    ip_hash TEXT NOT NULL,
    bot INTEGER NOT NULL DEFAULT 0,
    bot_name TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

func (s *Store) getSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *Store) setSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// InitSalt loads or generates the persistent salt for IP hashing.
// Must be called once at startup before any visit is recorded.
func (s *Store) InitSalt() error {
	var initErr error
	s.saltOnce.Do(func() {
		salt, err := s.getSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if salt == "" {
			salt, err = newSalt()
			if err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			if err := s.setSetting("hash_salt", salt); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		s.salt = salt
	})
	return initErr
}

// RecordVisit hashes the IP and stores one page view.
func (s *Store) RecordVisit(path, referrer, ip, userAgent string) error {
	botName := BotName(userAgent)
	bot := 0
	if botName != "" {
		bot = 1
	}
	_, err := s.db.Exec(`INSERT INTO visits (path, referrer, ip_hash, bot, bot_name, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		path, referrer, HashIP(s.salt, ip), bot, botName, time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetStats summarizes the last `days` days of visits.
func (s *Store) GetStats(days int) (Stats, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	stats := Stats{Days: days}
	err := s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT ip_hash) FROM visits WHERE bot = 0 AND timestamp >= ?`, since).
		Scan(&stats.TotalViews, &stats.UniqueVisitors)
	if err != nil {
		return Stats{}, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM visits WHERE bot = 1 AND timestamp >= ?`, since).Scan(&stats.BotViews); err != nil {
		return Stats{}, err
	}

	rows, err := s.db.Query(`SELECT path, COUNT(*) AS n FROM visits WHERE bot = 0 AND timestamp >= ? GROUP BY path ORDER BY n DESC LIMIT 20`, since)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return Stats{}, err
		}
		stats.TopPaths = append(stats.TopPaths, pc)
	}
	return stats, rows.Err()
}

// Cleanup deletes visits older than retentionDays.
func (s *Store) Cleanup(retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler prunes old visits on the given interval until the
// store is closed.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if n, err := s.Cleanup(retentionDays); err != nil {
					logrus.WithError(err).Warn("analytics: cleanup failed")
				} else if n > 0 {
					logrus.WithField("pruned", n).Debug("analytics: cleanup")
				}
			}
		}
	}()
}
