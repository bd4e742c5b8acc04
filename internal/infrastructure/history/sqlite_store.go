// Package history persists generation attempts for cross-session audit.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/pkg/filesystem"
	"github.com/doeshing/arcgen/internal/ports"
)

// SQLiteStore persists generation attempts in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.arcgen/history/history.db
// database. When sqlite is unusable it degrades to the jsonl file store.
func NewSQLiteStore() *SQLiteStore {
	return newSQLiteStoreAt(filepath.Join(filesystem.UserHomeDir(), ".arcgen", "history", "history.db"))
}

func newSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		prompt TEXT,
		category TEXT,
		model TEXT,
		source TEXT,
		success INTEGER,
		exit_code INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(entry domain.HistoryEntry) error {
	if s.db == nil {
		return s.fileStore().Save(entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT OR REPLACE INTO generations
		(id, timestamp, prompt, category, model, source, success, exit_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.Format(domain.TimestampFormat),
		entry.Prompt,
		string(entry.Category),
		entry.Model,
		entry.Source,
		boolToInt(entry.Success),
		entry.ExitCode,
	)
	return err
}

// Records returns audit entries, newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.HistoryEntry, error) {
	if s.db == nil {
		return s.fileStore().Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, prompt, category, model, source, success, exit_code FROM generations")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE prompt LIKE ? OR source LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var ts, category string
		var success int
		if err := rows.Scan(&entry.ID, &ts, &entry.Prompt, &category, &entry.Model, &entry.Source, &success, &entry.ExitCode); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			entry.Timestamp = t
		}
		entry.Category = domain.Category(category)
		entry.Success = success == 1
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear deletes all audit entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fileStore().Clear()
	}
	_, err := s.db.Exec("DELETE FROM generations")
	return err
}

// PruneOlderThan removes entries older than N days.
func (s *SQLiteStore) PruneOlderThan(days int) error {
	if days <= 0 || s.db == nil {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format(domain.TimestampFormat)
	_, err := s.db.Exec("DELETE FROM generations WHERE datetime(timestamp) < datetime(?)", cutoff)
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) fileStore() *FileStore {
	return &FileStore{path: fmt.Sprintf("%s.jsonl", strings.TrimSuffix(s.path, ".db"))}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
