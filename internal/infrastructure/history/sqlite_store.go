package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/pkg/filesystem"
	"github.com/doeshing/ask-go/internal/ports"
)

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := filesystem.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS queries (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		query TEXT,
		command TEXT,
		dangerous INTEGER,
		executed INTEGER,
		success INTEGER,
		exit_code INTEGER
	);`)
	return err
}

// Save inserts a new record, stamping an ID and timestamp when missing.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO queries
		(id, timestamp, query, command, dangerous, executed, success, exit_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(domain.TimestampFormat),
		record.Query,
		record.Command,
		boolToInt(record.Dangerous),
		boolToInt(record.Executed),
		boolToInt(record.Success),
		record.ExitCode,
	)
	return err
}

// Records returns stored entries newest first. limit <= 0 means all;
// search filters on the query and command text.
func (s *SQLiteStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, query, command, dangerous, executed, success, exit_code FROM queries")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE query LIKE ? OR command LIKE ?")
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

	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts string
		var dangerous, executed, success int
		if err := rows.Scan(&rec.ID, &ts, &rec.Query, &rec.Command, &dangerous, &executed, &success, &rec.ExitCode); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Dangerous = dangerous == 1
		rec.Executed = executed == 1
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes every stored record.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM queries")
	return err
}

// ExportJSON writes all records to dest as JSON lines.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Stats aggregates the stored records.
func (s *SQLiteStore) Stats() (domain.HistoryStats, error) {
	records, err := s.Records(0, "")
	if err != nil {
		return domain.HistoryStats{}, err
	}
	return computeStats(records), nil
}

// Path returns the backing database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
