package history

import (
	"path/filepath"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/pkg/filesystem"
	"github.com/doeshing/ask-go/internal/ports"
)

// NewStore opens the SQLite-backed history under dir (default
// ~/.ask/history), falling back to the JSONL store when the database
// cannot be opened. An empty dir resolves to the home default.
func NewStore(dir string, log ports.Logger) ports.HistoryStore {
	dir = resolveDir(dir)
	store, err := NewSQLiteStore(filepath.Join(dir, "history.db"))
	if err != nil {
		log.Warn("sqlite history unavailable, using jsonl fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return NewFileStore(filepath.Join(dir, "history.jsonl"))
	}
	return store
}

func resolveDir(dir string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(filesystem.UserHomeDir(), ".ask", "history")
}

// NopStore discards records. It serves configurations with history
// disabled so callers never branch on a nil store.
type NopStore struct{}

func (NopStore) Save(domain.HistoryRecord) error { return nil }

func (NopStore) Records(int, string) ([]domain.HistoryRecord, error) { return nil, nil }

func (NopStore) Clear() error { return nil }

func (NopStore) ExportJSON(string) error { return nil }

func (NopStore) Stats() (domain.HistoryStats, error) { return domain.HistoryStats{}, nil }

var _ ports.HistoryStore = NopStore{}

// computeStats aggregates records for the stats view. Shared by both
// backing stores so the numbers agree regardless of fallback.
func computeStats(records []domain.HistoryRecord) domain.HistoryStats {
	stats := domain.HistoryStats{Total: len(records)}
	for _, rec := range records {
		if rec.Executed {
			stats.Executed++
		}
		if rec.Success {
			stats.Succeeded++
		}
		if rec.Dangerous {
			stats.Dangerous++
		}
		if rec.Timestamp.After(stats.Newest) {
			stats.Newest = rec.Timestamp
		}
	}
	return stats
}
