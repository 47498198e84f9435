package history

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/pkg/logger"
	"github.com/doeshing/ask-go/internal/ports"
)

func openStores(t *testing.T) map[string]ports.HistoryStore {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	return map[string]ports.HistoryStore{
		"sqlite": sqlite,
		"jsonl":  NewFileStore(filepath.Join(t.TempDir(), "history.jsonl")),
	}
}

func sampleRecords() []domain.HistoryRecord {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []domain.HistoryRecord{
		{Query: "list files", Command: "ls -la", Executed: true, Success: true, Timestamp: base},
		{Query: "disk usage", Command: "df -h", Executed: true, Success: true, Timestamp: base.Add(time.Minute)},
		{Query: "delete temp files", Command: `find . -name "*.tmp" -delete`, Dangerous: true, Timestamp: base.Add(2 * time.Minute)},
	}
}

func TestStoresSaveAndListNewestFirst(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, rec := range sampleRecords() {
				if err := store.Save(rec); err != nil {
					t.Fatalf("Save error: %v", err)
				}
			}
			records, err := store.Records(0, "")
			if err != nil {
				t.Fatalf("Records error: %v", err)
			}
			if len(records) != 3 {
				t.Fatalf("len = %d, want 3", len(records))
			}
			if records[0].Query != "delete temp files" {
				t.Fatalf("newest first violated: %+v", records[0])
			}
			if records[0].ID == "" {
				t.Fatal("record saved without an ID")
			}
		})
	}
}

func TestStoresLimitAndSearch(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, rec := range sampleRecords() {
				if err := store.Save(rec); err != nil {
					t.Fatalf("Save error: %v", err)
				}
			}
			limited, err := store.Records(2, "")
			if err != nil {
				t.Fatalf("Records error: %v", err)
			}
			if len(limited) != 2 {
				t.Fatalf("limited len = %d, want 2", len(limited))
			}
			found, err := store.Records(0, "disk")
			if err != nil {
				t.Fatalf("Records error: %v", err)
			}
			if len(found) != 1 || found[0].Command != "df -h" {
				t.Fatalf("search mismatch: %+v", found)
			}
		})
	}
}

func TestStoresClear(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Save(domain.HistoryRecord{Query: "a", Command: "ls"}); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			if err := store.Clear(); err != nil {
				t.Fatalf("Clear error: %v", err)
			}
			records, err := store.Records(0, "")
			if err != nil {
				t.Fatalf("Records error: %v", err)
			}
			if len(records) != 0 {
				t.Fatalf("records remain after clear: %+v", records)
			}
		})
	}
}

func TestStoresStats(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, rec := range sampleRecords() {
				if err := store.Save(rec); err != nil {
					t.Fatalf("Save error: %v", err)
				}
			}
			stats, err := store.Stats()
			if err != nil {
				t.Fatalf("Stats error: %v", err)
			}
			if stats.Total != 3 || stats.Executed != 2 || stats.Succeeded != 2 || stats.Dangerous != 1 {
				t.Fatalf("stats mismatch: %+v", stats)
			}
			if stats.Newest.IsZero() {
				t.Fatal("stats missing newest timestamp")
			}
		})
	}
}

func TestStoresExportJSON(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, rec := range sampleRecords() {
				if err := store.Save(rec); err != nil {
					t.Fatalf("Save error: %v", err)
				}
			}
			dest := filepath.Join(t.TempDir(), "export.jsonl")
			if err := store.ExportJSON(dest); err != nil {
				t.Fatalf("ExportJSON error: %v", err)
			}
			file, err := os.Open(dest)
			if err != nil {
				t.Fatalf("Open error: %v", err)
			}
			defer file.Close()
			lines := 0
			scanner := bufio.NewScanner(file)
			for scanner.Scan() {
				lines++
			}
			if lines != 3 {
				t.Fatalf("exported %d lines, want 3", lines)
			}
		})
	}
}

func TestNewStoreFallsBackToFileStore(t *testing.T) {
	dir := t.TempDir()
	// Occupy the db path with a directory so sqlite cannot open it.
	if err := os.MkdirAll(filepath.Join(dir, "history.db"), 0o755); err != nil {
		t.Fatal(err)
	}
	store := NewStore(dir, logger.NewStd(false))
	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("expected FileStore fallback, got %T", store)
	}
}
