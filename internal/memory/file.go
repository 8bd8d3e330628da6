package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"ultimattt/internal/game"
)

// FileStore keeps the memory map in a single JSON file, loaded once at
// construction and rewritten in full on every update.
type FileStore struct {
	path    string
	mu      sync.Mutex
	entries map[string]Entry
}

// NewFileStore loads the memory file at path. A missing or unreadable file
// falls back to an empty map; that is never an error.
func NewFileStore(path string) *FileStore {
	s := &FileStore{
		path:    path,
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read memory file, starting empty", "path", path, "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		slog.Warn("could not parse memory file, starting empty", "path", path, "error", err)
		s.entries = make(map[string]Entry)
	}
	return s
}

// Get returns the entry for a display name.
func (s *FileStore) Get(_ context.Context, name string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[name]
	return e, ok
}

// Record applies one decided game to the named entry and rewrites the file.
func (s *FileStore) Record(_ context.Context, name string, winner game.Outcome, botMark game.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[name]
	e.record(winner, botMark)
	s.entries[name] = e

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory map: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write memory file: %w", err)
	}
	return nil
}
