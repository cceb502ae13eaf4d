// Package store persists the inventory snapshot as a single JSON document.
// It is the one serialization point for writers: every mutation goes through
// Mutate, which holds an exclusive lock across the read-modify-write cycle,
// so two concurrent reservations can never act on the same stale state.
package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"raffle-tickets/internal/domain/inventory"
	"raffle-tickets/internal/infra"
)

type Store struct {
	mu      sync.RWMutex
	path    string
	logger  *slog.Logger
	current *inventory.Snapshot
}

// New opens or initializes the document at path. A missing or unparseable
// document is replaced by a fresh inventory of defaultCapacity free tickets;
// this is the documented recovery policy for corrupt reads, not applied to
// write failures.
func New(path string, defaultCapacity int, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, infra.WrapStoreErr(logger, infra.KindStorageFailure, "failed to create data directory", err)
	}

	s := &Store{path: path, logger: logger}

	snap, err := s.load()
	if err != nil {
		logger.Warn("initializing fresh inventory document",
			slog.String("path", path),
			slog.Int("capacity", defaultCapacity),
			slog.String("reason", err.Error()))
		snap = inventory.NewSnapshot(defaultCapacity)
		if writeErr := s.write(snap); writeErr != nil {
			return nil, writeErr
		}
	}

	s.current = snap
	return s, nil
}

func (s *Store) load() (*inventory.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var snap inventory.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	snap.Normalize()
	return &snap, nil
}

// Read returns a consistent copy of the current state. It never observes a
// half-applied mutation because the swap under the write lock is atomic.
func (s *Store) Read() *inventory.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Mutate applies fn to a private copy of the state, persists the result, and
// publishes it. If fn returns an error, or the durable write fails, the
// observable state is unchanged. Mutations are fully serialized.
func (s *Store) Mutate(fn func(*inventory.Snapshot) error) (*inventory.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := s.write(next); err != nil {
		return nil, err
	}
	s.current = next
	return next, nil
}

// Replace swaps in an externally supplied snapshot (admin import). The
// caller is responsible for validating it first.
func (s *Store) Replace(snap *inventory.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(snap); err != nil {
		return err
	}
	s.current = snap
	return nil
}

// ExportJSON renders the current document exactly as stored on disk.
func (s *Store) ExportJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return marshalDocument(s.current)
}

// write lands the document via temp-file-then-rename so readers of the file
// itself (backups, the admin download) never see a partial write.
func (s *Store) write(snap *inventory.Snapshot) error {
	data, err := marshalDocument(snap)
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStorageFailure, "failed to encode inventory document", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStorageFailure, "failed to create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return infra.WrapStoreErr(s.logger, infra.KindStorageFailure, "failed to write inventory document", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return infra.WrapStoreErr(s.logger, infra.KindStorageFailure, "failed to sync inventory document", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return infra.WrapStoreErr(s.logger, infra.KindStorageFailure, "failed to close temp file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return infra.WrapStoreErr(s.logger, infra.KindStorageFailure, "failed to replace inventory document", err)
	}
	return nil
}

func marshalDocument(snap *inventory.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}
