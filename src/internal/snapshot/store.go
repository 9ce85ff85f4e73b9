// FILE: tracekit/src/internal/snapshot/store.go
package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lixenwraith/log"

	"tracekit/src/internal/core"
)

// ErrDecode marks a snapshot file that exists but does not hold a valid
// entry array. Callers distinguish it from I/O failures with errors.Is.
var ErrDecode = errors.New("snapshot decode failed")

// Store persists the retained history as a single JSON snapshot file.
// Writes are atomic: the snapshot on disk is always either the previous
// complete document or the new complete document, never a partial write.
type Store struct {
	path   string
	logger *log.Logger
}

// New creates a store writing to path. The parent directory is created
// on first persist.
func New(path string, logger *log.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// Persist replaces the snapshot with the given entries. An empty slice is
// a no-op; the existing snapshot, if any, is left untouched.
func (s *Store) Persist(entries []core.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	// Stage in the same directory so the rename cannot cross filesystems.
	tmp := s.path + ".tmp"
	if err := writeFileSync(tmp, data); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit snapshot: %w", err)
	}

	s.logger.Debug("msg", "Snapshot persisted",
		"component", "snapshot",
		"path", s.path,
		"entries", len(entries))

	return nil
}

// Recover loads the persisted entries. A missing snapshot returns nil
// entries and nil error; a present but malformed snapshot returns an
// error wrapping ErrDecode.
func (s *Store) Recover() ([]core.LogEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	entries, err := decodeEntries(data)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	s.logger.Debug("msg", "Snapshot recovered",
		"component", "snapshot",
		"path", s.path,
		"entries", len(entries))

	return entries, nil
}

// Clear removes the snapshot file. A snapshot that does not exist is not
// an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
