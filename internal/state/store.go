// Package state persists converter state between invocations.
// The snapshot is stored as TOML next to a lock file so concurrent runs
// serialize their read-modify-write cycles.
package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/semmy-space/handy/internal/jsonconv"
	"github.com/semmy-space/handy/internal/lineformat"
	"github.com/semmy-space/handy/internal/timestamp"
	"github.com/semmy-space/handy/internal/urlcodec"
)

const (
	lockTimeout   = 5 * time.Second
	lockRetryWait = 50 * time.Millisecond
)

// Snapshot is everything remembered between runs. Nil tool states have never been used.
type Snapshot struct {
	Active    string            `toml:"active,omitempty"`
	Timestamp *timestamp.State  `toml:"timestamp,omitempty"`
	JSON      *jsonconv.State   `toml:"json,omitempty"`
	URL       *urlcodec.State   `toml:"url,omitempty"`
	Lines     *lineformat.State `toml:"lines,omitempty"`
}

// Seed fills in missing tool states. The timestamp converter starts from now.
func (s *Snapshot) Seed(engine *timestamp.Engine, now time.Time, unit timestamp.Unit) {
	if s.Timestamp == nil {
		s.Timestamp = timestamp.NewState(engine, now, unit)
	}
	if s.JSON == nil {
		s.JSON = jsonconv.NewState()
	}
	if s.URL == nil {
		s.URL = &urlcodec.State{Mode: urlcodec.Decode}
	}
	if s.Lines == nil {
		s.Lines = &lineformat.State{Ending: lineformat.LF}
	}
}

// Store loads and updates snapshots
type Store interface {
	Load() (*Snapshot, error)
	Update(fn func(*Snapshot) error) error
}

// FileStore keeps the snapshot in a TOML file guarded by a file lock
type FileStore struct {
	path     string
	lockPath string
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lockPath: path + ".lock"}
}

// Path returns the snapshot file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot; a missing file yields an empty snapshot
func (s *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	var snap Snapshot
	if err := toml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &snap, nil
}

// Update runs fn on the current snapshot under the file lock and writes the result.
// Nothing is written when fn returns an error.
func (s *FileStore) Update(fn func(*Snapshot) error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lock := flock.New(s.lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, lockRetryWait)
	if err != nil {
		return fmt.Errorf("lock state: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock state: timeout")
	}
	defer lock.Unlock()

	snap, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.write(snap)
}

func (s *FileStore) write(snap *Snapshot) error {
	data, err := toml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// MemoryStore keeps the snapshot for the life of the process
type MemoryStore struct {
	snap Snapshot
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*Snapshot, error) {
	return m.snap.clone(), nil
}

// Update runs fn on a copy. Nothing is kept when fn returns an error.
func (m *MemoryStore) Update(fn func(*Snapshot) error) error {
	snap := m.snap.clone()
	if err := fn(snap); err != nil {
		return err
	}
	m.snap = *snap
	return nil
}

// clone copies the snapshot along with every tool state it points to
func (s *Snapshot) clone() *Snapshot {
	c := *s
	if s.Timestamp != nil {
		ts := *s.Timestamp
		c.Timestamp = &ts
	}
	if s.JSON != nil {
		js := *s.JSON
		c.JSON = &js
	}
	if s.URL != nil {
		u := *s.URL
		c.URL = &u
	}
	if s.Lines != nil {
		l := *s.Lines
		c.Lines = &l
	}
	return &c
}
