// Package persist stores the durable slice of session state as a JSON
// snapshot on disk. Only projects and the user profile are persisted; live
// chat, the working file set, selection, and the in-flight flag are
// rebuilt fresh each session.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/codelovable/codelovable/internal/model"
)

const snapshotName = "state.v1.json"

// persistedState is the on-disk shape. Concurrent writers resolve
// last-writer-wins at whole-snapshot granularity.
type persistedState struct {
	Version  int                `json:"version"`
	Projects []model.Project    `json:"projects"`
	User     *model.UserProfile `json:"user,omitempty"`
}

// Snapshot owns the snapshot file under <workspace>/.codelovable/.
type Snapshot struct {
	mu        sync.RWMutex
	statePath string
	lockPath  string
}

// NewSnapshot prepares the snapshot directory for a workspace.
func NewSnapshot(workspace string) *Snapshot {
	root := filepath.Join(filepath.Clean(workspace), ".codelovable")
	_ = os.MkdirAll(root, 0o755)
	return &Snapshot{
		statePath: filepath.Join(root, snapshotName),
		lockPath:  filepath.Join(root, "state.lock"),
	}
}

// Path returns the snapshot file location.
func (s *Snapshot) Path() string { return s.statePath }

// withLock executes fn while holding an exclusive flock on lockPath.
func (s *Snapshot) withLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := flockFile(f); err != nil {
		return errors.New("snapshot is locked by another process")
	}
	defer func() { _ = unlockFile(f) }()
	return fn()
}

// Load reads the snapshot. A missing or empty file yields an empty state; a
// corrupt file is an error so callers can decide whether to overwrite it.
func (s *Snapshot) Load() ([]model.Project, *model.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, nil
	}

	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, nil, fmt.Errorf("snapshot is corrupt: %w", err)
	}
	return st.Projects, st.User, nil
}

// Save writes the snapshot atomically via a temp file and rename, so readers
// never observe a partial write.
func (s *Snapshot) Save(projects []model.Project, user *model.UserProfile) error {
	st := persistedState{Version: 1, Projects: projects, User: user}
	if st.Projects == nil {
		st.Projects = []model.Project{}
	}

	return s.withLock(func() error {
		tmp := s.statePath + ".tmp"
		f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return err
		}
		if err := f.Sync(); err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return err
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(tmp)
			return err
		}
		return os.Rename(tmp, s.statePath)
	})
}
