package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/prepkit/internal/state"
)

// JSON-backed snapshot of the global stores. Single file, human-readable.
// No locking; one process owns the file at a time.

// File is a state file on disk.
type File struct {
	Path string
}

func New(path string) *File { return &File{Path: path} }

// Load returns an empty snapshot when the file does not exist yet.
func (f *File) Load() (state.Snapshot, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state.Snapshot{}, nil
		}
		return state.Snapshot{}, fmt.Errorf("read file: %w", err)
	}
	var snap state.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return state.Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return snap, nil
}

// Save writes through a temp file so a crash never leaves half a file.
func (f *File) Save(snap state.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prepkit-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// LoadInto restores the store from the file.
func (f *File) LoadInto(s *state.Store) error {
	snap, err := f.Load()
	if err != nil {
		return err
	}
	s.Restore(snap)
	return nil
}

// SaveFrom writes the store when it changed and marks it clean.
func (f *File) SaveFrom(s *state.Store) (bool, error) {
	if !s.Dirty() {
		return false, nil
	}
	if err := f.Save(s.Snapshot()); err != nil {
		return false, err
	}
	s.MarkClean()
	return true, nil
}
