// Package store persists the whole application state as a single JSON
// document on disk, the closest analog to the browser's local storage.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

// Store reads and writes one JSON blob at a fixed path.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load returns the raw decoded document, or (nil, nil) when nothing has been
// stored yet. An unreadable or unparseable file is an error: silently
// replacing a corrupt blob with defaults would lose data on the next save.
func (s *Store) Load(_ context.Context) (any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding state file %s: %w", s.path, err)
	}

	return raw, nil
}

// Save serializes st pretty-printed and replaces the blob atomically via a
// temp file and rename, so a crash mid-write cannot corrupt the document.
func (s *Store) Save(_ context.Context, st *state.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fatura-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("writing state: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing state file: %w", err)
	}

	return nil
}
