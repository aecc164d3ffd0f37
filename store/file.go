package store

import (
	"fmt"
	"os"
	"path/filepath"

	"rpncalc/rpn"
)

// Load reads a state file. A missing, unreadable or malformed file yields the
// default state.
func Load(path string) rpn.State {
	raw, err := os.ReadFile(path)
	if err != nil {
		return rpn.DefaultState()
	}
	return Decode(raw)
}

// Save writes the state atomically: a temp file in the same directory is
// renamed over path.
func Save(path string, st rpn.State) error {
	b, err := Encode(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}
