// Package evidence persists screenshots that document a scenario's final state.
package evidence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidLabel is returned for labels that are empty or contain path separators
var ErrInvalidLabel = errors.New("evidence label must be a non-empty file name")

// Store writes screenshots as <dir>/<label>-<timestamp>.png.
// Files are never overwritten.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir; relative dirs resolve against the working directory
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the absolute evidence directory
func (s *Store) Dir() (string, error) {
	return filepath.Abs(s.dir)
}

// FileName returns the evidence file name for label at t, using the UTC
// ISO-8601 timestamp with ':' and '.' replaced by '-'
func FileName(label string, t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return fmt.Sprintf("%s-%s.png", label, stamp)
}

// ValidLabel checks that label can be used as an evidence file name prefix
func ValidLabel(label string) error {
	if label == "" || strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return nil
}

// Capture reserves a fresh path for label, lets shoot write the image there
// and returns the path. The reservation is removed when shoot fails.
func (s *Store) Capture(label string, shoot func(path string) error) (string, error) {
	if err := ValidLabel(label); err != nil {
		return "", err
	}

	dir, err := s.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve evidence directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create evidence directory: %w", err)
	}

	path, err := s.reserve(dir, label)
	if err != nil {
		return "", err
	}

	if err := shoot(path); err != nil {
		os.Remove(path)
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("evidence %s missing after capture: %w", path, err)
	}
	if info.Size() == 0 {
		os.Remove(path)
		return "", fmt.Errorf("evidence %s is empty after capture", path)
	}

	return path, nil
}

// reserve creates an empty file under a name nobody else holds, moving the
// timestamp forward one millisecond per collision
func (s *Store) reserve(dir, label string) (string, error) {
	t := s.now()
	for i := 0; i < 1000; i++ {
		path := filepath.Join(dir, FileName(label, t))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			f.Close()
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("failed to reserve evidence file: %w", err)
		}
		t = t.Add(time.Millisecond)
	}
	return "", fmt.Errorf("failed to reserve evidence file for %q: too many collisions", label)
}
