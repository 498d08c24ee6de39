// Package runlog writes the plain-text record of a passed scenario.
package runlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StatusPassed is the only status written; failed runs leave no log file
const StatusPassed = "PASSED"

// Entry is one scenario outcome
type Entry struct {
	Time         time.Time
	Scenario     string
	EvidencePath string
	Status       string
}

// Format renders the entry as the run log body
func (e Entry) Format() string {
	status := e.Status
	if status == "" {
		status = StatusPassed
	}

	var b strings.Builder
	b.WriteString("✅ TESTE EXECUTADO COM SUCESSO!\n")
	fmt.Fprintf(&b, "Data/Hora: %s\n", e.Time.Format("02/01/2006, 15:04:05"))
	fmt.Fprintf(&b, "Teste: %s\n", e.Scenario)
	fmt.Fprintf(&b, "Evidência capturada: %s\n", e.EvidencePath)
	fmt.Fprintf(&b, "Status: %s\n", status)
	return b.String()
}

// Writer creates one test-log-<epoch-millis>.txt file per entry
type Writer struct {
	dir    string
	now    func() time.Time
	create func(path string) (logFile, error)
}

type logFile interface {
	WriteString(s string) (int, error)
	Close() error
}

// NewWriter creates a writer rooted at dir
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now, create: createExclusive}
}

func createExclusive(path string) (logFile, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
}

// FileName returns the log file name for t
func FileName(t time.Time) string {
	return fmt.Sprintf("test-log-%d.txt", t.UnixMilli())
}

// Write stores the entry in a new file and returns its absolute path.
// A zero entry Time is stamped with the current time.
func (w *Writer) Write(entry Entry) (string, error) {
	if entry.Time.IsZero() {
		entry.Time = w.now()
	}

	dir, err := filepath.Abs(w.dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve log directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	t := w.now()
	for i := 0; i < 1000; i++ {
		path := filepath.Join(dir, FileName(t))
		f, err := w.create(path)
		if errors.Is(err, os.ErrExist) {
			t = t.Add(time.Millisecond)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create log file: %w", err)
		}

		_, writeErr := f.WriteString(entry.Format())
		closeErr := f.Close()
		if writeErr != nil {
			os.Remove(path)
			return "", fmt.Errorf("failed to write log file: %w", writeErr)
		}
		if closeErr != nil {
			os.Remove(path)
			return "", fmt.Errorf("failed to close log file: %w", closeErr)
		}
		return path, nil
	}

	return "", fmt.Errorf("failed to create log file: too many collisions")
}
