package auditlog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"ticket-classifier-go/internal/types"
)

// Writer appends one JSON object per line to the audit log. Appends are
// serialized through a mutex and written in a single Write call so concurrent
// classifications never interleave records. Records are never mutated or
// deleted.
type Writer struct {
	mu sync.Mutex
	f  *os.File
}

func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &Writer{f: f}, nil
}

func (w *Writer) Append(rec types.LogRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	data = append(data, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.f.Write(data); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
