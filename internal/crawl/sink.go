package crawl

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Sink receives each successfully processed record as soon as it is
// ready. Implementations must be safe for concurrent use.
type Sink interface {
	Emit(record any) error
}

// JSONLinesSink appends one JSON object per record to a writer. A
// mutex enforces the single-writer boundary: concurrent workers never
// interleave partial lines, and a killed process leaves only whole
// lines behind.
type JSONLinesSink struct {
	mu   sync.Mutex
	w    io.Writer
	file *os.File
}

// NewJSONLinesSink opens (or creates) path in append mode.
func NewJSONLinesSink(path string) (*JSONLinesSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open sink %s: %w", path, err)
	}
	return &JSONLinesSink{w: f, file: f}, nil
}

// NewWriterSink wraps an arbitrary writer, used in tests.
func NewWriterSink(w io.Writer) *JSONLinesSink {
	return &JSONLinesSink{w: w}
}

// Emit writes the record as one line. The line is marshaled before
// the lock is taken and written with a single Write call.
func (s *JSONLinesSink) Emit(record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	line := append(payload, '\n')
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(line); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Close closes the underlying file when the sink owns one.
func (s *JSONLinesSink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
