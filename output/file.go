package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/c360studio/cxrdf/export"
)

// WriterSink serializes every result to one writer, such as stdout.
type WriterSink struct {
	w      io.Writer
	format export.Format
	mu     sync.Mutex
}

// NewWriterSink creates a sink writing format to w.
func NewWriterSink(w io.Writer, format export.Format) *WriterSink {
	return &WriterSink{w: w, format: format}
}

// Write implements Sink. Each result is serialized completely before it
// reaches the writer so concurrent exports do not interleave.
func (s *WriterSink) Write(_ context.Context, r Result) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, r.Graph, s.format); err != nil {
		return fmt.Errorf("serialize %s: %w", r.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(buf.Bytes())
	return err
}

// Close implements Sink. The writer is owned by the caller.
func (s *WriterSink) Close() error {
	return nil
}

// FileSink writes each result to <dir>/<name><ext>, the extension following
// the format. Slashes in a name become subdirectories.
type FileSink struct {
	dir    string
	format export.Format
	ext    string

	written atomic.Int64
}

// NewFileSink creates dir if needed and returns a sink writing into it.
func NewFileSink(dir string, format export.Format) (*FileSink, error) {
	info, ok := export.GetFormatInfo(format)
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &FileSink{dir: dir, format: format, ext: info.Extension}, nil
}

// Path returns the file a result named name is written to.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.dir, filepath.FromSlash(name)+s.ext)
}

// Write implements Sink.
func (s *FileSink) Write(_ context.Context, r Result) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, r.Graph, s.format); err != nil {
		return fmt.Errorf("serialize %s: %w", r.Name, err)
	}
	path := s.Path(r.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", r.Name, err)
	}
	s.written.Add(1)
	return nil
}

// Written returns the number of files written.
func (s *FileSink) Written() int64 {
	return s.written.Load()
}

// Close implements Sink.
func (s *FileSink) Close() error {
	return nil
}
