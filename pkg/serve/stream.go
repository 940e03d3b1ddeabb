package serve

import (
	"io"
	"net/http"
)

// streamWriter forwards writes and flushes the underlying writer every
// threshold bytes.
type streamWriter struct {
	w         io.Writer
	flusher   http.Flusher
	threshold int
	pending   int
	written   int64
}

func newStreamWriter(w io.Writer, threshold int) *streamWriter {
	flusher, _ := w.(http.Flusher)
	return &streamWriter{w: w, flusher: flusher, threshold: threshold}
}

func (s *streamWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.written += int64(n)
	s.pending += n
	if err != nil {
		return n, err
	}
	if s.threshold > 0 && s.pending >= s.threshold {
		s.flush()
	}
	return n, nil
}

// flush flushes the writer if it supports flushing and has unflushed bytes.
func (s *streamWriter) flush() {
	if s.flusher != nil && s.pending > 0 {
		s.flusher.Flush()
	}
	s.pending = 0
}

// FlushableWriter wraps an io.Writer with a flush counter.
// This is useful for testing streaming behavior without using http.ResponseWriter.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
