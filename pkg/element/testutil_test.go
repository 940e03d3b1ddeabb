package element

import (
	"bytes"
	"errors"
	"testing"
)

var errSink = errors.New("sink closed")

// limitWriter accepts up to limit bytes and fails every write after that.
type limitWriter struct {
	limit int
	buf   bytes.Buffer
	fails int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.limit {
		w.fails++
		return 0, errSink
	}
	return w.buf.Write(p)
}

func mustRender(t *testing.T, e Element) string {
	t.Helper()

	got, err := String(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}
