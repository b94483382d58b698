// Package logbuf buffers log output while a full-screen TUI owns the
// terminal, so log lines can be replayed to the console after it exits.
package logbuf

import (
	"io"
	"sync"
)

// DeferredWriter is an io.Writer that accumulates writes in memory until
// Flush replays them to a real writer.
//
// Each Write is kept as its own record because downstream writers (e.g.
// zerolog's ConsoleWriter) parse one event per Write call.
type DeferredWriter struct {
	mu    sync.Mutex
	lines [][]byte
}

// Write buffers p. It never fails.
func (w *DeferredWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	line := make([]byte, len(p))
	copy(line, p)
	w.lines = append(w.lines, line)
	return len(p), nil
}

// Flush replays the buffered writes to out in order and resets the buffer.
func (w *DeferredWriter) Flush(out io.Writer) error {
	w.mu.Lock()
	lines := w.lines
	w.lines = nil
	w.mu.Unlock()

	for _, line := range lines {
		if _, err := out.Write(line); err != nil {
			return err
		}
	}
	return nil
}
