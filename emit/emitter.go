package emit

import (
	"fmt"
	"io"
	"sync"
)

// Emitter is a sink for decoded-record lines, writing to process-wide
// standard output (and, optionally, a secondary log file) at a configured
// verbosity. Only the analyzer goroutine calls Emitter in steady state, so
// writes are not interleaved; the mutex here guards against the rare case
// of a line written from a different goroutine.
type Emitter struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
	log   io.Writer // optional secondary writer, nil if not configured
}

// New constructs an Emitter writing to out at the given level. log may be
// nil.
func New(level Level, out io.Writer, log io.Writer) *Emitter {
	return &Emitter{level: level, out: out, log: log}
}

// Line writes one rendered line tagged at level, suppressing it if level is
// above the emitter's configured verbosity (numerically greater, since
// ERROR < WARN < INFO < DEBUG).
func (e *Emitter) Line(level Level, line string) {
	if level > e.level {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintln(e.out, line)
	if e.log != nil {
		fmt.Fprintln(e.log, line)
	}
}

// Linef formats and writes, as Line does.
func (e *Emitter) Linef(level Level, format string, args ...interface{}) {
	e.Line(level, fmt.Sprintf(format, args...))
}
