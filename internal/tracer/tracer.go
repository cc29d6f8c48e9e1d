// Package tracer provides the bracket-tagged leveled logging used across
// the engine for CPU jams and board frame pacing.
//
// The retrieved example pack never reaches for a structured-logging
// library (no zerolog/zap/logrus anywhere in it); every repo logs with
// "log" or "fmt.Printf" and a bracketed tag like "[BUS_DEBUG]". This
// package keeps that idiom as a small typed wrapper instead of scattering
// raw Printf calls.
package tracer

import (
	"log"
	"os"
)

// Tag identifies the subsystem emitting a trace line.
type Tag string

const (
	TagCPU    Tag = "CPU"
	TagPPU    Tag = "PPU"
	TagMapper Tag = "MAPPER"
	TagBoard  Tag = "BOARD"
	TagInput  Tag = "INPUT"
	TagAPU    Tag = "APU"
)

// Tracer is a leveled logger gated by an enabled flag per instance, so a
// board can run silent in production and verbose under -debug without
// recompiling call sites.
type Tracer struct {
	enabled bool
	logger  *log.Logger
}

// New creates a Tracer writing to stderr, disabled by default.
func New() *Tracer {
	return &Tracer{logger: log.New(os.Stderr, "", log.LstdFlags)}
}

// SetEnabled toggles whether Tracef emits anything.
func (t *Tracer) SetEnabled(enabled bool) {
	t.enabled = enabled
}

// Enabled reports whether tracing is currently on.
func (t *Tracer) Enabled() bool {
	return t.enabled
}

// Tracef logs a formatted line tagged with tag, e.g. "[CPU] jam at $C3F2".
func (t *Tracer) Tracef(tag Tag, format string, args ...any) {
	if !t.enabled {
		return
	}
	t.logger.Printf("["+string(tag)+"] "+format, args...)
}
