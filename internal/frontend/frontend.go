// Package frontend defines the engine-to-host capability set: the five
// calls the board makes outward (frame timing, pixel buffer, audio
// sample, input poll, jam notification) so a graphics backend can be
// substituted without the board package knowing it exists.
package frontend

import "gones/internal/neserr"

// Host is what a front end must implement to drive a board. The board
// calls these; a Host never calls back into the board from within one
// of these methods (that would re-enter the scheduler mid-step).
type Host interface {
	// HandleFrameRender is invoked once per PPU frame, immediately
	// before HandleVideoFrame is given that frame's pixels.
	HandleFrameRender(frameTimeSeconds float64)
	// HandleVideoFrame receives a tight 256x240 buffer of 6-bit NES
	// palette indices, one byte per pixel.
	HandleVideoFrame(pixels []uint8)
	// HandleAudioSample receives one 44.1kHz mono sample.
	HandleAudioSample(sample int16)
	// PollInput is called when a controller port's shift register is
	// empty and needs reloading; it returns the live 8-bit button mask
	// for that port in the engine's standard bit order.
	PollInput(port int) uint8
	// HandleJam is called once, the moment the CPU executes an
	// unimplemented opcode, surfacing it as a panic-style event instead
	// of leaving a host to discover it by polling Board.Jammed.
	HandleJam(event neserr.JamEvent)
}
