// Package neserr defines the host-boundary error kinds for the emulator.
//
// Every operation the host calls on the engine either succeeds or fails
// with one of these wrapped sentinel errors, per the error-handling
// design: internal operations never throw their own ad hoc error types.
package neserr

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("...: %w", ErrX) to attach
// detail while keeping errors.Is(err, ErrX) working at the host boundary.
var (
	// ErrInvalidROM covers a bad iNES signature, an unsupported header
	// version (iNES 2.0), or truncated ROM data.
	ErrInvalidROM = errors.New("nes: invalid rom")

	// ErrUnsupportedMapper is returned when a cartridge names a mapper
	// number this core does not implement.
	ErrUnsupportedMapper = errors.New("nes: unsupported mapper")

	// ErrIO covers read/write failures against host-provided streams
	// (ROM files, save-state writers/readers, battery files).
	ErrIO = errors.New("nes: i/o failure")
)

// JamEvent describes a CPU jam: the interpreter fetched an opcode it
// cannot execute (an illegal opcode outside the documented set this core
// implements). This is not an error — per the error-handling design it is
// a surfaced event delivered through a callback, and the CPU suspends
// rather than panicking. The host may display a notice and keep polling
// for a reset.
type JamEvent struct {
	PC     uint16
	Opcode uint8
}
