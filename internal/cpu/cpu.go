// Package cpu implements a cycle-accurate 6502 interpreter: every bus
// access is its own tick, expressed as a compiled microcode — a flat,
// build-time array of per-cycle closures reached through a 256-entry
// opcode lookup table, so decode is O(1) and the hot path never does
// dynamic dispatch beyond the one slice index it needs.
package cpu

import (
	"gones/internal/bus"
	"gones/internal/neserr"
	"gones/internal/region"
)

const (
	ramSize   = 0x0800
	stackBase = 0x0100
	nmiVector = 0xFFFA
	resetVec  = 0xFFFC
	irqVector = 0xFFFE
)

// CPU holds all registers, buses and work cells from the data model:
// flags are independent booleans (packed only for PHP/PLP/interrupt
// push), AB/DB are the address/data bus latches, Clock is the 64-bit
// tick count the board schedules against.
type CPU struct {
	A, X, Y, S uint8
	PC         uint16

	N, V, D, I, Z, C bool

	AB uint16
	DB uint8

	OP     uint8
	OP16   uint16
	Abs    uint16
	ZP     uint8
	Branch bool // branch-taken flag for the current branch instruction

	Clock   int64
	microIdx int

	nmiPrevious bool
	nmiPending  bool // edge latched, cleared when sampled by a poll
	irqLine     bool // level-triggered IRQ input (OR of all asserting devices)

	pendingInterrupt bool
	pendingIsNMI     bool

	ram [ramSize]byte

	Bus *bus.Bus

	// Jam reports an illegal opcode this core does not implement. The
	// CPU suspends (keeps re-running the jam cycle) until reset.
	Jam func(neserr.JamEvent)
	jammed bool
}

// New creates a CPU wired to cpuBus, with its 2 KiB internal RAM
// installed at 0x0000-0x1FFF (three-way mirrored) and registered as a
// dynamic save/load region.
func New(cpuBus *bus.Bus, regs *region.Registry) *CPU {
	c := &CPU{Bus: cpuBus, S: 0xFD}
	cpuBus.Install(0x0000, 0x2000, bus.ReadWrite, c.ram[:], ramSize)
	regs.Register("cpu.ram", c.ram[:], region.Dynamic)
	ensureMicrocode()
	return c
}

// Reset runs the seven-cycle 6502 reset sequence: dummy reads/pushes
// followed by the vector fetch from 0xFFFC/0xFFFD. Registers take their
// documented power-up values; S ends at 0xFD because the three "pushes"
// during reset are actually reads (the bus is not writable yet), each
// still decrementing S.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.N, c.V, c.D, c.C, c.Z = false, false, false, false, false
	c.I = true
	c.nmiPending = false
	c.pendingInterrupt = false
	c.jammed = false
	c.AB = c.PC
	c.microIdx = resetEntry
}

// RunTo advances the CPU one bus cycle at a time until its internal
// clock reaches target. This is the suspension point: the CPU yields
// back to the scheduler exactly when it has caught up.
func (c *CPU) RunTo(target int64) {
	for c.Clock < target {
		c.stepCycle()
	}
}

func (c *CPU) stepCycle() {
	op := microcode[c.microIdx]

	if op.skip != nil && op.skip(c) {
		c.microIdx++
		return
	}

	if op.poll {
		c.pollInterrupts()
	}

	switch {
	case op.read:
		c.DB = c.Bus.Read(c.AB)
		c.Bus.SetOpenBus(c.DB)
	case op.write:
		c.Bus.Write(c.AB, c.DB)
	}
	c.Clock++

	next := c.microIdx + 1
	if op.exec != nil {
		next = op.exec(c, next)
	}
	c.microIdx = next
}

// pollInterrupts samples the NMI/IRQ lines into pendingInterrupt. NMI is
// edge-triggered (latched by SetNMI on the falling edge) and always
// wins; IRQ is level-triggered and masked by the I flag. Because poll
// always runs before this same cycle's exec, an instruction that is
// itself changing the I flag (SEI/CLI/PLP) is polled against the *old*
// flag value, giving the documented one-instruction interrupt latency.
func (c *CPU) pollInterrupts() {
	if c.nmiPending {
		c.pendingInterrupt = true
		c.pendingIsNMI = true
		c.nmiPending = false
		return
	}
	if c.irqLine && !c.I {
		c.pendingInterrupt = true
		c.pendingIsNMI = false
	}
}

// SetNMI sets the NMI line. NMI triggers on the falling edge
// (previously asserted, now deasserted), matching the PPU raising NMI
// by pulsing the line at v-blank.
func (c *CPU) SetNMI(asserted bool) {
	if c.nmiPrevious && !asserted {
		c.nmiPending = true
	}
	c.nmiPrevious = asserted
}

// SetIRQ sets the level-triggered IRQ line state for one source. Callers
// (APU frame counter, DMC, MMC3 scanline counter) OR their individual
// assertions together before calling this, or call it once per source
// with its own tracked state or-ed externally.
func (c *CPU) SetIRQ(asserted bool) {
	c.irqLine = asserted
}

// GetStatusByte packs the flags into the classic 6502 status byte, with
// the unused bit always set.
func (c *CPU) GetStatusByte(breakBit bool) uint8 {
	var s uint8 = 0x20
	if c.N {
		s |= 0x80
	}
	if c.V {
		s |= 0x40
	}
	if breakBit {
		s |= 0x10
	}
	if c.D {
		s |= 0x08
	}
	if c.I {
		s |= 0x04
	}
	if c.Z {
		s |= 0x02
	}
	if c.C {
		s |= 0x01
	}
	return s
}

// SetStatusByte unpacks a status byte into the individual flags (used by
// PLP and RTI).
func (c *CPU) SetStatusByte(s uint8) {
	c.N = s&0x80 != 0
	c.V = s&0x40 != 0
	c.D = s&0x08 != 0
	c.I = s&0x04 != 0
	c.Z = s&0x02 != 0
	c.C = s&0x01 != 0
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

// Jammed reports whether the CPU hit an unimplemented illegal opcode and
// is suspended awaiting reset.
func (c *CPU) Jammed() bool {
	return c.jammed
}

// Stall advances the clock by cycles without executing any
// instructions, modeling OAM DMA's CPU stall: the bus is idle for the
// duration and resumes exactly where it left off.
func (c *CPU) Stall(cycles int) {
	c.Clock += int64(cycles)
}
