package board

// Debugger is a direct, unhooked accessor over the CPU bus plus
// read/write callback registration, the "direct mode" spec.md §4.1 and
// §6 call for: inspection that never trips a register's side effects.
type Debugger struct {
	board *Board
}

// ReadByte reads addr directly, bypassing PPU/APU register hooks and
// open-bus tracking.
func (d *Debugger) ReadByte(addr uint16) uint8 {
	return d.board.cpuBus.ReadDirect(addr)
}

// WriteByte writes addr directly, bypassing conflict masking and write
// hooks.
func (d *Debugger) WriteByte(addr uint16, value uint8) {
	d.board.cpuBus.WriteDirect(addr, value)
}

// CPUSnapshot is a point-in-time copy of user-visible CPU registers,
// for a debugger UI to render.
type CPUSnapshot struct {
	A, X, Y, S       uint8
	PC               uint16
	N, V, D, I, Z, C bool
	Clock            int64
}

// CPU returns the current register snapshot.
func (d *Debugger) CPU() CPUSnapshot {
	c := d.board.CPU
	return CPUSnapshot{
		A: c.A, X: c.X, Y: c.Y, S: c.S, PC: c.PC,
		N: c.N, V: c.V, D: c.D, I: c.I, Z: c.Z, C: c.C,
		Clock: c.Clock,
	}
}

// AddReadHook registers a non-direct read observer on the CPU bus, for
// watchpoints.
func (d *Debugger) AddReadHook(h func(addr uint16, value uint8, pre bool)) {
	d.board.cpuBus.AddReadHook(h)
}

// AddWriteHook registers a non-direct write observer on the CPU bus,
// for watchpoints.
func (d *Debugger) AddWriteHook(h func(addr uint16, value uint8)) {
	d.board.cpuBus.AddWriteHook(h)
}
