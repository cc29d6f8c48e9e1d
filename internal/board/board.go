// Package board implements the scheduler/motherboard: it owns the CPU,
// PPU, APU, mapper and both buses, drives them tick by tick at the
// Timing-selected ratio, delivers frame-render callbacks to the host,
// and exposes the engine capability set (power up, reset, save/load,
// debugger) spec.md §6 calls for.
package board

import (
	"fmt"
	"io"
	"time"

	"gones/internal/apu"
	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/mapper"
	"gones/internal/neserr"
	"gones/internal/ppu"
	"gones/internal/region"
	"gones/internal/tracer"
)

// rebaseThreshold bounds how large the master clock is allowed to grow
// before the board rebases every clock and event back toward zero, per
// spec.md's "resets tick counters back to zero periodically".
const rebaseThreshold = int64(1) << 40

// Host is the subset of frontend.Host the board calls directly; kept
// minimal here to avoid an import cycle, frontend.Host satisfies it.
type Host interface {
	HandleFrameRender(frameTimeSeconds float64)
	HandleVideoFrame(pixels []uint8)
	HandleAudioSample(sample int16)
	PollInput(port int) uint8
	HandleJam(event neserr.JamEvent)
}

// Board is the engine capability set: power_up/turn_off/soft_reset/
// hard_reset/save_state/load_state/debugger.
type Board struct {
	Timing Timing

	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU

	cpuBus *bus.Bus
	ppuBus *bus.Bus

	cart    *cartridge.Cartridge
	mapper  mapper.Mapper
	regs    *region.Registry
	ctrl    *input.Controller
	tracer  *tracer.Tracer

	events eventQueue

	Host Host

	enabled      bool
	ppuAccum     int
	frameSecs    float64
	lastFrameEnd time.Time
}

// New builds a board for cart, wiring CPU/PPU/APU/mapper/input onto
// fresh buses. host receives frame/video callbacks and answers input
// polls; timing selects the NTSC/PAL/Dendy constants.
func New(cart *cartridge.Cartridge, host Host, timing Timing, trace *tracer.Tracer) (*Board, error) {
	regs := region.NewRegistry()
	mm, err := mapper.New(cart, regs)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	if trace == nil {
		trace = tracer.New()
	}

	b := &Board{
		Timing: timing,
		cpuBus: bus.New(0x10000),
		ppuBus: bus.New(0x4000),
		cart:   cart,
		mapper: mm,
		regs:   regs,
		Host:   host,
		tracer: trace,
	}

	mm.InstallCPU(b.cpuBus)
	mm.InstallPPU(b.ppuBus)

	b.CPU = cpu.New(b.cpuBus, regs)
	b.CPU.Jam = func(event neserr.JamEvent) {
		b.tracer.Tracef(tracer.TagCPU, "jam: opcode $%02X at $%04X", event.Opcode, event.PC)
		if b.Host != nil {
			b.Host.HandleJam(event)
		}
	}
	b.PPU = ppu.New(b.ppuBus, regs)
	b.PPU.Install(b.cpuBus)
	b.PPU.NMI = b.CPU
	b.PPU.OnFrame = b.onFrame

	b.ctrl = input.New(func(port int) uint8 {
		if b.Host == nil {
			return 0
		}
		return b.Host.PollInput(port)
	})
	b.APU = apu.New(b.cpuBus, b.PPU, b.ctrl, regs)
	b.APU.IRQ = b.CPU
	b.APU.CPUStall = b.CPU
	b.APU.OnSample = func(sample int16) {
		if b.Host != nil {
			b.Host.HandleAudioSample(sample)
		}
	}

	return b, nil
}

// onFrame fires once per rendered PPU frame. frameSecs is the wall-clock
// time since the previous frame finished, for a host's FPS display; it
// is zero for the very first frame.
func (b *Board) onFrame() {
	now := time.Now()
	if !b.lastFrameEnd.IsZero() {
		b.frameSecs = now.Sub(b.lastFrameEnd).Seconds()
	}
	b.lastFrameEnd = now
	b.tracer.Tracef(tracer.TagBoard, "frame: %.2fms (%.1f fps)", b.frameSecs*1000, safeFPS(b.frameSecs))

	if b.Host != nil {
		b.Host.HandleFrameRender(b.frameSecs)
		b.Host.HandleVideoFrame(b.PPU.FrameBuffer[:])
	}
}

// PowerUp runs the simulation loop until TurnOff clears the enabled
// flag.
func (b *Board) PowerUp() {
	b.enabled = true
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	for b.enabled {
		b.step()
	}
}

// TurnOff clears the enabled flag; a running PowerUp loop returns once
// the in-flight step completes.
func (b *Board) TurnOff() {
	b.enabled = false
}

// RunCycles advances exactly n CPU cycles, for tests and the debugger's
// single-step support.
func (b *Board) RunCycles(n int) {
	for i := 0; i < n; i++ {
		b.step()
	}
}

func (b *Board) step() {
	target := b.CPU.Clock + 1
	b.CPU.RunTo(target)

	b.ppuAccum += b.Timing.PPUNum
	for b.ppuAccum >= b.Timing.PPUDen {
		b.PPU.RunTo(b.PPU.Clock + 1)
		b.ppuAccum -= b.Timing.PPUDen
	}
	b.APU.RunTo(b.CPU.Clock)

	b.fireDue(b.CPU.Clock)
	if b.CPU.Clock > rebaseThreshold {
		b.rebase(rebaseThreshold)
	}
}

// rebase subtracts delta from every clocked device and every queued
// event in one operation, so relative ordering is preserved exactly.
func (b *Board) rebase(delta int64) {
	b.CPU.Clock -= delta
	b.PPU.Clock -= delta
	b.APU.Clock -= delta
	b.rebaseEvents(delta)
}

// SoftReset re-enters the CPU reset sequence without touching RAM or
// the PPU/mapper's nametable state.
func (b *Board) SoftReset() {
	b.CPU.Reset()
}

// HardReset tears down and rebuilds CPU/PPU/APU state while preserving
// battery regions: dynamic regions are zeroed, battery regions are
// left untouched.
func (b *Board) HardReset() {
	b.regs.ZeroDynamic()
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
}

// SaveState writes every dynamic and battery region in registration
// order.
func (b *Board) SaveState(w io.Writer) error {
	return b.regs.SaveState(w)
}

// LoadState restores every dynamic and battery region from r.
func (b *Board) LoadState(r io.Reader) error {
	return b.regs.LoadState(r)
}

// SaveBattery persists only battery-backed regions, for clean shutdown
// of a cartridge that declared one.
func (b *Board) SaveBattery(w io.Writer) error {
	return b.regs.SaveBattery(w)
}

// LoadBattery restores only battery-backed regions, called once at
// startup if a save file exists; a missing or unreadable file is
// non-fatal per spec.md §7.
func (b *Board) LoadBattery(r io.Reader) error {
	return b.regs.LoadBattery(r)
}

// HasBattery reports whether the loaded cartridge declared battery-
// backed PRG RAM.
func (b *Board) HasBattery() bool {
	return b.cart.HasBattery
}

// Debugger returns a direct, unhooked accessor over the CPU bus.
func (b *Board) Debugger() *Debugger {
	return &Debugger{board: b}
}

// Jammed reports whether the CPU hit an opcode it does not implement.
func (b *Board) Jammed() bool {
	return b.CPU.Jammed()
}

// safeFPS avoids a division by zero for the very first frame, whose
// frameSecs is zero because there was no prior frame to measure against.
func safeFPS(frameSecs float64) float64 {
	if frameSecs <= 0 {
		return 0
	}
	return 1 / frameSecs
}
