package board

import (
	"bytes"
	"testing"

	"gones/internal/cartridge"
	"gones/internal/neserr"
	"gones/internal/tracer"
)

type fakeHost struct {
	frames   int
	lastSecs float64
	pixels   []uint8
	samples  int
	pollMask uint8
	jammed   *neserr.JamEvent
}

func (h *fakeHost) HandleFrameRender(frameTimeSeconds float64) {
	h.frames++
	h.lastSecs = frameTimeSeconds
}
func (h *fakeHost) HandleVideoFrame(pixels []uint8) { h.pixels = pixels }
func (h *fakeHost) HandleAudioSample(sample int16)  { h.samples++ }
func (h *fakeHost) PollInput(port int) uint8        { return h.pollMask }
func (h *fakeHost) HandleJam(event neserr.JamEvent) {
	e := event
	h.jammed = &e
}

func newNROMCart(resetVector uint16) *cartridge.Cartridge {
	prg := make([]byte, 0x4000) // one 16 KiB bank, mirrored into both CPU windows
	prg[0x3FFC] = uint8(resetVector)
	prg[0x3FFD] = uint8(resetVector >> 8)
	return &cartridge.Cartridge{
		PRGROM: prg,
		CHRROM: make([]byte, 0x2000),
		CHRRAM: true,
		PRGRAM: make([]byte, 0x2000),
		Mirror: cartridge.MirrorHorizontal,
	}
}

func newTestBoard(t *testing.T) (*Board, *fakeHost) {
	t.Helper()
	host := &fakeHost{}
	b, err := New(newNROMCart(0x8000), host, TimingNTSC, tracer.New())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b, host
}

func TestNew_WiresNMIAndIRQAndFrameCallback(t *testing.T) {
	b, _ := newTestBoard(t)
	if b.PPU.NMI == nil {
		t.Error("PPU.NMI should be wired to the CPU")
	}
	if b.APU.IRQ == nil {
		t.Error("APU.IRQ should be wired to the CPU")
	}
	if b.APU.CPUStall == nil {
		t.Error("APU.CPUStall should be wired to the CPU")
	}
	if b.PPU.OnFrame == nil {
		t.Error("PPU.OnFrame should be wired to onFrame")
	}
}

func TestRunCycles_AdvancesAllClocksInRatio(t *testing.T) {
	b, _ := newTestBoard(t)
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()

	b.RunCycles(100)

	if b.CPU.Clock != 100 {
		t.Errorf("CPU.Clock = %d, want 100", b.CPU.Clock)
	}
	if b.PPU.Clock != 300 {
		t.Errorf("PPU.Clock = %d, want 300 (NTSC 3:1 ratio)", b.PPU.Clock)
	}
	if b.APU.Clock != 100 {
		t.Errorf("APU.Clock = %d, want 100", b.APU.Clock)
	}
}

func TestFrameCallback_DeliversVideoAndTiming(t *testing.T) {
	b, host := newTestBoard(t)
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()

	cyclesPerFrame := 262 * 341 / 3 // one PPU frame at the NTSC 3:1 ratio, in CPU cycles
	b.RunCycles(cyclesPerFrame + 10)

	if host.frames < 1 {
		t.Fatal("expected at least one HandleFrameRender call")
	}
	if host.pixels == nil {
		t.Error("expected HandleVideoFrame to deliver a pixel buffer")
	}
}

func TestSoftReset_PreservesRAMContents(t *testing.T) {
	b, _ := newTestBoard(t)
	b.CPU.Reset()
	b.Debugger().WriteByte(0x0010, 0x42)

	b.SoftReset()

	if got := b.Debugger().ReadByte(0x0010); got != 0x42 {
		t.Errorf("RAM[0x0010] after SoftReset = 0x%02X, want 0x42 (preserved)", got)
	}
	if !b.CPU.I {
		t.Error("I flag should be set after SoftReset re-enters the reset sequence")
	}
}

func TestHardReset_ZeroesDynamicButPreservesBattery(t *testing.T) {
	cart := newNROMCart(0x8000)
	cart.HasBattery = true // PRG RAM becomes a battery region
	b, err := New(cart, &fakeHost{}, TimingNTSC, tracer.New())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.CPU.Reset()
	b.Debugger().WriteByte(0x0010, 0x99) // CPU RAM is a dynamic region
	b.Debugger().WriteByte(0x6000, 0x5A) // PRG RAM

	b.HardReset()

	if got := b.Debugger().ReadByte(0x0010); got != 0x00 {
		t.Errorf("RAM[0x0010] after HardReset = 0x%02X, want 0x00 (dynamic regions zeroed)", got)
	}
	if got := b.Debugger().ReadByte(0x6000); got != 0x5A {
		t.Errorf("PRG RAM[0x6000] after HardReset = 0x%02X, want 0x5A (battery preserved)", got)
	}
}

func TestSaveLoadState_RoundTrip(t *testing.T) {
	b, _ := newTestBoard(t)
	b.CPU.Reset()
	b.Debugger().WriteByte(0x0020, 0x77)

	var buf bytes.Buffer
	if err := b.SaveState(&buf); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	b.Debugger().WriteByte(0x0020, 0x00)

	if err := b.LoadState(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got := b.Debugger().ReadByte(0x0020); got != 0x77 {
		t.Errorf("RAM[0x0020] after LoadState = 0x%02X, want 0x77", got)
	}
}

func TestHasBattery_ReflectsCartridgeFlag(t *testing.T) {
	host := &fakeHost{}
	cart := newNROMCart(0x8000)
	cart.HasBattery = true
	b, err := New(cart, host, TimingNTSC, tracer.New())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !b.HasBattery() {
		t.Error("HasBattery should report true when the cartridge declared one")
	}
}

func TestDebugger_DirectAccessBypassesPPURegisterHooks(t *testing.T) {
	b, _ := newTestBoard(t)
	b.CPU.Reset()

	b.Debugger().WriteByte(0x2000, 0x80)
	if got := b.Debugger().ReadByte(0x2000); got != 0x80 {
		t.Errorf("direct read of PPUCTRL backing cell = 0x%02X, want 0x80 (no side effects)", got)
	}
}

func TestJammed_FalseBeforeAnyJamOpcode(t *testing.T) {
	b, _ := newTestBoard(t)
	b.CPU.Reset()
	b.RunCycles(7)
	if b.Jammed() {
		t.Error("Jammed should be false before an unimplemented opcode executes")
	}
}

func TestJam_SurfacedToHost(t *testing.T) {
	cart := newNROMCart(0x8000)
	cart.PRGROM[0] = 0x02 // unassigned opcode slot, falls back to the jam entry
	host := &fakeHost{}
	b, err := New(cart, host, TimingNTSC, tracer.New())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b.CPU.Reset()
	b.RunCycles(8) // 7 reset cycles + one fetch of the jam opcode

	if !b.Jammed() {
		t.Fatal("board should report jammed after an unimplemented opcode")
	}
	if host.jammed == nil {
		t.Fatal("HandleJam should have been called on the host")
	}
	if host.jammed.Opcode != 0x02 {
		t.Errorf("jammed opcode = 0x%02X, want 0x02", host.jammed.Opcode)
	}
}
