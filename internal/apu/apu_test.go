package apu

import (
	"testing"

	"gones/internal/bus"
	"gones/internal/input"
	"gones/internal/ppu"
	"gones/internal/region"
)

type fakeIRQ struct {
	asserted bool
}

func (f *fakeIRQ) SetIRQ(asserted bool) { f.asserted = asserted }

type fakeStaller struct {
	cycles int
}

func (f *fakeStaller) Stall(cycles int) { f.cycles = cycles }

func newTestAPU(t *testing.T) (*APU, *bus.Bus, *fakeIRQ) {
	t.Helper()
	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	p := ppu.New(ppuBus, region.NewRegistry())
	p.Install(cpuBus)
	ctrl := input.New(func(int) uint8 { return 0 })
	a := New(cpuBus, p, ctrl, region.NewRegistry())
	irq := &fakeIRQ{}
	a.IRQ = irq
	return a, cpuBus, irq
}

func TestFrameCounterIRQ_FiresAt4StepPeriod(t *testing.T) {
	a, _, irq := newTestAPU(t)
	a.Reset()

	a.RunTo(frameCounterPeriod - 1)
	if irq.asserted {
		t.Error("IRQ fired before the frame-counter period elapsed")
	}
	a.RunTo(frameCounterPeriod)
	if !irq.asserted {
		t.Error("IRQ should fire once the 4-step frame-counter period elapses")
	}
}

func TestFrameCounterIRQ_InhibitedByWriteBit(t *testing.T) {
	a, cpuBus, irq := newTestAPU(t)
	a.Reset()
	cpuBus.Write(0x4017, 0x40) // inhibit bit

	a.RunTo(frameCounterPeriod)
	if irq.asserted {
		t.Error("IRQ should not fire while the inhibit bit is set")
	}
}

func TestFrameCounterIRQ_5StepModeNeverFires(t *testing.T) {
	a, cpuBus, irq := newTestAPU(t)
	a.Reset()
	cpuBus.Write(0x4017, 0x80) // mode bit selects 5-step sequence

	a.RunTo(frameCounterPeriod * 2)
	if irq.asserted {
		t.Error("the 5-step sequence should never assert the frame IRQ")
	}
}

func TestStatusRead_ClearsIRQFlag(t *testing.T) {
	a, cpuBus, irq := newTestAPU(t)
	a.Reset()
	a.RunTo(frameCounterPeriod)
	if !irq.asserted {
		t.Fatal("setup: IRQ should be asserted before the status read")
	}

	status := cpuBus.Read(0x4015)
	if status&0x40 == 0 {
		t.Error("$4015 read should report the frame IRQ flag was set")
	}
	if irq.asserted {
		t.Error("reading $4015 should deassert the IRQ line")
	}
}

func TestOAMDMA_RelayStallsAndTriggersCopy(t *testing.T) {
	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	p := ppu.New(ppuBus, region.NewRegistry())
	p.Install(cpuBus)
	page := make([]byte, 0x100)
	page[5] = 0xAB
	cpuBus.Install(0x0200, 0x100, bus.ReadWrite, page, 0x100)

	ctrl := input.New(func(int) uint8 { return 0 })
	a := New(cpuBus, p, ctrl, region.NewRegistry())
	staller := &fakeStaller{}
	a.CPUStall = staller

	cpuBus.Write(0x4014, 0x02)

	if staller.cycles != 513 && staller.cycles != 514 {
		t.Errorf("OAM DMA stall = %d, want 513 or 514", staller.cycles)
	}
	if p.OAM[5] != 0xAB {
		t.Errorf("OAM[5] after DMA = 0x%02X, want 0xAB", p.OAM[5])
	}
}

func TestControllerStrobe_RelayedThroughBus(t *testing.T) {
	polled := false
	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	p := ppu.New(ppuBus, region.NewRegistry())
	p.Install(cpuBus)
	ctrl := input.New(func(int) uint8 { polled = true; return uint8(input.A) })
	_ = New(cpuBus, p, ctrl, region.NewRegistry())

	cpuBus.Write(0x4016, 0x01)
	cpuBus.Write(0x4016, 0x00)
	if !polled {
		t.Fatal("strobing $4016 should poll the host through input.Controller")
	}

	got := cpuBus.Read(0x4016)
	if got&0x01 != 0x01 {
		t.Errorf("$4016 read = 0x%02X, want bit 0 set (A pressed)", got)
	}
}
