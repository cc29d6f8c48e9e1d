// Package apu implements the audio-processing-unit IRQ stub spec.md
// §4.6 calls for: the $4000-$4017 CPU bus window, the frame-counter IRQ
// contract, the $4014 OAM DMA relay, and the $4016/$4017 controller
// shift registers. Sample synthesis itself is out of scope and
// delegated to the host via OnSample.
package apu

import (
	"gones/internal/bus"
	"gones/internal/input"
	"gones/internal/ppu"
	"gones/internal/region"
)

const regWindowStart = 0x4000
const regWindowLength = 0x18 // 0x4000-0x4017

// frameCounterPeriod is the NTSC 4-step frame-counter period in CPU
// cycles (≈29830, per spec.md §4.6).
const frameCounterPeriod = 29830

// IRQLine is the interface the CPU exposes for level-triggered IRQ
// assertion.
type IRQLine interface {
	SetIRQ(asserted bool)
}

// Staller lets the APU stall the CPU for OAM DMA.
type Staller interface {
	Stall(cycles int)
}

// APU owns the frame-counter IRQ, the OAM DMA relay, and the
// controller ports. Sound synthesis is not modeled; OnSample exists so
// a future mixer has somewhere to attach.
type APU struct {
	cells [regWindowLength]byte

	frameMode4Step  bool
	frameIRQInhibit bool
	frameIRQFlag    bool
	frameCounter    int

	Clock int64

	Controllers *input.Controller
	PPU         *ppu.PPU
	CPUBus      *bus.Bus
	IRQ         IRQLine
	CPUStall    Staller

	OnSample func(s int16)
}

// New creates an APU wired to cpuBus, registering the register window
// bytes (the last value written to each register, including $4017's
// mode/inhibit bits) as dynamic state. Loading that region does not
// update the frame counter's own mode, inhibit and IRQ fields.
func New(cpuBus *bus.Bus, p *ppu.PPU, controllers *input.Controller, regs *region.Registry) *APU {
	a := &APU{PPU: p, CPUBus: cpuBus, Controllers: controllers}
	cpuBus.Install(regWindowStart, regWindowLength, bus.ReadWrite, a.cells[:], regWindowLength)
	cpuBus.AddWriteHook(a.onWrite)
	cpuBus.AddReadHook(a.onRead)
	regs.Register("apu.frame", a.cells[:], region.Dynamic)
	return a
}

func (a *APU) Reset() {
	a.frameCounter = 0
	a.frameMode4Step = true
	a.frameIRQInhibit = false
	a.frameIRQFlag = false
}

// RunTo advances the frame counter to target CPU cycle count, raising
// IRQ when the 4-step sequence's final step fires and IRQ is not
// inhibited.
func (a *APU) RunTo(target int64) {
	for a.Clock < target {
		a.Clock++
		a.frameCounter++
		if a.frameCounter >= frameCounterPeriod {
			a.frameCounter = 0
			if a.frameMode4Step && !a.frameIRQInhibit {
				a.frameIRQFlag = true
				if a.IRQ != nil {
					a.IRQ.SetIRQ(true)
				}
			}
		}
	}
}

func (a *APU) onWrite(addr uint16, value uint8) {
	switch addr {
	case 0x4014:
		if a.PPU == nil || a.CPUBus == nil {
			return
		}
		odd := a.Clock%2 != 0
		stall := a.PPU.StartOAMDMA(a.CPUBus, value, odd)
		if a.CPUStall != nil {
			a.CPUStall.Stall(stall)
		}
	case 0x4016:
		if a.Controllers != nil {
			a.Controllers.Write(value)
		}
	case 0x4017:
		a.frameMode4Step = value&0x80 == 0
		a.frameIRQInhibit = value&0x40 != 0
		if a.frameIRQInhibit {
			a.frameIRQFlag = false
			if a.IRQ != nil {
				a.IRQ.SetIRQ(false)
			}
		}
	}
}

func (a *APU) onRead(addr uint16, _ uint8, pre bool) {
	if !pre {
		return
	}
	switch addr {
	case 0x4015:
		status := uint8(0)
		if a.frameIRQFlag {
			status |= 0x40
		}
		a.cells[addr-regWindowStart] = status
		a.frameIRQFlag = false
		if a.IRQ != nil {
			a.IRQ.SetIRQ(false)
		}
	case 0x4016:
		if a.Controllers != nil {
			a.cells[addr-regWindowStart] = 0x40 | a.Controllers.Read(0)
		}
	case 0x4017:
		if a.Controllers != nil {
			a.cells[addr-regWindowStart] = 0x40 | a.Controllers.Read(1)
		}
	}
}
