// Package ppu implements a per-cycle 2C02 picture processing unit: the
// 341x262 dot grid, loopy's v/t/x/w scrolling registers, the
// background/sprite fetch pipeline, sprite-0 hit, and OAM DMA.
package ppu

import (
	"gones/internal/bus"
	"gones/internal/region"
)

const (
	cyclesPerScanline = 341
	scanlinesPerFrame = 262
	visibleScanlines  = 240
	postRenderLine    = 240
	vblankStartLine   = 241
	preRenderLine     = 261
)

// NMILine is the interface the CPU exposes for edge-triggered NMI
// assertion; satisfied by *cpu.CPU without an import cycle.
type NMILine interface {
	SetNMI(asserted bool)
}

type spriteSlot struct {
	y, tile, attr, x uint8
	isZero           bool
}

// PPU holds the full per-cycle state data model from the spec.
type PPU struct {
	V, T uint16
	X    uint8
	W    bool

	vramIncrement32 bool
	spritePage8000  bool
	bgPage8000      bool
	sprites8x16     bool
	nmiEnable       bool
	grayscale       bool
	clipBGLeft      bool
	clipSpriteLeft  bool
	showBG          bool
	showSprites     bool
	emphasize       uint8 // 3-bit tint selector

	vblank         bool
	sprite0Hit     bool
	spriteOverflow bool

	patternShiftA, patternShiftB uint16
	attrShiftA, attrShiftB       uint8
	attrLatch                    uint8
	tileNT, tileAttr             uint8
	tileLow, tileHigh            uint8

	palette [32]byte
	OAM     [256]byte
	OAMAddr uint8

	secondaryOAM [8]spriteSlot
	spriteCount  int
	spritePatA   [8]uint8
	spritePatB   [8]uint8

	cycle, scanline int
	Clock           int64
	oddFrame        bool

	readBuffer uint8
	regBacking *regs

	Bus *bus.Bus
	NMI NMILine

	FrameBuffer [256 * 240]uint8
	OnFrame     func()

	suppressNMIThisFrame bool
}

// New creates a PPU wired to ppuBus and registers its dynamic state
// (palette, OAM) as save/load regions.
func New(ppuBus *bus.Bus, regs *region.Registry) *PPU {
	p := &PPU{Bus: ppuBus}
	regs.Register("ppu.palette", p.palette[:], region.Dynamic)
	regs.Register("ppu.oam", p.OAM[:], region.Dynamic)
	return p
}

// Reset returns the PPU to its power-up state. RAM-backed regions
// (nametables, CHR RAM) are owned by the mapper and untouched here.
func (p *PPU) Reset() {
	p.V, p.T, p.X, p.W = 0, 0, 0, false
	p.vblank, p.sprite0Hit, p.spriteOverflow = false, false, false
	p.cycle, p.scanline = 0, 0
	p.Clock = 0
	p.oddFrame = false
	p.nmiEnable = false
	p.showBG, p.showSprites = false, false
}

// RunTo advances the PPU one dot at a time until its clock reaches
// target.
func (p *PPU) RunTo(target int64) {
	for p.Clock < target {
		p.step()
	}
}

func (p *PPU) step() {
	visible := p.scanline >= 0 && p.scanline < visibleScanlines
	prerender := p.scanline == preRenderLine

	if visible && p.cycle >= 1 && p.cycle <= 256 {
		p.renderPixel()
	}
	if (visible || prerender) && p.cycle >= 1 && p.cycle <= 336 {
		p.backgroundFetchCycle()
	}
	if visible && p.cycle == 256 {
		p.incrementFineY()
	}
	if (visible || prerender) && p.cycle == 257 {
		p.copyHorizontalBits()
	}
	if prerender && p.cycle >= 280 && p.cycle <= 304 {
		p.copyVerticalBits()
	}
	if visible && p.cycle == 257 {
		p.evaluateSprites()
	}
	if visible && p.cycle >= 257 && p.cycle <= 320 {
		p.fetchSprites()
	}

	if p.scanline == vblankStartLine && p.cycle == 1 {
		if !p.suppressNMIThisFrame {
			p.vblank = true
			if p.nmiEnable && p.NMI != nil {
				p.NMI.SetNMI(true)
				p.NMI.SetNMI(false)
			}
		}
		p.suppressNMIThisFrame = false
	}
	if prerender && p.cycle == 1 {
		p.vblank = false
		p.sprite0Hit = false
		p.spriteOverflow = false
	}

	p.advanceDot()
}

func (p *PPU) advanceDot() {
	p.cycle++
	if p.cycle >= cyclesPerScanline {
		// NTSC odd-frame skip: scanline 261 (pre-render) loses its last
		// idle dot when rendering is on, on odd frames.
		skip := p.scanline == preRenderLine && p.oddFrame && (p.showBG || p.showSprites)
		if skip {
			p.cycle = 1
		} else {
			p.cycle = 0
		}
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
			p.oddFrame = !p.oddFrame
			if p.OnFrame != nil {
				p.OnFrame()
			}
		}
	}
	p.Clock++
}

func (p *PPU) renderingEnabled() bool { return p.showBG || p.showSprites }

// Emphasis returns the current 3-bit tint selector, reported
// out-of-band from FrameBuffer's 6-bit palette indices per the
// pixel-buffer contract in spec.md §6.
func (p *PPU) Emphasis() uint8 { return p.emphasize }

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
