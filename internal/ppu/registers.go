package ppu

import "gones/internal/bus"

const regWindowStart = 0x2000
const regWindowLength = 0x2000 // mirrored every 8 bytes through 0x3FFF

type regs struct {
	cells [8]byte
}

// Install wires the CPU-facing $2000-$3FFF register window and the
// $3F00-$3FFF palette window onto cpuBus/ppuBus respectively. Register
// reads are computed in a pre-dereference hook (writing the answer into
// the backing cell the generic bus machinery is about to dereference),
// since the bus itself has no notion of a "computed" read.
func (p *PPU) Install(cpuBus *bus.Bus) {
	p.regBacking = &regs{}
	cpuBus.Install(regWindowStart, regWindowLength, bus.ReadWrite, p.regBacking.cells[:], 8)
	cpuBus.AddReadHook(func(addr uint16, _ uint8, pre bool) {
		if addr < regWindowStart || addr >= regWindowStart+regWindowLength {
			return
		}
		if !pre {
			return
		}
		p.prepareRegisterRead(addr & 7)
	})
	cpuBus.AddWriteHook(func(addr uint16, value uint8) {
		if addr < regWindowStart || addr >= regWindowStart+regWindowLength {
			return
		}
		p.applyRegisterWrite(addr&7, value)
	})

	p.Bus.Install(0x3F00, 0x100, bus.ReadWrite, p.palette[:], 32)
	p.Bus.AddWriteHook(func(addr uint16, value uint8) {
		if addr < 0x3F00 {
			return
		}
		idx := addr & 0x1F
		if idx&0x13 == 0x10 {
			p.palette[idx&0x0F] = value
		} else {
			p.palette[idx] = value
		}
	})
}

func (p *PPU) paletteRead(idx uint16) uint8 {
	return p.palette[idx&0x1F]
}

func (p *PPU) prepareRegisterRead(reg uint16) {
	switch reg {
	case 2: // PPUSTATUS
		status := uint8(0)
		if p.vblank {
			status |= 0x80
		}
		if p.sprite0Hit {
			status |= 0x40
		}
		if p.spriteOverflow {
			status |= 0x20
		}
		if p.scanline == vblankStartLine && p.cycle == 1 {
			status &^= 0x80
			p.suppressNMIThisFrame = true
		}
		p.vblank = false
		p.W = false
		p.regBacking.cells[2] = status
	case 4: // OAMDATA
		p.regBacking.cells[4] = p.OAM[p.OAMAddr]
	case 7: // PPUDATA
		addr := p.V & 0x3FFF
		var result uint8
		if addr < 0x3F00 {
			result = p.readBuffer
			p.readBuffer = p.Bus.ReadDirect(addr)
		} else {
			result = p.Bus.ReadDirect(addr)
			p.readBuffer = p.Bus.ReadDirect(addr - 0x1000)
		}
		p.regBacking.cells[7] = result
		p.advanceV()
	}
}

func (p *PPU) applyRegisterWrite(reg uint16, value uint8) {
	switch reg {
	case 0: // PPUCTRL
		p.T = p.T&^0x0C00 | (uint16(value)&0x03)<<10
		p.vramIncrement32 = value&0x04 != 0
		p.spritePage8000 = value&0x08 != 0
		p.bgPage8000 = value&0x10 != 0
		p.sprites8x16 = value&0x20 != 0
		nowEnabled := value&0x80 != 0
		if nowEnabled && !p.nmiEnable && p.vblank && p.NMI != nil {
			// Vblank is already latched and unread: enabling NMI now must
			// transfer control at the next instruction boundary rather than
			// wait for the next frame's (241,1) edge.
			p.NMI.SetNMI(true)
			p.NMI.SetNMI(false)
		}
		p.nmiEnable = nowEnabled
	case 1: // PPUMASK
		p.grayscale = value&0x01 != 0
		p.clipBGLeft = value&0x02 == 0
		p.clipSpriteLeft = value&0x04 == 0
		p.showBG = value&0x08 != 0
		p.showSprites = value&0x10 != 0
		p.emphasize = (value >> 5) & 0x07
	case 3: // OAMADDR
		p.OAMAddr = value
	case 4: // OAMDATA
		p.OAM[p.OAMAddr] = value
		p.OAMAddr++
	case 5: // PPUSCROLL
		if !p.W {
			p.X = value & 0x07
			p.T = p.T&^0x001F | uint16(value>>3)
			p.W = true
		} else {
			p.T = p.T&^0x73E0 | (uint16(value)&0x07)<<12 | (uint16(value)>>3)<<5
			p.W = false
		}
	case 6: // PPUADDR
		if !p.W {
			p.T = p.T&^0x7F00 | (uint16(value)&0x3F)<<8
			p.W = true
		} else {
			p.T = p.T&^0x00FF | uint16(value)
			p.V = p.T
			p.W = false
		}
	case 7: // PPUDATA
		p.Bus.Write(p.V&0x3FFF, value)
		p.advanceV()
	}
}

func (p *PPU) advanceV() {
	if p.vramIncrement32 {
		p.V += 32
	} else {
		p.V++
	}
}

// StartOAMDMA performs the 256-byte copy from cpuBus's page into OAM and
// reports the CPU stall length (513 cycles, +1 if the write lands on an
// odd CPU cycle), per spec.md §4.4/§4.6.
func (p *PPU) StartOAMDMA(cpuBus *bus.Bus, page uint8, cpuCycleOdd bool) int {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		p.OAM[(int(p.OAMAddr)+i)&0xFF] = cpuBus.ReadDirect(base + uint16(i))
	}
	if cpuCycleOdd {
		return 514
	}
	return 513
}
