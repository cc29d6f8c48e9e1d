package mapper

import (
	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/region"
)

// NROM is mapper 0: no bank switching. PRG ROM is 16 or 32 KiB, mirrored
// to fill the 32 KiB CPU window when 16 KiB; CHR is 8 KiB ROM or RAM;
// nametable mirroring is whatever the cartridge declares, including
// single-screen and four-screen (vpnes's nrom.hpp wires all five tags,
// not just horizontal/vertical).
type NROM struct {
	cart       *cartridge.Cartridge
	nametables []byte
}

func newNROM(cart *cartridge.Cartridge, regs *region.Registry) *NROM {
	size := 0x0800
	if cart.Mirror == cartridge.MirrorFourScreen {
		size = 0x1000
	}
	m := &NROM{cart: cart, nametables: make([]byte, size)}

	prgRAMPersist := region.Dynamic
	if cart.HasBattery {
		prgRAMPersist = region.Battery
	}
	regs.Register("mapper.nrom.prgram", cart.PRGRAM, prgRAMPersist)
	regs.Register("mapper.nrom.nametables", m.nametables, region.Dynamic)
	if cart.CHRRAM {
		regs.Register("mapper.nrom.chrram", cart.CHRROM, region.Dynamic)
	}
	return m
}

// InstallCPU wires the PRG RAM window and the one or two PRG ROM windows.
// NROM never reacts to writes in 0x8000-0xFFFF; they land on the default
// ReadOnly dummy sink installed here.
func (m *NROM) InstallCPU(cpuBus *bus.Bus) {
	cpuBus.Install(0x6000, 0x2000, bus.ReadWrite, m.cart.PRGRAM, len(m.cart.PRGRAM))

	prg := m.cart.PRGROM
	if len(prg) <= 0x4000 {
		cpuBus.Install(0x8000, 0x4000, bus.ReadOnly, prg, len(prg))
		cpuBus.Install(0xC000, 0x4000, bus.ReadOnly, prg, len(prg))
	} else {
		cpuBus.Install(0x8000, 0x8000, bus.ReadOnly, prg, len(prg))
	}
}

// InstallPPU wires the CHR window and the four 1 KiB nametable windows
// (plus their 0x3000-0x3EFF mirror), choosing each window's backing page
// from the cartridge's physical nametable pages according to Mirror.
func (m *NROM) InstallPPU(ppuBus *bus.Bus) {
	chrKind := bus.ReadOnly
	if m.cart.CHRRAM {
		chrKind = bus.ReadWrite
	}
	ppuBus.Install(0x0000, 0x2000, chrKind, m.cart.CHRROM, len(m.cart.CHRROM))

	page := func(i int) []byte { return m.nametables[i*0x400 : i*0x400+0x400] }

	var slots [4][]byte
	switch m.cart.Mirror {
	case cartridge.MirrorHorizontal: // AABB
		slots = [4][]byte{page(0), page(0), page(1), page(1)}
	case cartridge.MirrorVertical: // ABAB
		slots = [4][]byte{page(0), page(1), page(0), page(1)}
	case cartridge.MirrorSingleScreenA:
		slots = [4][]byte{page(0), page(0), page(0), page(0)}
	case cartridge.MirrorSingleScreenB:
		slots = [4][]byte{page(1), page(1), page(1), page(1)}
	case cartridge.MirrorFourScreen:
		slots = [4][]byte{page(0), page(1), page(2), page(3)}
	default:
		slots = [4][]byte{page(0), page(0), page(1), page(1)}
	}

	for i, backing := range slots {
		base := 0x2000 + i*0x400
		ppuBus.Install(base, 0x400, bus.ReadWrite, backing, 0x400)
	}
	for i, backing := range slots {
		base := 0x3000 + i*0x400
		length := 0x400
		if base+length > 0x3F00 {
			length = 0x3F00 - base
		}
		if length <= 0 {
			break
		}
		ppuBus.Install(base, length, bus.ReadWrite, backing, 0x400)
	}
}
