// Package mapper implements the MMC abstraction: installing a
// cartridge's PRG/CHR/RAM banks onto the CPU and PPU buses, and
// reconfiguring those banks in response to cartridge register writes.
//
// Only NROM (mapper 0) is fully implemented, per spec.md's "one worked
// example suffices" — every other mapper ID is recognized by name and
// rejected with neserr.ErrUnsupportedMapper so the loader's error
// contract stays intact instead of leaving unknown IDs to panic deep in
// bank installation.
package mapper

import (
	"fmt"

	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/neserr"
	"gones/internal/region"
)

// Mapper installs a cartridge's banks onto the CPU and PPU buses and
// owns the cartridge-resident registers that reconfigure them.
type Mapper interface {
	// InstallCPU wires PRG ROM/RAM into cpuBus.
	InstallCPU(cpuBus *bus.Bus)
	// InstallPPU wires CHR ROM/RAM and nametables into ppuBus.
	InstallPPU(ppuBus *bus.Bus)
}

// knownUnsupported names the mapper IDs spec.md calls out as identified
// but not required, so rejection messages are specific rather than a
// bare number.
var knownUnsupported = map[int]string{
	1:  "MMC1",
	2:  "UxROM",
	3:  "CNROM",
	4:  "MMC3",
	7:  "AxROM",
}

// New builds the Mapper for cart, registering its dynamic/battery state
// with regs. Only mapper 0 (NROM) succeeds.
func New(cart *cartridge.Cartridge, regs *region.Registry) (Mapper, error) {
	switch cart.MapperID {
	case 0:
		return newNROM(cart, regs), nil
	default:
		name, known := knownUnsupported[cart.MapperID]
		if known {
			return nil, fmt.Errorf("mapper %d (%s): %w", cart.MapperID, name, neserr.ErrUnsupportedMapper)
		}
		return nil, fmt.Errorf("mapper %d: %w", cart.MapperID, neserr.ErrUnsupportedMapper)
	}
}
