// Package cartridge implements iNES 1.0 ROM loading and the typed
// cartridge record consumed by the mapper factory.
package cartridge

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"gones/internal/neserr"
)

// Mirror is the cartridge's nametable mirroring tag.
type Mirror int

const (
	MirrorHorizontal Mirror = iota
	MirrorVertical
	MirrorSingleScreenA
	MirrorSingleScreenB
	MirrorFourScreen
)

// Region is the NES hardware variant a cartridge targets.
type Region int

const (
	RegionNTSC Region = iota
	RegionPAL
	RegionDendy
)

// trainerSize is the fixed iNES trainer length, preloaded at PRG-RAM
// offset 0x1000 when header flag 6 bit 2 is set.
const trainerSize = 512

// trainerOffset is where the trainer lands in PRG RAM.
const trainerOffset = 0x1000

// Cartridge is the loader's output: everything the mapper factory and
// the board need to stand up a game, per the data model's "Cartridge
// data" definition.
type Cartridge struct {
	PRGROM []byte
	CHRROM []byte // holds the 8 KiB CHR RAM buffer when CHRRAM is set
	CHRRAM bool

	PRGRAM     []byte
	HasBattery bool

	MapperID int
	Mirror   Mirror
	Region   Region
}

type iNESHeader struct {
	Magic      [4]uint8
	PRGROMSize uint8
	CHRROMSize uint8
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	Flags9     uint8
	Flags10    uint8
	Padding    [5]uint8
}

// chrRAMSize is the conventional 8 KiB allocated when a cartridge has no
// CHR ROM at all.
const chrRAMSize = 0x2000

// prgRAMUnit is the 8 KiB unit iNES header byte 8 counts in; zero means
// "assume one 8 KiB bank" for compatibility with pre-PRG-RAM-size carts.
const prgRAMUnit = 0x2000

// Load reads an iNES 1.0 file from path.
func Load(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: open %s: %w", path, neserr.ErrIO)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses an iNES 1.0 image from r.
func LoadReader(r io.Reader) (*Cartridge, error) {
	var header iNESHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("cartridge: read header: %w", neserr.ErrInvalidROM)
	}
	if string(header.Magic[:]) != "NES\x1A" {
		return nil, fmt.Errorf("cartridge: bad signature: %w", neserr.ErrInvalidROM)
	}
	// iNES 2.0 is signalled by bits 2-3 of flags7 == 0b10. Reject rather
	// than misinterpret the header layout as iNES 1.0.
	if header.Flags7&0x0C == 0x08 {
		return nil, fmt.Errorf("cartridge: ines 2.0 not supported: %w", neserr.ErrInvalidROM)
	}
	if header.PRGROMSize == 0 {
		return nil, fmt.Errorf("cartridge: zero PRG ROM size: %w", neserr.ErrInvalidROM)
	}

	cart := &Cartridge{
		MapperID:   int(header.Flags6>>4) | int(header.Flags7&0xF0),
		HasBattery: header.Flags6&0x02 != 0,
	}

	switch {
	case header.Flags6&0x08 != 0:
		cart.Mirror = MirrorFourScreen
	case header.Flags6&0x01 != 0:
		cart.Mirror = MirrorVertical
	default:
		cart.Mirror = MirrorHorizontal
	}

	if header.Flags9&0x01 != 0 {
		cart.Region = RegionPAL
	} else {
		cart.Region = RegionNTSC
	}

	ramSize := prgRAMUnit
	if header.PRGRAMSize != 0 {
		ramSize = int(header.PRGRAMSize) * prgRAMUnit
	}
	cart.PRGRAM = make([]byte, ramSize)

	if header.Flags6&0x04 != 0 {
		trainer := make([]byte, trainerSize)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, fmt.Errorf("cartridge: read trainer: %w", neserr.ErrInvalidROM)
		}
		if trainerOffset+trainerSize <= len(cart.PRGRAM) {
			copy(cart.PRGRAM[trainerOffset:], trainer)
		}
	}

	prgSize := int(header.PRGROMSize) * 0x4000
	cart.PRGROM = make([]byte, prgSize)
	if _, err := io.ReadFull(r, cart.PRGROM); err != nil {
		return nil, fmt.Errorf("cartridge: read PRG ROM: %w", neserr.ErrInvalidROM)
	}

	if header.CHRROMSize == 0 {
		cart.CHRRAM = true
		cart.CHRROM = make([]byte, chrRAMSize)
	} else {
		chrSize := int(header.CHRROMSize) * 0x2000
		cart.CHRROM = make([]byte, chrSize)
		if _, err := io.ReadFull(r, cart.CHRROM); err != nil {
			return nil, fmt.Errorf("cartridge: read CHR ROM: %w", neserr.ErrInvalidROM)
		}
	}

	return cart, nil
}
