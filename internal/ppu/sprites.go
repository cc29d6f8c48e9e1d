package ppu

// evaluateSprites scans primary OAM for sprites intersecting the next
// scanline, per spec.md's "cycles 65..256" window — collapsed here to a
// single cycle-257 pass since the only externally visible effects are
// the eight (or overflow-clamped) secondaryOAM slots and the overflow
// flag, not the cycle-by-cycle comparator sequence.
func (p *PPU) evaluateSprites() {
	height := 8
	if p.sprites8x16 {
		height = 16
	}
	next := p.scanline + 1

	p.spriteCount = 0
	for i := 0; i < 64; i++ {
		y := p.OAM[i*4]
		row := next - int(y) - 1
		if row < 0 || row >= height {
			continue
		}
		if p.spriteCount == 8 {
			// Hardware's overflow flag has a well-known address-increment
			// bug; spec.md accepts the simpler "found a 9th in-range
			// sprite" approximation.
			p.spriteOverflow = true
			continue
		}
		p.secondaryOAM[p.spriteCount] = spriteSlot{
			y:      y,
			tile:   p.OAM[i*4+1],
			attr:   p.OAM[i*4+2],
			x:      p.OAM[i*4+3],
			isZero: i == 0,
		}
		p.spriteCount++
	}
}

// fetchSprites loads the pattern bytes for every slot evaluateSprites
// collected, accounting for 8x8 vs 8x16 and vertical flip.
func (p *PPU) fetchSprites() {
	if p.cycle != 320 {
		return
	}
	next := p.scanline + 1
	for i := 0; i < p.spriteCount; i++ {
		slot := p.secondaryOAM[i]
		row := next - int(slot.y) - 1
		flipV := slot.attr&0x80 != 0

		var base uint16
		var tile uint8
		var fineRow int
		if p.sprites8x16 {
			tile = slot.tile &^ 1
			base = 0x1000
			if slot.tile&1 != 0 {
				base = 0x0000
			}
			fineRow = row
			if flipV {
				fineRow = 15 - row
			}
			if fineRow >= 8 {
				tile++
				fineRow -= 8
			}
		} else {
			tile = slot.tile
			base = 0x0000
			if p.spritePage8000 {
				base = 0x1000
			}
			fineRow = row
			if flipV {
				fineRow = 7 - row
			}
		}

		addr := base + uint16(tile)*16 + uint16(fineRow)
		p.spritePatA[i] = p.Bus.Read(addr)
		p.spritePatB[i] = p.Bus.Read(addr + 8)
	}
	for i := p.spriteCount; i < 8; i++ {
		p.spritePatA[i] = 0
		p.spritePatB[i] = 0
	}
}
