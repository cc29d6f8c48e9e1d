package graphics

// masterPalette is the 64-entry NES PPU palette as sRGB 0xRRGGBB, the
// same table the teacher's color pipeline tests assert against.
var masterPalette = [64]uint32{
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0700, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004C18, 0x003E5B, 0x000000, 0x000000, 0x000000,
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0D9300, 0x008C47, 0x007AB8, 0x000000, 0x000000, 0x000000,
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFF6ECC, 0xFF8170, 0xFF9C12,
	0xDAB700, 0x88D300, 0x5AC554, 0x3CC98C, 0x3EC7F4, 0x474747, 0x000000, 0x000000,
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFAC2FF, 0xFFC4EA, 0xFFCCC5, 0xFFD7AA,
	0xE4E594, 0xCFEF96, 0xBDF4AB, 0xB3F3CC, 0xB5EBF2, 0xB8B8B8, 0x000000, 0x000000,
}

// emphasisTint scales r, g, b down for the color channels an emphasis
// bit darkens (real hardware boosts the non-darkened channels; this
// repo approximates it the simpler way, by dimming the others).
func emphasisTint(idx uint8, emphasis uint8) (r, g, b uint8) {
	rgb := masterPalette[idx&0x3F]
	r = uint8(rgb >> 16)
	g = uint8(rgb >> 8)
	b = uint8(rgb)

	const dim = 0.75
	if emphasis&0x01 != 0 { // red emphasis dims green/blue
		g = uint8(float64(g) * dim)
		b = uint8(float64(b) * dim)
	}
	if emphasis&0x02 != 0 { // green emphasis dims red/blue
		r = uint8(float64(r) * dim)
		b = uint8(float64(b) * dim)
	}
	if emphasis&0x04 != 0 { // blue emphasis dims red/green
		r = uint8(float64(r) * dim)
		g = uint8(float64(g) * dim)
	}
	return r, g, b
}
