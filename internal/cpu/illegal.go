package cpu

// Undocumented 6502 opcodes. The combo ops (SLO/RLA/SRE/RRA/DCP/ISC) are
// exactly their two documented halves run back to back against the same
// fetched byte; the unstable store ops (SHA/SHX/SHY/TAS) and XAA follow
// the commonly-documented "ANDs with the high byte of the address plus
// one" / "ANDs with an unpredictable constant" behavior and are
// implemented with one fixed, consistently-applied choice rather than
// modeled as truly non-deterministic, per the documented open question.

func slo(c *CPU, value uint8) uint8 {
	result := asl(c, value)
	c.A |= result
	c.setZN(c.A)
	return result
}

func rla(c *CPU, value uint8) uint8 {
	result := rol(c, value)
	c.A &= result
	c.setZN(c.A)
	return result
}

func sre(c *CPU, value uint8) uint8 {
	result := lsr(c, value)
	c.A ^= result
	c.setZN(c.A)
	return result
}

func rra(c *CPU, value uint8) uint8 {
	result := ror(c, value)
	adc(c, result)
	return result
}

func dcp(c *CPU, value uint8) uint8 {
	result := value - 1
	compare(c, c.A, result)
	return result
}

func isc(c *CPU, value uint8) uint8 {
	result := value + 1
	sbc(c, result)
	return result
}

func sax(c *CPU) uint8 { return c.A & c.X }

func lax(c *CPU, value uint8) {
	c.A = value
	c.X = value
	c.setZN(value)
}

func anc(c *CPU, value uint8) {
	c.A &= value
	c.setZN(c.A)
	c.C = c.N
}

func alr(c *CPU, value uint8) {
	c.A &= value
	c.C = c.A&0x01 != 0
	c.A >>= 1
	c.setZN(c.A)
}

func arr(c *CPU, value uint8) {
	c.A &= value
	carryIn := uint8(0)
	if c.C {
		carryIn = 0x80
	}
	c.A = c.A>>1 | carryIn
	c.setZN(c.A)
	c.C = c.A&0x40 != 0
	c.V = ((c.A>>6)^(c.A>>5))&0x01 != 0
}

func xaa(c *CPU, value uint8) {
	c.A = c.X & value
	c.setZN(c.A)
}

func axs(c *CPU, value uint8) {
	base := c.A & c.X
	c.C = base >= value
	c.X = base - value
	c.setZN(c.X)
}

func las(c *CPU, value uint8) {
	result := value & c.S
	c.A = result
	c.X = result
	c.S = result
	c.setZN(result)
}

func highPlusOne(c *CPU) uint8 { return uint8(c.Abs>>8) + 1 }

func sha(c *CPU) uint8 { return c.A & c.X & highPlusOne(c) }
func shx(c *CPU) uint8 { return c.X & highPlusOne(c) }
func shy(c *CPU) uint8 { return c.Y & highPlusOne(c) }
func tas(c *CPU) uint8 {
	c.S = c.A & c.X
	return c.S & highPlusOne(c)
}

func registerIllegalOpcodes() {
	op := func(code int, entry int) { opcodeEntry[code] = entry }

	op(0x07, buildZeroPageRMW(slo))
	op(0x17, buildZeroPageIdxRMW(xIdx, slo))
	op(0x0F, buildAbsoluteRMW(slo))
	op(0x1F, buildAbsoluteIdxRMW(xIdx16, slo))
	op(0x1B, buildAbsoluteIdxRMW(yIdx16, slo))
	op(0x03, buildIndexedIndirectRMW(slo))
	op(0x13, buildIndirectIndexedRMW(slo))

	op(0x27, buildZeroPageRMW(rla))
	op(0x37, buildZeroPageIdxRMW(xIdx, rla))
	op(0x2F, buildAbsoluteRMW(rla))
	op(0x3F, buildAbsoluteIdxRMW(xIdx16, rla))
	op(0x3B, buildAbsoluteIdxRMW(yIdx16, rla))
	op(0x23, buildIndexedIndirectRMW(rla))
	op(0x33, buildIndirectIndexedRMW(rla))

	op(0x47, buildZeroPageRMW(sre))
	op(0x57, buildZeroPageIdxRMW(xIdx, sre))
	op(0x4F, buildAbsoluteRMW(sre))
	op(0x5F, buildAbsoluteIdxRMW(xIdx16, sre))
	op(0x5B, buildAbsoluteIdxRMW(yIdx16, sre))
	op(0x43, buildIndexedIndirectRMW(sre))
	op(0x53, buildIndirectIndexedRMW(sre))

	op(0x67, buildZeroPageRMW(rra))
	op(0x77, buildZeroPageIdxRMW(xIdx, rra))
	op(0x6F, buildAbsoluteRMW(rra))
	op(0x7F, buildAbsoluteIdxRMW(xIdx16, rra))
	op(0x7B, buildAbsoluteIdxRMW(yIdx16, rra))
	op(0x63, buildIndexedIndirectRMW(rra))
	op(0x73, buildIndirectIndexedRMW(rra))

	op(0xC7, buildZeroPageRMW(dcp))
	op(0xD7, buildZeroPageIdxRMW(xIdx, dcp))
	op(0xCF, buildAbsoluteRMW(dcp))
	op(0xDF, buildAbsoluteIdxRMW(xIdx16, dcp))
	op(0xDB, buildAbsoluteIdxRMW(yIdx16, dcp))
	op(0xC3, buildIndexedIndirectRMW(dcp))
	op(0xD3, buildIndirectIndexedRMW(dcp))

	op(0xE7, buildZeroPageRMW(isc))
	op(0xF7, buildZeroPageIdxRMW(xIdx, isc))
	op(0xEF, buildAbsoluteRMW(isc))
	op(0xFF, buildAbsoluteIdxRMW(xIdx16, isc))
	op(0xFB, buildAbsoluteIdxRMW(yIdx16, isc))
	op(0xE3, buildIndexedIndirectRMW(isc))
	op(0xF3, buildIndirectIndexedRMW(isc))

	op(0x87, buildZeroPageWrite(sax))
	op(0x97, buildZeroPageIdxWrite(yIdx, sax))
	op(0x8F, buildAbsoluteWrite(sax))
	op(0x83, buildIndexedIndirectWrite(sax))

	op(0xA7, buildZeroPageRead(lax))
	op(0xB7, buildZeroPageIdxRead(yIdx, lax))
	op(0xAF, buildAbsoluteRead(lax))
	op(0xBF, buildAbsoluteIdxRead(yIdx16, lax))
	op(0xA3, buildIndexedIndirectRead(lax))
	op(0xB3, buildIndirectIndexedRead(lax))

	op(0x0B, buildImmediate(anc))
	op(0x2B, buildImmediate(anc))
	op(0x4B, buildImmediate(alr))
	op(0x6B, buildImmediate(arr))
	op(0x8B, buildImmediate(xaa))
	op(0xCB, buildImmediate(axs))
	op(0xEB, buildImmediate(sbc))

	op(0x93, buildIndirectIndexedWrite(sha))
	op(0x9F, buildAbsoluteIdxWrite(yIdx16, sha))
	op(0x9E, buildAbsoluteIdxWrite(yIdx16, shx))
	op(0x9C, buildAbsoluteIdxWrite(xIdx16, shy))
	op(0x9B, buildAbsoluteIdxWrite(yIdx16, tas))
	op(0xBB, buildAbsoluteIdxRead(yIdx16, las))

	for _, code := range []int{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		op(code, buildImplied(nop))
	}
	for _, code := range []int{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		op(code, buildImmediate(nopRead))
	}
	for _, code := range []int{0x04, 0x44, 0x64} {
		op(code, buildZeroPageRead(nopRead))
	}
	for _, code := range []int{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		op(code, buildZeroPageIdxRead(xIdx, nopRead))
	}
	op(0x0C, buildAbsoluteRead(nopRead))
	for _, code := range []int{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		op(code, buildAbsoluteIdxRead(xIdx16, nopRead))
	}
}
