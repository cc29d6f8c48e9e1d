package cpu

// Official opcode semantics, expressed as the small set of function
// shapes microcode.go's builders expect. Flag formulas (ADC/SBC overflow
// in particular) follow the standard 6502 derivation: overflow fires
// when the operands share a sign and the result's sign differs from it.

func adc(c *CPU, value uint8) {
	carry := uint16(0)
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(value) + carry
	result := uint8(sum)
	c.V = (c.A^result)&0x80 != 0 && (c.A^value)&0x80 == 0
	c.C = sum > 0xFF
	c.A = result
	c.setZN(c.A)
}

func sbc(c *CPU, value uint8) {
	adc(c, ^value)
}

func and(c *CPU, value uint8) {
	c.A &= value
	c.setZN(c.A)
}

func ora(c *CPU, value uint8) {
	c.A |= value
	c.setZN(c.A)
}

func eor(c *CPU, value uint8) {
	c.A ^= value
	c.setZN(c.A)
}

func lda(c *CPU, value uint8) { c.A = value; c.setZN(c.A) }
func ldx(c *CPU, value uint8) { c.X = value; c.setZN(c.X) }
func ldy(c *CPU, value uint8) { c.Y = value; c.setZN(c.Y) }

func compare(c *CPU, reg, value uint8) {
	result := reg - value
	c.C = reg >= value
	c.setZN(result)
}

func cmp(c *CPU, value uint8) { compare(c, c.A, value) }
func cpx(c *CPU, value uint8) { compare(c, c.X, value) }
func cpy(c *CPU, value uint8) { compare(c, c.Y, value) }

func bit(c *CPU, value uint8) {
	c.Z = c.A&value == 0
	c.N = value&0x80 != 0
	c.V = value&0x40 != 0
}

func nopRead(c *CPU, value uint8) { _ = value }

func asl(c *CPU, value uint8) uint8 {
	c.C = value&0x80 != 0
	result := value << 1
	c.setZN(result)
	return result
}

func lsr(c *CPU, value uint8) uint8 {
	c.C = value&0x01 != 0
	result := value >> 1
	c.setZN(result)
	return result
}

func rol(c *CPU, value uint8) uint8 {
	oldCarry := uint8(0)
	if c.C {
		oldCarry = 1
	}
	c.C = value&0x80 != 0
	result := value<<1 | oldCarry
	c.setZN(result)
	return result
}

func ror(c *CPU, value uint8) uint8 {
	oldCarry := uint8(0)
	if c.C {
		oldCarry = 0x80
	}
	c.C = value&0x01 != 0
	result := value>>1 | oldCarry
	c.setZN(result)
	return result
}

func incv(c *CPU, value uint8) uint8 {
	result := value + 1
	c.setZN(result)
	return result
}

func decv(c *CPU, value uint8) uint8 {
	result := value - 1
	c.setZN(result)
	return result
}

func sta(c *CPU) uint8 { return c.A }
func stx(c *CPU) uint8 { return c.X }
func sty(c *CPU) uint8 { return c.Y }

func inx(c *CPU) { c.X++; c.setZN(c.X) }
func dex(c *CPU) { c.X--; c.setZN(c.X) }
func iny(c *CPU) { c.Y++; c.setZN(c.Y) }
func dey(c *CPU) { c.Y--; c.setZN(c.Y) }
func tax(c *CPU) { c.X = c.A; c.setZN(c.X) }
func txa(c *CPU) { c.A = c.X; c.setZN(c.A) }
func tay(c *CPU) { c.Y = c.A; c.setZN(c.Y) }
func tya(c *CPU) { c.A = c.Y; c.setZN(c.A) }
func tsx(c *CPU) { c.X = c.S; c.setZN(c.X) }
func txs(c *CPU) { c.S = c.X } // TXS touches no flags

func clc(c *CPU) { c.C = false }
func sec(c *CPU) { c.C = true }
func cli(c *CPU) { c.I = false }
func sei(c *CPU) { c.I = true }
func clv(c *CPU) { c.V = false }
func cld(c *CPU) { c.D = false }
func sed(c *CPU) { c.D = true }
func nop(c *CPU) {}

func pullA(c *CPU, value uint8) { c.A = value; c.setZN(c.A) }
func pullP(c *CPU, value uint8) { c.SetStatusByte(value) }
func pushA(c *CPU) uint8        { return c.A }
func pushP(c *CPU) uint8        { return c.GetStatusByte(true) } // PHP sets B in the pushed copy

func registerOfficialOpcodes() {
	op := func(code int, entry int) { opcodeEntry[code] = entry }

	// loads
	op(0xA9, buildImmediate(lda))
	op(0xA5, buildZeroPageRead(lda))
	op(0xB5, buildZeroPageIdxRead(xIdx, lda))
	op(0xAD, buildAbsoluteRead(lda))
	op(0xBD, buildAbsoluteIdxRead(xIdx16, lda))
	op(0xB9, buildAbsoluteIdxRead(yIdx16, lda))
	op(0xA1, buildIndexedIndirectRead(lda))
	op(0xB1, buildIndirectIndexedRead(lda))

	op(0xA2, buildImmediate(ldx))
	op(0xA6, buildZeroPageRead(ldx))
	op(0xB6, buildZeroPageIdxRead(yIdx, ldx))
	op(0xAE, buildAbsoluteRead(ldx))
	op(0xBE, buildAbsoluteIdxRead(yIdx16, ldx))

	op(0xA0, buildImmediate(ldy))
	op(0xA4, buildZeroPageRead(ldy))
	op(0xB4, buildZeroPageIdxRead(xIdx, ldy))
	op(0xAC, buildAbsoluteRead(ldy))
	op(0xBC, buildAbsoluteIdxRead(xIdx16, ldy))

	// stores
	op(0x85, buildZeroPageWrite(sta))
	op(0x95, buildZeroPageIdxWrite(xIdx, sta))
	op(0x8D, buildAbsoluteWrite(sta))
	op(0x9D, buildAbsoluteIdxWrite(xIdx16, sta))
	op(0x99, buildAbsoluteIdxWrite(yIdx16, sta))
	op(0x81, buildIndexedIndirectWrite(sta))
	op(0x91, buildIndirectIndexedWrite(sta))

	op(0x86, buildZeroPageWrite(stx))
	op(0x96, buildZeroPageIdxWrite(yIdx, stx))
	op(0x8E, buildAbsoluteWrite(stx))

	op(0x84, buildZeroPageWrite(sty))
	op(0x94, buildZeroPageIdxWrite(xIdx, sty))
	op(0x8C, buildAbsoluteWrite(sty))

	// arithmetic / logic
	op(0x69, buildImmediate(adc))
	op(0x65, buildZeroPageRead(adc))
	op(0x75, buildZeroPageIdxRead(xIdx, adc))
	op(0x6D, buildAbsoluteRead(adc))
	op(0x7D, buildAbsoluteIdxRead(xIdx16, adc))
	op(0x79, buildAbsoluteIdxRead(yIdx16, adc))
	op(0x61, buildIndexedIndirectRead(adc))
	op(0x71, buildIndirectIndexedRead(adc))

	op(0xE9, buildImmediate(sbc))
	op(0xE5, buildZeroPageRead(sbc))
	op(0xF5, buildZeroPageIdxRead(xIdx, sbc))
	op(0xED, buildAbsoluteRead(sbc))
	op(0xFD, buildAbsoluteIdxRead(xIdx16, sbc))
	op(0xF9, buildAbsoluteIdxRead(yIdx16, sbc))
	op(0xE1, buildIndexedIndirectRead(sbc))
	op(0xF1, buildIndirectIndexedRead(sbc))

	op(0x29, buildImmediate(and))
	op(0x25, buildZeroPageRead(and))
	op(0x35, buildZeroPageIdxRead(xIdx, and))
	op(0x2D, buildAbsoluteRead(and))
	op(0x3D, buildAbsoluteIdxRead(xIdx16, and))
	op(0x39, buildAbsoluteIdxRead(yIdx16, and))
	op(0x21, buildIndexedIndirectRead(and))
	op(0x31, buildIndirectIndexedRead(and))

	op(0x09, buildImmediate(ora))
	op(0x05, buildZeroPageRead(ora))
	op(0x15, buildZeroPageIdxRead(xIdx, ora))
	op(0x0D, buildAbsoluteRead(ora))
	op(0x1D, buildAbsoluteIdxRead(xIdx16, ora))
	op(0x19, buildAbsoluteIdxRead(yIdx16, ora))
	op(0x01, buildIndexedIndirectRead(ora))
	op(0x11, buildIndirectIndexedRead(ora))

	op(0x49, buildImmediate(eor))
	op(0x45, buildZeroPageRead(eor))
	op(0x55, buildZeroPageIdxRead(xIdx, eor))
	op(0x4D, buildAbsoluteRead(eor))
	op(0x5D, buildAbsoluteIdxRead(xIdx16, eor))
	op(0x59, buildAbsoluteIdxRead(yIdx16, eor))
	op(0x41, buildIndexedIndirectRead(eor))
	op(0x51, buildIndirectIndexedRead(eor))

	op(0xC9, buildImmediate(cmp))
	op(0xC5, buildZeroPageRead(cmp))
	op(0xD5, buildZeroPageIdxRead(xIdx, cmp))
	op(0xCD, buildAbsoluteRead(cmp))
	op(0xDD, buildAbsoluteIdxRead(xIdx16, cmp))
	op(0xD9, buildAbsoluteIdxRead(yIdx16, cmp))
	op(0xC1, buildIndexedIndirectRead(cmp))
	op(0xD1, buildIndirectIndexedRead(cmp))

	op(0xE0, buildImmediate(cpx))
	op(0xE4, buildZeroPageRead(cpx))
	op(0xEC, buildAbsoluteRead(cpx))

	op(0xC0, buildImmediate(cpy))
	op(0xC4, buildZeroPageRead(cpy))
	op(0xCC, buildAbsoluteRead(cpy))

	op(0x24, buildZeroPageRead(bit))
	op(0x2C, buildAbsoluteRead(bit))

	// read-modify-write
	op(0x0A, buildAccumulator(asl))
	op(0x06, buildZeroPageRMW(asl))
	op(0x16, buildZeroPageIdxRMW(xIdx, asl))
	op(0x0E, buildAbsoluteRMW(asl))
	op(0x1E, buildAbsoluteIdxRMW(xIdx16, asl))

	op(0x4A, buildAccumulator(lsr))
	op(0x46, buildZeroPageRMW(lsr))
	op(0x56, buildZeroPageIdxRMW(xIdx, lsr))
	op(0x4E, buildAbsoluteRMW(lsr))
	op(0x5E, buildAbsoluteIdxRMW(xIdx16, lsr))

	op(0x2A, buildAccumulator(rol))
	op(0x26, buildZeroPageRMW(rol))
	op(0x36, buildZeroPageIdxRMW(xIdx, rol))
	op(0x2E, buildAbsoluteRMW(rol))
	op(0x3E, buildAbsoluteIdxRMW(xIdx16, rol))

	op(0x6A, buildAccumulator(ror))
	op(0x66, buildZeroPageRMW(ror))
	op(0x76, buildZeroPageIdxRMW(xIdx, ror))
	op(0x6E, buildAbsoluteRMW(ror))
	op(0x7E, buildAbsoluteIdxRMW(xIdx16, ror))

	op(0xE6, buildZeroPageRMW(incv))
	op(0xF6, buildZeroPageIdxRMW(xIdx, incv))
	op(0xEE, buildAbsoluteRMW(incv))
	op(0xFE, buildAbsoluteIdxRMW(xIdx16, incv))

	op(0xC6, buildZeroPageRMW(decv))
	op(0xD6, buildZeroPageIdxRMW(xIdx, decv))
	op(0xCE, buildAbsoluteRMW(decv))
	op(0xDE, buildAbsoluteIdxRMW(xIdx16, decv))

	// register transfers / implied
	op(0xE8, buildImplied(inx))
	op(0xCA, buildImplied(dex))
	op(0xC8, buildImplied(iny))
	op(0x88, buildImplied(dey))
	op(0xAA, buildImplied(tax))
	op(0x8A, buildImplied(txa))
	op(0xA8, buildImplied(tay))
	op(0x98, buildImplied(tya))
	op(0xBA, buildImplied(tsx))
	op(0x9A, buildImplied(txs))
	op(0x18, buildImplied(clc))
	op(0x38, buildImplied(sec))
	op(0x58, buildImplied(cli))
	op(0x78, buildImplied(sei))
	op(0xB8, buildImplied(clv))
	op(0xD8, buildImplied(cld))
	op(0xF8, buildImplied(sed))
	op(0xEA, buildImplied(nop))

	// stack
	op(0x48, buildPush(pushA))
	op(0x08, buildPush(pushP))
	op(0x68, buildPull(pullA))
	op(0x28, buildPull(pullP))

	// control flow
	op(0x4C, buildJMPAbsolute())
	op(0x6C, buildJMPIndirect())
	op(0x20, buildJSR())
	op(0x60, buildRTS())
	op(0x40, buildRTI())
	op(0x00, buildBRK())

	op(0x90, buildBranch(func(c *CPU) bool { return !c.C }))
	op(0xB0, buildBranch(func(c *CPU) bool { return c.C }))
	op(0xD0, buildBranch(func(c *CPU) bool { return !c.Z }))
	op(0xF0, buildBranch(func(c *CPU) bool { return c.Z }))
	op(0x10, buildBranch(func(c *CPU) bool { return !c.N }))
	op(0x30, buildBranch(func(c *CPU) bool { return c.N }))
	op(0x50, buildBranch(func(c *CPU) bool { return !c.V }))
	op(0x70, buildBranch(func(c *CPU) bool { return c.V }))
}

func xIdx(c *CPU) uint8    { return c.X }
func yIdx(c *CPU) uint8    { return c.Y }
func xIdx16(c *CPU) uint16 { return uint16(c.X) }
func yIdx16(c *CPU) uint16 { return uint16(c.Y) }
