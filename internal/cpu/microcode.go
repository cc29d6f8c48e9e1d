package cpu

import "gones/internal/neserr"

// microOp is one bus-cycle's worth of behavior: an optional bus
// transfer (read xor write, against c.AB/c.DB), an optional IRQ-poll
// request, an optional skip predicate that drops the cycle entirely
// (no tick spent) when its condition doesn't hold, and an exec routine
// that runs after the transfer and decides the next microcode index.
//
// The whole array is built once, at package init, by the builder
// functions below — an init()-time equivalent of the "const array of
// cycle invokers" the design calls for; decode at run time is the
// single opcodeEntry[op] lookup plus walking this slice.
type microOp struct {
	read  bool
	write bool
	poll  bool
	skip  func(c *CPU) bool
	exec  func(c *CPU, next int) int
}

var (
	microcode      []microOp
	opcodeEntry    [256]int
	nmiEntry       int
	irqEntryIdx    int
	resetEntry     int
	jamEntry       int
	microcodeBuilt bool
)

func ensureMicrocode() {
	if microcodeBuilt {
		return
	}
	microcodeBuilt = true
	buildMicrocode()
}

func init() { ensureMicrocode() }

func emit(op microOp) int {
	microcode = append(microcode, op)
	return len(microcode) - 1
}

func buildMicrocode() {
	microcode = make([]microOp, 0, 6000)

	// index 0: the universal opcode fetch, shared by every instruction.
	microcode = append(microcode, microOp{read: true, exec: execFetch})

	jamEntry = emit(microOp{exec: execJam})
	for i := range opcodeEntry {
		opcodeEntry[i] = jamEntry
	}

	registerOfficialOpcodes()
	registerIllegalOpcodes()

	nmiEntry = buildInterrupt(nmiVector, false)
	irqEntryIdx = buildInterrupt(irqVector, false)
	resetEntry = buildReset()
}

func execFetch(c *CPU, _ int) int {
	c.OP = c.DB
	if c.pendingInterrupt {
		c.pendingInterrupt = false
		if c.pendingIsNMI {
			return nmiEntry
		}
		return irqEntryIdx
	}
	c.PC++
	c.AB = c.PC
	entry := opcodeEntry[c.OP]
	if entry == jamEntry {
		// The jam is reported on the fetch cycle itself; the jam entry then parks.
		return execJam(c, jamEntry+1)
	}
	return entry
}

func execJam(c *CPU, next int) int {
	if !c.jammed {
		c.jammed = true
		if c.Jam != nil {
			c.Jam(neserr.JamEvent{PC: c.PC, Opcode: c.OP})
		}
	}
	// Stay parked: re-run this same cycle forever until Reset.
	return next - 1
}

// ---- interrupt / reset sequences ----

func buildInterrupt(vector uint16, _ bool) int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = stackBase + uint16(c.S)
		c.DB = uint8(c.PC >> 8)
		return next
	}})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.S--
		c.AB = stackBase + uint16(c.S)
		c.DB = uint8(c.PC & 0xFF)
		return next
	}})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.S--
		c.AB = stackBase + uint16(c.S)
		c.DB = c.GetStatusByte(false) // hardware interrupt: B=0
		return next
	}})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.S--
		c.I = true
		c.AB = vector
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.AB = vector + 1
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, _ int) int {
		c.PC = uint16(c.DB)<<8 | c.OP16
		c.AB = c.PC
		return 0
	}})
	return entry
}

func buildReset() int {
	entry := -1
	for i := 0; i < 5; i++ {
		last := i == 4
		idx := emit(microOp{read: true, exec: func(c *CPU, next int) int {
			if last {
				c.AB = resetVec // next read is the vector low byte
			} else {
				c.AB = c.PC
			}
			return next
		}})
		if entry < 0 {
			entry = idx
		}
	}
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.AB = resetVec + 1
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, _ int) int {
		c.PC = uint16(c.DB)<<8 | c.OP16
		c.AB = c.PC
		return 0
	}})
	return entry
}

// ---- generic operation function shapes ----

type readOp func(c *CPU, value uint8)
type rmwOp func(c *CPU, value uint8) uint8
type storeOp func(c *CPU) uint8
type impliedOp func(c *CPU)

func finishToFetch(c *CPU, _ int) int {
	c.AB = c.PC
	return 0
}

// ---- implied / accumulator (2 cycles) ----

func buildImplied(op impliedOp) int {
	return emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		op(c)
		return finishToFetch(c, next)
	}})
}

func buildAccumulator(op rmwOp) int {
	return emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		c.A = op(c, c.A)
		return finishToFetch(c, next)
	}})
}

// ---- immediate (2 cycles) ----

func buildImmediate(op readOp) int {
	return emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		op(c, c.DB)
		c.PC++
		return finishToFetch(c, next)
	}})
}

// ---- zero page (3 cycles read/write, 5 cycles RMW) ----

func buildZeroPageAddr() int {
	return emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.ZP = c.DB
		c.PC++
		c.AB = uint16(c.ZP)
		return next
	}})
}

func buildZeroPageRead(op readOp) int {
	entry := buildZeroPageAddr()
	emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		op(c, c.DB)
		return finishToFetch(c, next)
	}})
	return entry
}

func buildZeroPageWrite(op storeOp) int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.ZP = c.DB
		c.PC++
		c.AB = uint16(c.ZP)
		c.DB = op(c)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

func buildZeroPageRMW(op rmwOp) int {
	entry := buildZeroPageAddr()
	emit(microOp{read: true, exec: func(c *CPU, next int) int { return next }}) // read the operand value
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.DB = op(c, c.DB)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

// ---- zero page indexed (4 cycles read/write, 6 cycles RMW) ----

func buildZeroPageIdxAddr(idxOf func(c *CPU) uint8) int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.ZP = c.DB
		c.PC++
		c.AB = uint16(c.ZP)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = uint16((c.ZP + idxOf(c)) & 0xFF)
		return next
	}})
	return entry
}

func buildZeroPageIdxRead(idxOf func(c *CPU) uint8, op readOp) int {
	entry := buildZeroPageIdxAddr(idxOf)
	emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		op(c, c.DB)
		return finishToFetch(c, next)
	}})
	return entry
}

func buildZeroPageIdxWrite(idxOf func(c *CPU) uint8, op storeOp) int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.ZP = c.DB
		c.PC++
		c.AB = uint16(c.ZP)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = uint16((c.ZP + idxOf(c)) & 0xFF)
		c.DB = op(c)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

func buildZeroPageIdxRMW(idxOf func(c *CPU) uint8, op rmwOp) int {
	entry := buildZeroPageIdxAddr(idxOf)
	emit(microOp{read: true, exec: func(c *CPU, next int) int { return next }})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.DB = op(c, c.DB)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

// ---- absolute (4 cycles read/write, 6 cycles RMW) ----

func buildAbsoluteAddr() int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.PC++
		c.AB = c.PC
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.Abs = uint16(c.DB)<<8 | c.OP16
		c.PC++
		c.AB = c.Abs
		return next
	}})
	return entry
}

func buildAbsoluteRead(op readOp) int {
	entry := buildAbsoluteAddr()
	emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		op(c, c.DB)
		return finishToFetch(c, next)
	}})
	return entry
}

func buildAbsoluteWrite(op storeOp) int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.PC++
		c.AB = c.PC
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.Abs = uint16(c.DB)<<8 | c.OP16
		c.PC++
		c.AB = c.Abs
		c.DB = op(c)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

func buildAbsoluteRMW(op rmwOp) int {
	entry := buildAbsoluteAddr()
	emit(microOp{read: true, exec: func(c *CPU, next int) int { return next }})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.DB = op(c, c.DB)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

// ---- absolute indexed (4-5 cycles read, 5 cycles write, 7 cycles RMW) ----

func buildAbsoluteIdxAddr(idxOf func(c *CPU) uint16) (int, func(c *CPU) bool) {
	var crossed bool
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.PC++
		c.AB = c.PC
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		base := uint16(c.DB)<<8 | c.OP16
		c.Abs = base + idxOf(c)
		crossed = (base & 0xFF00) != (c.Abs & 0xFF00)
		c.PC++
		c.AB = (base & 0xFF00) | (c.Abs & 0x00FF)
		return next
	}})
	return entry, func(_ *CPU) bool { return crossed }
}

func buildAbsoluteIdxRead(idxOf func(c *CPU) uint16, op readOp) int {
	entry, crossed := buildAbsoluteIdxAddr(idxOf)
	emit(microOp{read: true, skip: func(c *CPU) bool { return !crossed(c) }, exec: func(c *CPU, next int) int {
		c.AB = c.Abs
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		op(c, c.DB)
		return finishToFetch(c, next)
	}})
	return entry
}

// buildAbsoluteIdxWrite stages DB with op's result one cycle before the
// write transfer, as every write builder here does; the dummy read at
// the uncorrected address always happens, unlike the read variant.
func buildAbsoluteIdxWrite(idxOf func(c *CPU) uint16, op storeOp) int {
	entry, _ := buildAbsoluteIdxAddr(idxOf)
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = c.Abs
		c.DB = op(c)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

func buildAbsoluteIdxRMW(idxOf func(c *CPU) uint16, op rmwOp) int {
	entry, _ := buildAbsoluteIdxAddr(idxOf)
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = c.Abs
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int { return next }})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.DB = op(c, c.DB)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

// ---- indexed indirect (zp,X): 6 cycles read/write, 8 cycles RMW ----

func buildIndexedIndirectAddr() int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.ZP = c.DB
		c.PC++
		c.AB = uint16(c.ZP)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = uint16((c.ZP + c.X) & 0xFF)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.AB = uint16((c.ZP + c.X + 1) & 0xFF)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.Abs = uint16(c.DB)<<8 | c.OP16
		c.AB = c.Abs
		return next
	}})
	return entry
}

func buildIndexedIndirectRead(op readOp) int {
	entry := buildIndexedIndirectAddr()
	emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		op(c, c.DB)
		return finishToFetch(c, next)
	}})
	return entry
}

func buildIndexedIndirectWrite(op storeOp) int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.ZP = c.DB
		c.PC++
		c.AB = uint16(c.ZP)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = uint16((c.ZP + c.X) & 0xFF)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.AB = uint16((c.ZP + c.X + 1) & 0xFF)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.Abs = uint16(c.DB)<<8 | c.OP16
		c.AB = c.Abs
		c.DB = op(c)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

func buildIndexedIndirectRMW(op rmwOp) int {
	entry := buildIndexedIndirectAddr()
	emit(microOp{read: true, exec: func(c *CPU, next int) int { return next }})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.DB = op(c, c.DB)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

// ---- indirect indexed (zp),Y: 5-6 cycles read, 6 cycles write, 8 cycles RMW ----

func buildIndirectIndexedAddr() (int, func(c *CPU) bool) {
	var crossed bool
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.ZP = c.DB
		c.PC++
		c.AB = uint16(c.ZP)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.AB = uint16((c.ZP + 1) & 0xFF)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		base := uint16(c.DB)<<8 | c.OP16
		c.Abs = base + uint16(c.Y)
		crossed = (base & 0xFF00) != (c.Abs & 0xFF00)
		c.AB = (base & 0xFF00) | (c.Abs & 0x00FF)
		return next
	}})
	return entry, func(_ *CPU) bool { return crossed }
}

func buildIndirectIndexedRead(op readOp) int {
	entry, crossed := buildIndirectIndexedAddr()
	emit(microOp{read: true, skip: func(c *CPU) bool { return !crossed(c) }, exec: func(c *CPU, next int) int {
		c.AB = c.Abs
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		op(c, c.DB)
		return finishToFetch(c, next)
	}})
	return entry
}

func buildIndirectIndexedWrite(op storeOp) int {
	entry, _ := buildIndirectIndexedAddr()
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = c.Abs
		c.DB = op(c)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

func buildIndirectIndexedRMW(op rmwOp) int {
	entry, _ := buildIndirectIndexedAddr()
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = c.Abs
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int { return next }})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.DB = op(c, c.DB)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: finishToFetch})
	return entry
}

// ---- control flow ----

func buildJMPAbsolute() int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.PC++
		c.AB = c.PC
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, _ int) int {
		c.PC = uint16(c.DB)<<8 | c.OP16
		c.AB = c.PC
		return 0
	}})
	return entry
}

func buildJMPIndirect() int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.PC++
		c.AB = c.PC
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.Abs = uint16(c.DB)<<8 | c.OP16
		c.AB = c.Abs
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		if c.Abs&0x00FF == 0x00FF {
			c.AB = c.Abs & 0xFF00 // the famous page-wrap bug
		} else {
			c.AB = c.Abs + 1
		}
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, _ int) int {
		c.PC = uint16(c.DB)<<8 | c.OP16
		c.AB = c.PC
		return 0
	}})
	return entry
}

func buildJSR() int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.PC++
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.DB = uint8(c.PC >> 8)
		return next
	}})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.S--
		c.AB = stackBase + uint16(c.S)
		c.DB = uint8(c.PC & 0xFF)
		return next
	}})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.S--
		c.AB = c.PC
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, _ int) int {
		c.PC = uint16(c.DB)<<8 | c.OP16
		c.AB = c.PC
		return 0
	}})
	return entry
}

func buildRTS() int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.S++
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.S++
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.Abs = uint16(c.DB)<<8 | c.OP16
		c.AB = c.Abs
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, _ int) int {
		c.PC = c.Abs + 1
		c.AB = c.PC
		return 0
	}})
	return entry
}

func buildRTI() int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.S++
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.SetStatusByte(c.DB)
		c.S++
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.S++
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, _ int) int {
		c.PC = uint16(c.DB)<<8 | c.OP16
		c.AB = c.PC
		return 0
	}})
	return entry
}

func buildBRK() int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.PC++ // BRK's padding byte
		c.AB = stackBase + uint16(c.S)
		c.DB = uint8(c.PC >> 8)
		return next
	}})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.S--
		c.AB = stackBase + uint16(c.S)
		c.DB = uint8(c.PC & 0xFF)
		return next
	}})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.S--
		c.AB = stackBase + uint16(c.S)
		c.DB = c.GetStatusByte(true) // software interrupt: B=1
		return next
	}})
	emit(microOp{write: true, exec: func(c *CPU, next int) int {
		c.S--
		c.I = true
		c.AB = irqVector
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.OP16 = uint16(c.DB)
		c.AB = irqVector + 1
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, _ int) int {
		c.PC = uint16(c.DB)<<8 | c.OP16
		c.AB = c.PC
		return 0
	}})
	return entry
}

func buildPush(valueOf func(c *CPU) uint8) int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = stackBase + uint16(c.S)
		c.DB = valueOf(c)
		return next
	}})
	emit(microOp{write: true, poll: true, exec: func(c *CPU, next int) int {
		c.S--
		return finishToFetch(c, next)
	}})
	return entry
}

func buildPull(apply func(c *CPU, value uint8)) int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		c.S++
		c.AB = stackBase + uint16(c.S)
		return next
	}})
	emit(microOp{read: true, poll: true, exec: func(c *CPU, next int) int {
		apply(c, c.DB)
		return finishToFetch(c, next)
	}})
	return entry
}

// ---- branches ----

func buildBranch(cond func(c *CPU) bool) int {
	entry := emit(microOp{read: true, exec: func(c *CPU, next int) int {
		offset := int8(c.DB)
		c.PC++
		taken := cond(c)
		c.Branch = taken
		if !taken {
			c.pollInterrupts()
			c.AB = c.PC
			return 0
		}
		c.Abs = uint16(int32(c.PC) + int32(offset))
		c.AB = c.PC
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, next int) int {
		crossed := (c.PC & 0xFF00) != (c.Abs & 0xFF00)
		if !crossed {
			c.PC = c.Abs
			c.pollInterrupts()
			c.AB = c.PC
			return 0
		}
		c.PC = (c.PC & 0xFF00) | (c.Abs & 0x00FF)
		c.AB = c.PC
		return next
	}})
	emit(microOp{read: true, exec: func(c *CPU, _ int) int {
		c.PC = c.Abs
		c.pollInterrupts()
		c.AB = c.PC
		return 0
	}})
	return entry
}
