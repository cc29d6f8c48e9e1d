// Package bus implements the address-decode engine shared by the CPU and
// PPU address spaces: a 16-bit address resolves to a byte read, a byte
// write, and an optional write-conflict mask, all precomputed as flat
// pointer tables at bank-install time so that decode at run time is one
// slice index plus one indirection — no virtual dispatch on the hot path.
package bus

// BankKind selects the read/write/conflict pointer generators a bank
// installs for its address range.
type BankKind int

const (
	// Open: unmapped region. Reads return the shared open-bus byte;
	// writes sink into a shared dummy cell.
	Open BankKind = iota
	// ReadOnly: reads return backing bytes; writes sink into dummy.
	ReadOnly
	// ReadOnlyWithConflict: as ReadOnly, but the conflict mask is the
	// backing bytes themselves, so a write ANDs with the ROM's own
	// value (old-mapper bus-conflict emulation).
	ReadOnlyWithConflict
	// WriteOnly: reads return open bus; writes hit backing bytes.
	WriteOnly
	// ReadWrite: reads and writes both hit backing bytes.
	ReadWrite
)

// WriteHook is called after a write has landed in its backing cell, with
// the decoded address and the (already conflict-masked) value stored.
type WriteHook func(addr uint16, value uint8)

// ReadHook is called around a read: hooks registered via AddReadHook run
// in registration order before the dereference (preDereference true),
// then again (same list) after it with the observed byte
// (preDereference false).
type ReadHook func(addr uint16, value uint8, preDereference bool)

// Bus is one 16-bit address space (CPU bus or PPU bus). Size bounds the
// address space actually addressable (0x10000 for the CPU, 0x4000 for
// the PPU, mirrored down from a 16-bit view).
type Bus struct {
	size int

	readMap     []*uint8
	writeMap    []*uint8
	conflictMap []*uint8

	openBus  uint8
	dummy    uint8
	writeBuf uint8
	allOnes  uint8

	writeHooks []WriteHook
	readHooks  []ReadHook
}

// New creates a bus covering [0, size) addresses, with every address
// initially Open (unmapped).
func New(size int) *Bus {
	b := &Bus{
		size:        size,
		readMap:     make([]*uint8, size),
		writeMap:    make([]*uint8, size),
		conflictMap: make([]*uint8, size),
		openBus:     0x40, // initial open-bus value per spec
		allOnes:     0xFF,
	}
	for i := 0; i < size; i++ {
		b.readMap[i] = &b.openBus
		b.writeMap[i] = &b.dummy
		b.conflictMap[i] = &b.allOnes
	}
	return b
}

// Install maps [base, base+length) to kind, backed by backing, wrapping
// every stride bytes within backing (stride == 0 means no wrap: the
// whole length indexes linearly into backing, which must be at least
// length bytes). A 2 KiB RAM mirrored into an 8 KiB window uses
// stride == len(backing); a straight non-mirrored map uses stride == 0.
func (b *Bus) Install(base, length int, kind BankKind, backing []byte, stride int) {
	if stride <= 0 {
		stride = length
	}
	for i := 0; i < length; i++ {
		addr := base + i
		if addr < 0 || addr >= b.size {
			continue
		}
		off := i % stride
		var cell *uint8
		if len(backing) > 0 {
			cell = &backing[off%len(backing)]
		}
		switch kind {
		case Open:
			b.readMap[addr] = &b.openBus
			b.writeMap[addr] = &b.dummy
			b.conflictMap[addr] = &b.allOnes
		case ReadOnly:
			b.readMap[addr] = cell
			b.writeMap[addr] = &b.dummy
			b.conflictMap[addr] = &b.allOnes
		case ReadOnlyWithConflict:
			b.readMap[addr] = cell
			b.writeMap[addr] = &b.dummy
			b.conflictMap[addr] = cell
		case WriteOnly:
			b.readMap[addr] = &b.openBus
			b.writeMap[addr] = cell
			b.conflictMap[addr] = &b.allOnes
		case ReadWrite:
			b.readMap[addr] = cell
			b.writeMap[addr] = cell
			b.conflictMap[addr] = &b.allOnes
		}
	}
}

// AddWriteHook registers a hook fired, in registration order, after
// every write's store completes.
func (b *Bus) AddWriteHook(h WriteHook) {
	b.writeHooks = append(b.writeHooks, h)
}

// AddReadHook registers a hook fired, in registration order, both
// before and after every read's dereference.
func (b *Bus) AddReadHook(h ReadHook) {
	b.readHooks = append(b.readHooks, h)
}

// Read performs a hooked bus read at addr.
func (b *Bus) Read(addr uint16) uint8 {
	i := int(addr) % b.size
	for _, h := range b.readHooks {
		h(addr, 0, true)
	}
	value := *b.readMap[i]
	for _, h := range b.readHooks {
		h(addr, value, false)
	}
	return value
}

// ReadDirect performs an unhooked read, bypassing pre/post-read hooks.
// Used by the debugger so inspection never has observable side effects.
func (b *Bus) ReadDirect(addr uint16) uint8 {
	return *b.readMap[int(addr)%b.size]
}

// Write performs a hooked bus write: value is ANDed with the conflict
// mask (a ROM bus-conflict bank yields a non-0xFF mask; everything else
// yields 0xFF and the AND is a no-op), the result is staged into the
// shared write-buffer byte, and that buffer is what lands in the
// backing cell — matching real hardware, where the data bus carries one
// value for the whole cycle regardless of how many devices sample it.
func (b *Bus) Write(addr uint16, value uint8) {
	i := int(addr) % b.size
	masked := value & *b.conflictMap[i]
	b.writeBuf = masked
	*b.writeMap[i] = b.writeBuf
	for _, h := range b.writeHooks {
		h(addr, b.writeBuf)
	}
}

// WriteDirect performs an unhooked write, bypassing conflict masking and
// write hooks. Used by the debugger.
func (b *Bus) WriteDirect(addr uint16, value uint8) {
	*b.writeMap[int(addr)%b.size] = value
}

// SetOpenBus stamps the open-bus byte, called by the CPU after every
// real read so a subsequent read of an unmapped address returns the
// last value actually seen on the data bus.
func (b *Bus) SetOpenBus(value uint8) {
	b.openBus = value
}

// OpenBus returns the current open-bus byte.
func (b *Bus) OpenBus() uint8 {
	return b.openBus
}
