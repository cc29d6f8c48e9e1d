package board

// Timing is the handful of integer constants that differ between NTSC,
// PAL and Dendy hardware: the PPU:CPU tick ratio (expressed as a
// rational PPUNum/PPUDen to let PAL's non-integer 3.2:1 ratio be exact)
// and whether the variant has the odd-frame short scanline (OddSkip).
// The PPU does not read OddSkip: it drops the odd-frame dot whenever
// rendering is enabled, for every preset.
type Timing struct {
	Name     string
	PPUNum   int
	PPUDen   int
	OddSkip  bool
}

// TimingNTSC: PPU runs exactly 3 ticks per CPU tick; pre-render line
// loses a dot on odd frames when rendering is enabled.
var TimingNTSC = Timing{Name: "NTSC", PPUNum: 3, PPUDen: 1, OddSkip: true}

// TimingPAL: PPU runs 3.2 ticks per CPU tick (16/5); OddSkip is false.
var TimingPAL = Timing{Name: "PAL", PPUNum: 16, PPUDen: 5, OddSkip: false}

// TimingDendy: Famiclone hardware, PAL-rate master clock but an
// NTSC-style 3:1 PPU:CPU ratio and odd-frame skip.
var TimingDendy = Timing{Name: "Dendy", PPUNum: 3, PPUDen: 1, OddSkip: true}
