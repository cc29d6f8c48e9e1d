package cartridge

import (
	"bytes"
	"testing"
)

// buildINES assembles a minimal well-formed iNES 1.0 image: prgBanks 16 KiB
// units, chrBanks 8 KiB units, flags6/flags7 as given, with synthetic PRG
// content so tests can check it survived the load.
func buildINES(t *testing.T, prgBanks, chrBanks int, flags6, flags7 byte, prgRAMSize byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(byte(prgBanks))
	buf.WriteByte(byte(chrBanks))
	buf.WriteByte(flags6)
	buf.WriteByte(flags7)
	buf.WriteByte(prgRAMSize)
	buf.Write(make([]byte, 7)) // flags9, flags10, padding

	if flags6&0x04 != 0 {
		buf.Write(make([]byte, 512)) // trainer
	}
	prg := make([]byte, prgBanks*0x4000)
	for i := range prg {
		prg[i] = byte(i)
	}
	buf.Write(prg)
	if chrBanks > 0 {
		buf.Write(make([]byte, chrBanks*0x2000))
	}
	return buf.Bytes()
}

func TestLoadReader_NROM(t *testing.T) {
	data := buildINES(t, 2, 1, 0x00, 0x00, 0)
	cart, err := LoadReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if len(cart.PRGROM) != 2*0x4000 {
		t.Errorf("PRGROM size = %d, want %d", len(cart.PRGROM), 2*0x4000)
	}
	if len(cart.CHRROM) != 0x2000 {
		t.Errorf("CHRROM size = %d, want 0x2000", len(cart.CHRROM))
	}
	if cart.CHRRAM {
		t.Error("CHRRAM should be false when the header declares CHR ROM banks")
	}
	if cart.MapperID != 0 {
		t.Errorf("MapperID = %d, want 0", cart.MapperID)
	}
	if len(cart.PRGRAM) != prgRAMUnit {
		t.Errorf("default PRGRAM size = %d, want %d (one 8KiB unit)", len(cart.PRGRAM), prgRAMUnit)
	}
}

func TestLoadReader_CHRRAMWhenNoCHRBanks(t *testing.T) {
	data := buildINES(t, 1, 0, 0x00, 0x00, 0)
	cart, err := LoadReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if !cart.CHRRAM {
		t.Error("CHRRAM should be true when the header declares zero CHR ROM banks")
	}
	if len(cart.CHRROM) != chrRAMSize {
		t.Errorf("CHR RAM size = %d, want %d", len(cart.CHRROM), chrRAMSize)
	}
}

func TestLoadReader_MirroringTags(t *testing.T) {
	tests := []struct {
		name   string
		flags6 byte
		want   Mirror
	}{
		{"horizontal", 0x00, MirrorHorizontal},
		{"vertical", 0x01, MirrorVertical},
		{"four screen", 0x08, MirrorFourScreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildINES(t, 1, 1, tt.flags6, 0x00, 0)
			cart, err := LoadReader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("LoadReader: %v", err)
			}
			if cart.Mirror != tt.want {
				t.Errorf("Mirror = %v, want %v", cart.Mirror, tt.want)
			}
		})
	}
}

func TestLoadReader_BatteryFlag(t *testing.T) {
	data := buildINES(t, 1, 1, 0x02, 0x00, 0)
	cart, err := LoadReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if !cart.HasBattery {
		t.Error("HasBattery should be true when flags6 bit 1 is set")
	}
}

func TestLoadReader_TrainerPreloadedAt0x1000(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(1) // 1 PRG bank
	buf.WriteByte(1) // 1 CHR bank
	buf.WriteByte(0x04) // trainer present
	buf.WriteByte(0x00)
	buf.Write(make([]byte, 8))
	trainer := make([]byte, 512)
	for i := range trainer {
		trainer[i] = 0xEE
	}
	buf.Write(trainer)
	buf.Write(make([]byte, 0x4000)) // PRG
	buf.Write(make([]byte, 0x2000)) // CHR

	cart, err := LoadReader(&buf)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if cart.PRGRAM[trainerOffset] != 0xEE || cart.PRGRAM[trainerOffset+511] != 0xEE {
		t.Error("trainer bytes not preloaded at PRG-RAM offset 0x1000")
	}
}

func TestLoadReader_RejectsBadSignature(t *testing.T) {
	data := append([]byte("BAD!"), make([]byte, 12)...)
	if _, err := LoadReader(bytes.NewReader(data)); err == nil {
		t.Error("expected an error for a bad iNES signature")
	}
}

func TestLoadReader_RejectsINES20(t *testing.T) {
	data := buildINES(t, 1, 1, 0x00, 0x08, 0) // flags7 bits 2-3 == 0b10
	if _, err := LoadReader(bytes.NewReader(data)); err == nil {
		t.Error("expected iNES 2.0 headers to be rejected")
	}
}

func TestLoadReader_RejectsZeroPRGSize(t *testing.T) {
	data := buildINES(t, 0, 1, 0x00, 0x00, 0)
	if _, err := LoadReader(bytes.NewReader(data)); err == nil {
		t.Error("expected zero PRG ROM size to be rejected")
	}
}

func TestLoadReader_MapperIDFromBothFlagsNibbles(t *testing.T) {
	// mapper 20 (0x14): flags6 high nibble = 0x4 gives the low bits,
	// flags7 high nibble = 0x1 gives the high bits
	data := buildINES(t, 1, 1, 0x40, 0x10, 0)
	cart, err := LoadReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if cart.MapperID != 20 {
		t.Errorf("MapperID = %d, want 20", cart.MapperID)
	}
}

func TestLoadReader_ExplicitPRGRAMSize(t *testing.T) {
	data := buildINES(t, 1, 1, 0x00, 0x00, 2) // 2 * 8KiB
	cart, err := LoadReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if len(cart.PRGRAM) != 2*prgRAMUnit {
		t.Errorf("PRGRAM size = %d, want %d", len(cart.PRGRAM), 2*prgRAMUnit)
	}
}
