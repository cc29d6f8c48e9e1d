package region

import (
	"bytes"
	"testing"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	r := NewRegistry()
	ram := []byte{1, 2, 3, 4}
	battery := []byte{5, 6}
	r.Register("cpu.ram", ram, Dynamic)
	r.Register("cart.sram", battery, Battery)

	var buf bytes.Buffer
	if err := r.SaveState(&buf); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	ram[0], ram[3] = 0xFF, 0xFF
	battery[0] = 0xFF

	if err := r.LoadState(&buf); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if !bytes.Equal(ram, []byte{1, 2, 3, 4}) {
		t.Errorf("ram after load = %v, want [1 2 3 4]", ram)
	}
	if !bytes.Equal(battery, []byte{5, 6}) {
		t.Errorf("battery after load = %v, want [5 6]", battery)
	}
}

func TestSaveLoad_SkipsStaticRegions(t *testing.T) {
	r := NewRegistry()
	rom := []byte{9, 9}
	r.Register("cart.prgrom", rom, Static)

	var buf bytes.Buffer
	if err := r.SaveState(&buf); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("SaveState wrote %d bytes for a Static-only registry, want 0", buf.Len())
	}
}

func TestBatteryOnly_RoundTrip(t *testing.T) {
	r := NewRegistry()
	ram := []byte{1, 2, 3}
	battery := []byte{0xAB, 0xCD}
	r.Register("cpu.ram", ram, Dynamic)
	r.Register("cart.sram", battery, Battery)

	var buf bytes.Buffer
	if err := r.SaveBattery(&buf); err != nil {
		t.Fatalf("SaveBattery: %v", err)
	}
	if buf.Len() != len(battery) {
		t.Fatalf("SaveBattery wrote %d bytes, want %d (battery region only)", buf.Len(), len(battery))
	}

	battery[0], battery[1] = 0, 0
	if err := r.LoadBattery(&buf); err != nil {
		t.Fatalf("LoadBattery: %v", err)
	}
	if !bytes.Equal(battery, []byte{0xAB, 0xCD}) {
		t.Errorf("battery after LoadBattery = %v, want [0xAB 0xCD]", battery)
	}
}

func TestZeroDynamic_PreservesBattery(t *testing.T) {
	r := NewRegistry()
	ram := []byte{1, 2, 3}
	battery := []byte{4, 5, 6}
	rom := []byte{7, 8}
	r.Register("cpu.ram", ram, Dynamic)
	r.Register("cart.sram", battery, Battery)
	r.Register("cart.prgrom", rom, Static)

	r.ZeroDynamic()

	for i, b := range ram {
		if b != 0 {
			t.Errorf("ram[%d] = %d after ZeroDynamic, want 0", i, b)
		}
	}
	if !bytes.Equal(battery, []byte{4, 5, 6}) {
		t.Errorf("battery mutated by ZeroDynamic: %v", battery)
	}
	if !bytes.Equal(rom, []byte{7, 8}) {
		t.Errorf("static ROM mutated by ZeroDynamic: %v", rom)
	}
}

func TestLoadState_SizeMismatchErrors(t *testing.T) {
	src := NewRegistry()
	src.Register("cpu.ram", make([]byte, 4), Dynamic)
	var buf bytes.Buffer
	if err := src.SaveState(&buf); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	dst := NewRegistry()
	dst.Register("cpu.ram", make([]byte, 8), Dynamic) // mismatched size
	if err := dst.LoadState(&buf); err == nil {
		t.Error("LoadState should fail when a region's size does not match the saved length")
	}
}

func TestRegister_DuplicateIDPanics(t *testing.T) {
	r := NewRegistry()
	r.Register("cpu.ram", make([]byte, 1), Dynamic)

	defer func() {
		if recover() == nil {
			t.Error("Register should panic on a duplicate ID")
		}
	}()
	r.Register("cpu.ram", make([]byte, 1), Dynamic)
}

func TestGet_ReturnsRegisteredRegion(t *testing.T) {
	r := NewRegistry()
	data := []byte{1}
	r.Register("ppu.oam", data, Dynamic)

	reg, ok := r.Get("ppu.oam")
	if !ok {
		t.Fatal("Get should find a registered region")
	}
	if reg.Persistence != Dynamic {
		t.Errorf("Persistence = %v, want Dynamic", reg.Persistence)
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("Get should report false for an unregistered ID")
	}
}
