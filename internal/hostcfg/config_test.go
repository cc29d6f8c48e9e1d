package hostcfg

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_MatchesShippedValues(t *testing.T) {
	c := Default()
	if c.Window.Scale != 2 {
		t.Errorf("Window.Scale = %d, want 2", c.Window.Scale)
	}
	if c.Video.Backend != "ebitengine" {
		t.Errorf("Video.Backend = %q, want ebitengine", c.Video.Backend)
	}
	if c.Emulation.Region != "NTSC" {
		t.Errorf("Emulation.Region = %q, want NTSC", c.Emulation.Region)
	}
}

func TestLoad_WritesDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Window.Scale != 2 {
		t.Errorf("Scale = %d, want the default 2", c.Window.Scale)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Load should have written the config file: %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	c := Default()
	c.Window.Scale = 4
	c.Audio.Volume = 0.5
	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Window.Scale != 4 {
		t.Errorf("Scale after round trip = %d, want 4", loaded.Window.Scale)
	}
	if loaded.Audio.Volume != 0.5 {
		t.Errorf("Volume after round trip = %v, want 0.5", loaded.Audio.Volume)
	}
}

func TestLoad_ValidatesOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	bad := Default()
	bad.Window.Scale = -3
	bad.Video.Brightness = 99.0
	bad.Audio.SampleRate = 0
	bad.Audio.Volume = 5.0
	bad.Emulation.Region = "PALNTSC"

	data, err := json.Marshal(bad)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Window.Scale != 1 {
		t.Errorf("Scale = %d, want clamped to 1", c.Window.Scale)
	}
	if c.Video.Brightness != 1.0 {
		t.Errorf("Brightness = %v, want clamped to 1.0", c.Video.Brightness)
	}
	if c.Audio.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want clamped to 44100", c.Audio.SampleRate)
	}
	if c.Audio.Volume != 0.8 {
		t.Errorf("Volume = %v, want clamped to 0.8", c.Audio.Volume)
	}
	if c.Emulation.Region != "NTSC" {
		t.Errorf("Region = %q, want clamped to NTSC", c.Emulation.Region)
	}
}

func TestWindowResolution_ScalesBaseResolution(t *testing.T) {
	c := Default()
	c.Window.Scale = 3
	w, h := c.WindowResolution()
	if w != 768 || h != 720 {
		t.Errorf("WindowResolution() = (%d, %d), want (768, 720)", w, h)
	}
}

func TestConfigPath_SetByLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ConfigPath() != path {
		t.Errorf("ConfigPath() = %q, want %q", c.ConfigPath(), path)
	}
}
