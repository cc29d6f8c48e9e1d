// Package hostcfg loads and validates the JSON configuration file a
// gones front end runs with. It is trimmed from the teacher's app.Config
// to the fields a headless-capable core plus cmd/gones actually consume:
// window/video backend selection, audio, input mapping, emulation/debug
// flags and ROM/battery paths. encoding/json is used directly, matching
// the pack's stdlib-only config idiom (no viper/toml/yaml appears
// anywhere in the retrieved examples).
package hostcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds everything a gones front end needs at startup.
type Config struct {
	Window    WindowConfig    `json:"window"`
	Video     VideoConfig     `json:"video"`
	Audio     AudioConfig     `json:"audio"`
	Input     InputConfig     `json:"input"`
	Emulation EmulationConfig `json:"emulation"`
	Debug     DebugConfig     `json:"debug"`
	Paths     PathsConfig     `json:"paths"`

	configPath string
}

// WindowConfig controls the host window.
type WindowConfig struct {
	Scale      int  `json:"scale"` // NES 256x240 resolution multiplier
	Fullscreen bool `json:"fullscreen"`
	VSync      bool `json:"vsync"`
}

// VideoConfig selects the rendering backend and palette tinting.
type VideoConfig struct {
	Backend    string  `json:"backend"` // "ebitengine" or "headless"
	Brightness float32 `json:"brightness"`
	Grayscale  bool    `json:"grayscale"`
}

// AudioConfig controls sample playback.
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	BufferSize int     `json:"buffer_size"`
	Volume     float32 `json:"volume"`
}

// InputConfig maps keyboard keys to the two controller ports.
type InputConfig struct {
	Player1Keys KeyMapping `json:"player1_keys"`
	Player2Keys KeyMapping `json:"player2_keys"`
}

// KeyMapping names the ebiten key for each NES button.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// EmulationConfig selects the timing region and battery behavior.
type EmulationConfig struct {
	Region   string `json:"region"` // "NTSC", "PAL", "Dendy"
	AutoSave bool   `json:"auto_save"`
}

// DebugConfig toggles tracer output and CPU jam visibility.
type DebugConfig struct {
	EnableLogging bool `json:"enable_logging"`
	CPUTracing    bool `json:"cpu_tracing"`
}

// PathsConfig names where ROMs and battery saves live on disk.
type PathsConfig struct {
	ROMs     string `json:"roms"`
	SaveData string `json:"save_data"`
}

// Default returns a fully populated configuration with the values
// cmd/gones ships with before any config file is read.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Scale: 2, Fullscreen: false, VSync: true},
		Video:  VideoConfig{Backend: "ebitengine", Brightness: 1.0, Grayscale: false},
		Audio:  AudioConfig{Enabled: true, SampleRate: 44100, BufferSize: 1024, Volume: 0.8},
		Input: InputConfig{
			Player1Keys: KeyMapping{Up: "W", Down: "S", Left: "A", Right: "D", A: "J", B: "K", Start: "Enter", Select: "Space"},
			Player2Keys: KeyMapping{Up: "Up", Down: "Down", Left: "Left", Right: "Right", A: "N", B: "M", Start: "RightShift", Select: "RightControl"},
		},
		Emulation: EmulationConfig{Region: "NTSC", AutoSave: true},
		Debug:     DebugConfig{EnableLogging: false, CPUTracing: false},
		Paths:     PathsConfig{ROMs: "./roms", SaveData: "./saves"},
	}
}

// Load reads path as JSON into a Default config, writing the default back
// out if path does not yet exist. A missing directory for path is created.
func Load(path string) (*Config, error) {
	c := Default()
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := c.Save(path); err != nil {
			return nil, err
		}
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hostcfg: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("hostcfg: parse %s: %w", path, err)
	}
	c.validate()
	return c, nil
}

// Save writes c to path as indented JSON, creating the parent directory
// if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("hostcfg: mkdir for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("hostcfg: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("hostcfg: write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// validate clamps out-of-range values loaded from an untrusted file back
// to sane defaults rather than rejecting the whole file.
func (c *Config) validate() {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	if c.Video.Brightness < 0.1 || c.Video.Brightness > 3.0 {
		c.Video.Brightness = 1.0
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.BufferSize <= 0 {
		c.Audio.BufferSize = 1024
	}
	if c.Audio.Volume < 0.0 || c.Audio.Volume > 1.0 {
		c.Audio.Volume = 0.8
	}
	switch c.Emulation.Region {
	case "NTSC", "PAL", "Dendy":
	default:
		c.Emulation.Region = "NTSC"
	}
}

// WindowResolution returns the host window's pixel dimensions for the
// configured scale factor.
func (c *Config) WindowResolution() (int, int) {
	return 256 * c.Window.Scale, 240 * c.Window.Scale
}

// ConfigPath returns the path Config was loaded from or saved to, empty
// if neither has happened yet.
func (c *Config) ConfigPath() string {
	return c.configPath
}
