// Package main implements the gones NES emulator executable: it loads a
// hostcfg.Config and a cartridge, wires a board.Board to an ebiten-backed
// frontend.Host, and runs the game loop.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"gones/internal/board"
	"gones/internal/cartridge"
	"gones/internal/graphics"
	"gones/internal/hostcfg"
	"gones/internal/neserr"
	"gones/internal/tracer"
	"gones/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "path to an iNES ROM file")
		configFile = flag.String("config", "", "path to a gones JSON config file")
		debug      = flag.Bool("debug", false, "enable CPU tracing and verbose logging")
		nogui      = flag.Bool("nogui", false, "run headless: no window, no audio, no input")
		help       = flag.Bool("help", false, "show this help message")
		showVer    = flag.Bool("version", false, "show version information")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}
	if *showVer {
		fmt.Println(version.String())
		return
	}

	configPath := *configFile
	if configPath == "" {
		configPath = "./config/gones.json"
	}
	cfg, err := hostcfg.Load(configPath)
	if err != nil {
		log.Fatalf("gones: load config: %v", err)
	}
	if *nogui {
		cfg.Video.Backend = "headless"
	}
	cfg.Debug.CPUTracing = cfg.Debug.CPUTracing || *debug
	cfg.Debug.EnableLogging = cfg.Debug.EnableLogging || *debug

	trace := tracer.New()
	trace.SetEnabled(cfg.Debug.EnableLogging || cfg.Debug.CPUTracing)

	if *romFile == "" {
		log.Fatal("gones: -rom is required")
	}
	cart, err := cartridge.Load(*romFile)
	if err != nil {
		log.Fatalf("gones: load rom: %v", err)
	}

	timing := timingFor(cfg.Emulation.Region)

	if cfg.Video.Backend == "headless" {
		runHeadless(cart, cfg, timing, trace)
		return
	}

	if err := runGUI(cart, cfg, timing, trace, *romFile); err != nil {
		log.Fatalf("gones: %v", err)
	}
}

func timingFor(region string) board.Timing {
	switch region {
	case "PAL":
		return board.TimingPAL
	case "Dendy":
		return board.TimingDendy
	default:
		return board.TimingNTSC
	}
}

// runGUI drives the emulator through an ebiten window.
func runGUI(cart *cartridge.Cartridge, cfg *hostcfg.Config, timing board.Timing, trace *tracer.Tracer, romPath string) error {
	w, h := cfg.WindowResolution()
	backend := graphics.NewEbitengineBackend()
	if err := backend.Initialize(graphics.Config{
		Title: "gones", Width: w, Height: h,
		Fullscreen: cfg.Window.Fullscreen, VSync: cfg.Window.VSync,
	}); err != nil {
		return fmt.Errorf("graphics init: %w", err)
	}
	win, err := backend.CreateWindow()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	ebWin, ok := win.(*graphics.EbitengineWindow)
	if !ok {
		return fmt.Errorf("unexpected window type %T", win)
	}

	b, err := board.New(cart, nil, timing, trace)
	if err != nil {
		return fmt.Errorf("board init: %w", err)
	}
	if b.HasBattery() {
		loadBatteryFile(b, romPath+".sav")
	}

	game := newNESGame(b, cfg, ebWin)
	b.Host = game
	powerOn(b)

	fmt.Printf("gones: window %s, region %s\n", describeWindow(cfg), cfg.Emulation.Region)
	return ebiten.RunGame(game)
}

// runHeadless runs the board for a fixed number of frames with no
// window, audio, or input, for CI smoke testing.
func runHeadless(cart *cartridge.Cartridge, cfg *hostcfg.Config, timing board.Timing, trace *tracer.Tracer) {
	backend := graphics.NewHeadlessBackend()
	_ = backend.Initialize(graphics.Config{})
	win, _ := backend.CreateWindow()

	host := &headlessHost{win: win}
	b, err := board.New(cart, host, timing, trace)
	if err != nil {
		log.Fatalf("gones: board init: %v", err)
	}
	host.board = b
	powerOn(b)

	const frames = 120
	for i := 0; i < frames; i++ {
		b.RunCycles(cyclesPerVideoFrame)
	}
	fmt.Printf("gones: ran %d frames headless\n", frames)
}

// headlessHost is the minimal frontend.Host a headless run needs.
type headlessHost struct {
	win   graphics.Window
	board *board.Board
}

func (h *headlessHost) HandleFrameRender(float64) {}
func (h *headlessHost) HandleVideoFrame(pixels []uint8) {
	emphasis := uint8(0)
	if h.board != nil {
		emphasis = h.board.PPU.Emphasis()
	}
	_ = h.win.RenderFrame(pixels, emphasis)
}
func (h *headlessHost) HandleAudioSample(int16) {}
func (h *headlessHost) PollInput(int) uint8     { return 0 }
func (h *headlessHost) HandleJam(event neserr.JamEvent) {
	log.Printf("gones: CPU jammed: opcode $%02X at $%04X", event.Opcode, event.PC)
}

// powerOn runs the CPU/PPU/APU reset sequence once; unlike board.PowerUp
// (a free-running loop meant for a host with no pacing of its own), this
// leaves stepping to the caller's own loop (ebiten's Update ticks, or a
// fixed frame count in headless mode).
func powerOn(b *board.Board) {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
}

func loadBatteryFile(b *board.Board, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	_ = b.LoadBattery(f)
}

func printUsage() {
	fmt.Println("gones - a cycle-accurate NES emulator core")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  gones -rom <file> [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
}
