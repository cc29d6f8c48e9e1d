package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"gones/internal/board"
	"gones/internal/graphics"
	"gones/internal/hostcfg"
	"gones/internal/neserr"
)

// nesGame implements ebiten.Game and frontend.Host: it drives the board
// one step per Update call and presents whatever HandleVideoFrame last
// received in Draw.
type nesGame struct {
	board  *board.Board
	window *graphics.EbitengineWindow
	ports  [2]portKeymap
	sink   *audioSink
	player *audio.Player

	lastFrameAt time.Time
	closeNext   bool
}

func newNESGame(b *board.Board, cfg *hostcfg.Config, win *graphics.EbitengineWindow) *nesGame {
	g := &nesGame{
		board:  b,
		window: win,
		ports:  [2]portKeymap{newPortKeymap(cfg.Input.Player1Keys), newPortKeymap(cfg.Input.Player2Keys)},
		sink:   newAudioSink(cfg.Audio.BufferSize),
	}
	if cfg.Audio.Enabled {
		ctx := audio.CurrentContext()
		if ctx == nil {
			ctx = audio.NewContext(cfg.Audio.SampleRate)
		}
		if player, err := ctx.NewPlayer(g.sink); err == nil {
			g.player = player
			g.player.Play()
		}
	}
	return g
}

// HandleFrameRender records when the just-finished frame was simulated.
func (g *nesGame) HandleFrameRender(frameTimeSeconds float64) {
	g.lastFrameAt = time.Now()
}

// HandleVideoFrame pushes one rendered frame into the ebiten window.
func (g *nesGame) HandleVideoFrame(pixels []uint8) {
	_ = g.window.RenderFrame(pixels, g.board.PPU.Emphasis())
}

// HandleAudioSample forwards one synthesized sample to the playback
// ring; see audio.go for why this is presently unreached.
func (g *nesGame) HandleAudioSample(sample int16) {
	g.sink.Push(sample)
}

// HandleJam surfaces a CPU jam as the panic-style event a host must
// report rather than silently stall; this front end logs it and closes
// the window on the next Update.
func (g *nesGame) HandleJam(event neserr.JamEvent) {
	log.Printf("CPU jammed: opcode $%02X at $%04X", event.Opcode, event.PC)
	g.closeNext = true
}

// PollInput answers a controller shift-register reload for port (0 or 1).
func (g *nesGame) PollInput(port int) uint8 {
	if port < 0 || port > 1 {
		return 0
	}
	return g.ports[port].poll()
}

// Update advances the emulation by one video frame's worth of cycles.
func (g *nesGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.closeNext = true
	}
	if g.closeNext {
		g.window.RequestClose()
		return ebiten.Termination
	}
	g.board.RunCycles(cyclesPerVideoFrame)
	return nil
}

// Draw presents the window's backing image, scaled to fill the screen.
func (g *nesGame) Draw(screen *ebiten.Image) {
	img := g.window.Image()
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/256, float64(sh)/240)
	screen.DrawImage(img, op)
}

// Layout reports the logical screen size ebiten scales Draw's output to.
func (g *nesGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// cyclesPerVideoFrame approximates one NTSC video frame's CPU cycles
// (29780.5, rounded) for per-Update pacing; the board's own PPU/CPU
// ratio accumulator is the source of truth for exact timing.
const cyclesPerVideoFrame = 29781

func describeWindow(cfg *hostcfg.Config) string {
	w, h := cfg.WindowResolution()
	return fmt.Sprintf("%dx%d", w, h)
}
