//go:build !headless
// +build !headless

// Package graphics: Ebitengine-backed Backend/Window, the concern the
// teacher and bdwalton-gintendo both hand to
// github.com/hajimehoshi/ebiten/v2 for windowing and pixel presentation.
package graphics

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitengineBackend implements Backend over ebiten's global window state.
type EbitengineBackend struct {
	initialized bool
	cfg         Config
}

// NewEbitengineBackend creates an uninitialized ebiten backend.
func NewEbitengineBackend() *EbitengineBackend {
	return &EbitengineBackend{}
}

func (b *EbitengineBackend) Initialize(cfg Config) error {
	if b.initialized {
		return fmt.Errorf("graphics: ebitengine backend already initialized")
	}
	b.cfg = cfg
	b.initialized = true

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.VSync)
	return nil
}

func (b *EbitengineBackend) CreateWindow() (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("graphics: backend not initialized")
	}
	return &EbitengineWindow{
		title: b.cfg.Title,
		image: ebiten.NewImage(256, 240),
		rgba:  image.NewRGBA(image.Rect(0, 0, 256, 240)),
	}, nil
}

func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

func (b *EbitengineBackend) Name() string { return "ebitengine" }

// EbitengineWindow holds the off-screen image a caller's ebiten.Game
// draws each frame; it does not itself run the game loop, since ebiten
// requires RunGame to own that, so the frontend in cmd/gones owns the
// ebiten.Game and calls into this window's Image/RenderFrame/
// RequestClose.
type EbitengineWindow struct {
	title  string
	image  *ebiten.Image
	rgba   *image.RGBA
	closed bool
}

func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

func (w *EbitengineWindow) ShouldClose() bool { return w.closed }

// RenderFrame converts a 256*240 buffer of 6-bit NES palette indices
// (plus the active 3-bit emphasis selector) into the window's backing
// ebiten image.
func (w *EbitengineWindow) RenderFrame(pixels []uint8, emphasis uint8) error {
	if len(pixels) != 256*240 {
		return fmt.Errorf("graphics: frame buffer has %d pixels, want %d", len(pixels), 256*240)
	}
	for i, idx := range pixels {
		r, g, b := emphasisTint(idx, emphasis)
		w.rgba.SetRGBA(i%256, i/256, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	w.image.WritePixels(w.rgba.Pix)
	return nil
}

func (w *EbitengineWindow) Cleanup() error {
	w.closed = true
	return nil
}

// Image exposes the backing ebiten image for a caller's Draw method.
func (w *EbitengineWindow) Image() *ebiten.Image { return w.image }

// RequestClose marks the window closed, read back by ShouldClose; the
// caller's Update method should return ebiten.Termination once this is
// set.
func (w *EbitengineWindow) RequestClose() { w.closed = true }
