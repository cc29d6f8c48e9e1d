// Package graphics abstracts the pixel-presentation layer from the
// engine core. The teacher carried a three-way Backend/Window split
// (Ebitengine, headless, terminal); this repo keeps the interface shape
// but trims it to the two backends this spec's scope actually exercises
// (the terminal/ASCII renderer is dropped, see DESIGN.md).
package graphics

// Config is what a Backend needs to open its window.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Backend creates and tears down a Window for one graphics toolkit.
type Backend interface {
	Initialize(cfg Config) error
	CreateWindow() (Window, error)
	Cleanup() error
	Name() string
}

// Window presents successive NES frames and reports whether the user
// asked to close it.
type Window interface {
	SetTitle(title string)
	ShouldClose() bool
	// RenderFrame presents one frame: 256*240 6-bit NES palette indices,
	// plus the 3-bit emphasis/tint selector active while it was drawn.
	RenderFrame(pixels []uint8, emphasis uint8) error
	Cleanup() error
}
