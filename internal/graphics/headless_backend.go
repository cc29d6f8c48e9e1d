package graphics

// HeadlessBackend renders nowhere; it exists for integration tests and
// hosts that only want SaveState/batch-frame rendering, e.g. a CI smoke
// test that drives a board without a display attached.
type HeadlessBackend struct {
	initialized bool
	cfg         Config
}

// NewHeadlessBackend creates an uninitialized headless backend.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{}
}

func (b *HeadlessBackend) Initialize(cfg Config) error {
	b.cfg = cfg
	b.initialized = true
	return nil
}

func (b *HeadlessBackend) CreateWindow() (Window, error) {
	return &headlessWindow{}, nil
}

func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

func (b *HeadlessBackend) Name() string { return "headless" }

// headlessWindow keeps the most recent frame so a test can assert on it
// without a real display.
type headlessWindow struct {
	title       string
	closed      bool
	frameCount  int
	lastFrame   []uint8
	lastTint    uint8
}

func (w *headlessWindow) SetTitle(title string) { w.title = title }

func (w *headlessWindow) ShouldClose() bool { return w.closed }

func (w *headlessWindow) RenderFrame(pixels []uint8, emphasis uint8) error {
	w.frameCount++
	w.lastFrame = append(w.lastFrame[:0], pixels...)
	w.lastTint = emphasis
	return nil
}

func (w *headlessWindow) Cleanup() error {
	w.closed = true
	return nil
}

// LastFrame returns a copy of the most recently rendered frame, for test
// assertions.
func (w *headlessWindow) LastFrame() []uint8 {
	out := make([]uint8, len(w.lastFrame))
	copy(out, w.lastFrame)
	return out
}

// FrameCount reports how many frames have been rendered so far.
func (w *headlessWindow) FrameCount() int { return w.frameCount }

// Close requests the window stop on the next ShouldClose check, letting
// a test loop terminate itself.
func (w *headlessWindow) Close() { w.closed = true }
