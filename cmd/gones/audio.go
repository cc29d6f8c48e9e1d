package main

import (
	"encoding/binary"
	"sync"
)

// audioSink buffers APU samples into a ring the ebiten audio player
// reads from on its own goroutine. The APU's frame counter is an
// IRQ-only stub (it does not synthesize waveforms), so in practice
// Push is never called; this exists so wiring a future mixer only
// means calling Push, not building a new playback path.
type audioSink struct {
	mu   sync.Mutex
	ring []byte
	pos  int
}

func newAudioSink(capacitySamples int) *audioSink {
	return &audioSink{ring: make([]byte, capacitySamples*2)}
}

// Push appends one mono 16-bit sample, dropping the oldest buffered
// sample if the ring is full.
func (s *audioSink) Push(sample int16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(sample))
	s.ring = append(s.ring, buf[0], buf[1])
	if len(s.ring)-s.pos > cap(s.ring) {
		s.pos += 2
	}
}

// Read implements io.Reader for ebiten/v2/audio.Player, draining
// whatever has been pushed and emitting silence otherwise.
func (s *audioSink) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	available := s.ring[s.pos:]
	n := copy(p, available)
	s.pos += n
	if s.pos == len(s.ring) {
		s.ring = s.ring[:0]
		s.pos = 0
	}
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}
