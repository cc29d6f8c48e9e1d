package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"gones/internal/hostcfg"
	"gones/internal/input"
)

// ebitenKeyByName resolves the handful of key names hostcfg's default
// mapping uses; an unrecognized name maps to no key rather than failing
// config load.
var ebitenKeyByName = map[string]ebiten.Key{
	"up": ebiten.KeyArrowUp, "down": ebiten.KeyArrowDown,
	"left": ebiten.KeyArrowLeft, "right": ebiten.KeyArrowRight,
	"w": ebiten.KeyW, "a": ebiten.KeyA, "s": ebiten.KeyS, "d": ebiten.KeyD,
	"j": ebiten.KeyJ, "k": ebiten.KeyK, "n": ebiten.KeyN, "m": ebiten.KeyM,
	"enter": ebiten.KeyEnter, "space": ebiten.KeySpace,
	"rightshift":   ebiten.KeyShiftRight,
	"rightcontrol": ebiten.KeyControlRight,
	"escape":       ebiten.KeyEscape,
}

// boundKey is a resolved key binding: a key name with no known ebiten
// key simply never contributes to the mask.
type boundKey struct {
	key   ebiten.Key
	bound bool
}

func resolveKey(name string) boundKey {
	key, ok := ebitenKeyByName[strings.ToLower(name)]
	return boundKey{key: key, bound: ok}
}

func (b boundKey) pressed() bool {
	return b.bound && ebiten.IsKeyPressed(b.key)
}

// portKeymap is one port's NES-button-to-ebiten-key assignment, built
// once from hostcfg.KeyMapping at startup.
type portKeymap struct {
	up, down, left, right, a, b, start, selectKey boundKey
}

func newPortKeymap(m hostcfg.KeyMapping) portKeymap {
	return portKeymap{
		up: resolveKey(m.Up), down: resolveKey(m.Down),
		left: resolveKey(m.Left), right: resolveKey(m.Right),
		a: resolveKey(m.A), b: resolveKey(m.B),
		start: resolveKey(m.Start), selectKey: resolveKey(m.Select),
	}
}

// poll reads the live state of every mapped key into the standard NES
// controller bit order input.Controller expects.
func (k portKeymap) poll() uint8 {
	var mask uint8
	set := func(b boundKey, bit input.Button) {
		if b.pressed() {
			mask |= uint8(bit)
		}
	}
	set(k.a, input.A)
	set(k.b, input.B)
	set(k.selectKey, input.Select)
	set(k.start, input.Start)
	set(k.up, input.Up)
	set(k.down, input.Down)
	set(k.left, input.Left)
	set(k.right, input.Right)
	return mask
}
