// Package hal describes the device the game runs on: a pixel display, three
// momentary buttons, a millisecond clock and a way to restart the device.
//
// Backends under backend/ implement Device for a desktop window, a terminal and
// real SPI/GPIO hardware.
package hal

import (
	"image/color"
)

// Color is what every backend works in; each converts to its own format.
type Color = color.RGBA

// Display is a pixel surface with a single fixed-pitch font.
type Display interface {
	Width() int
	Height() int
	FillRect(x, y, w, h int, c Color)
	// SetCursor moves the top-left corner of the next WriteText.
	SetCursor(x, y int)
	WriteText(s string)
	FontMaxWidth() int
	FontHeight() int
}

type Button int

const (
	ButtonDown Button = iota
	ButtonUp
	ButtonEnter
)

func (b Button) String() string {
	switch b {
	case ButtonDown:
		return "down"
	case ButtonUp:
		return "up"
	case ButtonEnter:
		return "enter"
	default:
		return "unknown"
	}
}

// Buttons samples the current state of the physical buttons.
type Buttons interface {
	Pressed(b Button) bool
}

// Clock is a wrapping millisecond counter plus a blocking sleep. Backends redraw
// while sleeping, since that is the only point the game yields.
type Clock interface {
	Ticks() uint32
	Sleep(ms int)
}

// Resetter hard-restarts the device.
type Resetter interface {
	Reset() error
}

type Device interface {
	Display
	Buttons
	Clock
	Resetter
	Close() error
}

// Palette
var (
	Black = color.RGBA{A: 0xff}
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Gray  = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	Red   = color.RGBA{R: 0xff, A: 0xff}
	Green = color.RGBA{G: 0xff, A: 0xff}
)
