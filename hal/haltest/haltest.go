// Package haltest provides in-memory hal implementations for tests.
package haltest

import (
	"sn8ke/hal"
)

// Display is a Framebuffer that also records every string written.
type Display struct {
	*hal.Framebuffer
	Texts []string
}

func NewDisplay(w, h int) *Display {
	return &Display{Framebuffer: hal.NewFramebuffer(w, h)}
}

func (d *Display) WriteText(s string) {
	d.Texts = append(d.Texts, s)
	d.Framebuffer.WriteText(s)
}

// Buttons reports Held, unless Func is set, in which case Func decides.
type Buttons struct {
	Held  map[hal.Button]bool
	Func  func(b hal.Button) bool
	Polls int
}

func NewButtons() *Buttons {
	return &Buttons{Held: make(map[hal.Button]bool)}
}

func (b *Buttons) Pressed(btn hal.Button) bool {
	b.Polls++
	if b.Func != nil {
		return b.Func(btn)
	}
	return b.Held[btn]
}

// Clock only moves when slept on or advanced by hand.
type Clock struct {
	Now     uint32
	Sleeps  []int
	OnSleep func(ms int)
}

func (c *Clock) Ticks() uint32 {
	return c.Now
}

func (c *Clock) Sleep(ms int) {
	c.Sleeps = append(c.Sleeps, ms)
	if ms > 0 {
		c.Now += uint32(ms)
	}
	if c.OnSleep != nil {
		c.OnSleep(ms)
	}
}

// Advance simulates time spent working.
func (c *Clock) Advance(ms int) {
	c.Now += uint32(ms)
}

// Device bundles the fakes into a hal.Device.
type Device struct {
	*Display
	*Buttons
	*Clock
	Resets   int
	ResetErr error
	Closed   bool
}

func NewDevice(w, h int) *Device {
	return &Device{
		Display: NewDisplay(w, h),
		Buttons: NewButtons(),
		Clock:   &Clock{},
	}
}

func (d *Device) Reset() error {
	d.Resets++
	return d.ResetErr
}

func (d *Device) Close() error {
	d.Closed = true
	return nil
}
