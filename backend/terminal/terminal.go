// Package terminal runs the game in a terminal. Every character cell shows two
// vertically stacked pixels with the upper half block glyph.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"sn8ke/config"
	"sn8ke/hal"
)

const halfBlock = '▀'

var keys = map[tcell.Key]hal.Button{
	tcell.KeyDown:  hal.ButtonDown,
	tcell.KeyLeft:  hal.ButtonDown,
	tcell.KeyUp:    hal.ButtonUp,
	tcell.KeyRight: hal.ButtonUp,
	tcell.KeyEnter: hal.ButtonEnter,
}

var runes = map[rune]hal.Button{
	'j': hal.ButtonDown,
	'k': hal.ButtonUp,
	' ': hal.ButtonEnter,
}

// Device renders a pixel framebuffer on a tcell screen. Terminals report key
// presses but not releases, so each press is read as held exactly once, as
// long as it is read within the hold window.
type Device struct {
	*hal.SystemClock

	screen tcell.Screen
	fb     *hal.Framebuffer
	text   map[[2]int]rune
	cursor [2]int
	dirty  bool

	hold    time.Duration
	pending map[hal.Button]time.Time

	events chan tcell.Event
	quit   chan struct{}
	cancel context.CancelFunc
	logger *log.Logger
	closed bool
}

// Open initializes the terminal screen. q, Esc and Ctrl-C call cancel.
func Open(cfg config.TerminalConfig, logger *log.Logger, cancel context.CancelFunc) (*Device, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	return New(s, cfg, logger, cancel), nil
}

// New wraps an initialized screen.
func New(s tcell.Screen, cfg config.TerminalConfig, logger *log.Logger, cancel context.CancelFunc) *Device {
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()

	cols, rows := s.Size()
	d := &Device{
		SystemClock: hal.NewSystemClock(),
		screen:      s,
		fb:          hal.NewFramebuffer(cols, rows*2),
		text:        make(map[[2]int]rune),
		hold:        time.Duration(cfg.HoldMs) * time.Millisecond,
		pending:     make(map[hal.Button]time.Time),
		events:      make(chan tcell.Event, 100),
		quit:        make(chan struct{}),
		cancel:      cancel,
		logger:      logger.WithPrefix("terminal"),
	}
	go s.ChannelEvents(d.events, d.quit)
	d.logger.Debug("screen ready", "cols", cols, "rows", rows)
	return d
}

func (d *Device) Width() int {
	return d.fb.Width()
}

func (d *Device) Height() int {
	return d.fb.Height()
}

// FillRect paints pixels and drops any text under them.
func (d *Device) FillRect(x, y, w, h int, c hal.Color) {
	d.fb.FillRect(x, y, w, h, c)
	for row := y / 2; row <= (y+h-1)/2; row++ {
		for col := x; col < x+w; col++ {
			delete(d.text, [2]int{col, row})
		}
	}
}

func (d *Device) SetCursor(x, y int) {
	d.cursor = [2]int{x, y / 2}
}

func (d *Device) WriteText(s string) {
	for _, r := range s {
		d.text[d.cursor] = r
		d.cursor[0]++
	}
	d.dirty = true
}

// FontMaxWidth and FontHeight describe one character cell in pixels.
func (d *Device) FontMaxWidth() int {
	return 1
}

func (d *Device) FontHeight() int {
	return 2
}

func (d *Device) Pressed(b hal.Button) bool {
	d.drain()
	at, ok := d.pending[b]
	if !ok {
		return false
	}
	delete(d.pending, b)
	return time.Since(at) < d.hold
}

// Sleep shows pending changes, then handles input while waiting.
func (d *Device) Sleep(ms int) {
	if d.fb.TakeDirty() || d.dirty {
		d.present()
	}
	d.drain()
	d.SystemClock.Sleep(ms)
	d.drain()
}

func (d *Device) drain() {
	for {
		select {
		case ev := <-d.events:
			d.handle(ev)
		default:
			return
		}
	}
}

func (d *Device) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			d.cancel()
			return
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				d.cancel()
				return
			}
			if b, ok := runes[ev.Rune()]; ok {
				d.pending[b] = time.Now()
			}
			return
		}
		if b, ok := keys[ev.Key()]; ok {
			d.pending[b] = time.Now()
		}
	}
}

func (d *Device) present() {
	img := d.fb.Image()
	cols, rows := d.fb.Width(), d.fb.Height()/2
	textStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if r, ok := d.text[[2]int{col, row}]; ok {
				d.screen.SetContent(col, row, r, nil, textStyle)
				continue
			}
			top := img.RGBAAt(col, row*2)
			bottom := img.RGBAAt(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			d.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	d.screen.Show()
	d.dirty = false
}

// Reset restores the terminal and re-executes the program.
func (d *Device) Reset() error {
	d.logger.Warn("restarting")
	return hal.ExecReset{BeforeExec: func() { d.Close() }}.Reset()
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	close(d.quit)
	d.screen.Fini()
	return nil
}
