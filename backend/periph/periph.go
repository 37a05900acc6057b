// Package periph drives a real device: an SSD1306 OLED on SPI and three GPIO
// push buttons.
package periph

import (
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"sn8ke/config"
	"sn8ke/hal"
)

type Device struct {
	*hal.Framebuffer
	*hal.SystemClock

	port    spi.PortCloser
	oled    *ssd1306.Dev
	buttons map[hal.Button]gpio.PinIn
	pressed gpio.Level

	logger *log.Logger
}

func Open(cfg config.PeriphConfig, logger *log.Logger) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to init host: %w", err)
	}

	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port %q: %w", cfg.SPI, err)
	}
	dc := gpioreg.ByName(cfg.DCPin)
	if dc == nil {
		port.Close()
		return nil, fmt.Errorf("no GPIO pin named %q", cfg.DCPin)
	}
	oled, err := ssd1306.NewSPI(port, dc, &ssd1306.Opts{W: cfg.Width, H: cfg.Height})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to init display: %w", err)
	}

	d := &Device{
		Framebuffer: hal.NewFramebuffer(cfg.Width, cfg.Height),
		SystemClock: hal.NewSystemClock(),
		port:        port,
		oled:        oled,
		buttons:     make(map[hal.Button]gpio.PinIn),
		pressed:     gpio.High,
		logger:      logger.WithPrefix("periph"),
	}
	if cfg.ActiveLow {
		d.pressed = gpio.Low
	}

	pins := map[hal.Button]string{
		hal.ButtonDown:  cfg.Buttons.Down,
		hal.ButtonUp:    cfg.Buttons.Up,
		hal.ButtonEnter: cfg.Buttons.Enter,
	}
	pull := gpio.PullDown
	if cfg.ActiveLow {
		pull = gpio.PullUp
	}
	for b, name := range pins {
		p := gpioreg.ByName(name)
		if p == nil {
			d.Close()
			return nil, fmt.Errorf("no GPIO pin named %q for button %s", name, b)
		}
		if err := p.In(pull, gpio.NoEdge); err != nil {
			d.Close()
			return nil, fmt.Errorf("failed to configure button %s: %w", b, err)
		}
		d.buttons[b] = p
	}

	d.logger.Info("device ready", "display", oled.String(), "width", cfg.Width, "height", cfg.Height)
	return d, nil
}

func (d *Device) Pressed(b hal.Button) bool {
	p, ok := d.buttons[b]
	return ok && p.Read() == d.pressed
}

// Sleep pushes the framebuffer to the panel if anything changed.
func (d *Device) Sleep(ms int) {
	if d.TakeDirty() && d.oled != nil {
		if err := d.oled.Draw(d.oled.Bounds(), d.Image(), image.Point{}); err != nil {
			d.logger.Warn("failed to draw frame", "err", err)
		}
	}
	d.SystemClock.Sleep(ms)
}

// Reset reboots the board.
func (d *Device) Reset() error {
	d.logger.Warn("rebooting")
	d.Close()
	return hal.RebootReset{}.Reset()
}

func (d *Device) Close() error {
	if d.oled != nil {
		if err := d.oled.Halt(); err != nil {
			d.logger.Warn("failed to halt display", "err", err)
		}
		d.oled = nil
	}
	if d.port != nil {
		err := d.port.Close()
		d.port = nil
		return err
	}
	return nil
}
