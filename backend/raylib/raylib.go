// Package raylib runs the game in a desktop window.
package raylib

import (
	"context"
	"errors"
	"image/color"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"sn8ke/config"
	"sn8ke/hal"
)

func init() {
	// window calls must stay on the main thread
	runtime.LockOSThread()
}

var keys = map[hal.Button][]int32{
	hal.ButtonDown:  {rl.KeyDown, rl.KeyLeft},
	hal.ButtonUp:    {rl.KeyUp, rl.KeyRight},
	hal.ButtonEnter: {rl.KeyEnter, rl.KeySpace},
}

// Device is a window showing a scaled framebuffer. Arrow keys and Enter act
// as the three buttons.
type Device struct {
	*hal.Framebuffer
	*hal.SystemClock

	scale   float32
	frameMs int

	texture   rl.Texture2D
	pixels    []color.RGBA
	lastFrame time.Time

	cancel context.CancelFunc
	logger *log.Logger
	closed bool
}

// Open creates the window. cancel is called once the window is asked to close.
func Open(cfg config.RaylibConfig, title string, logger *log.Logger, cancel context.CancelFunc) (*Device, error) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Width*cfg.Scale), int32(cfg.Height*cfg.Scale), title)
	if !rl.IsWindowReady() {
		return nil, errors.New("failed to open window")
	}
	rl.SetExitKey(rl.KeyEscape)

	fb := hal.NewFramebuffer(cfg.Width, cfg.Height)
	img := rl.NewImageFromImage(fb.Image())
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	fps := max(cfg.FPS, 1)
	d := &Device{
		Framebuffer: fb,
		SystemClock: hal.NewSystemClock(),
		scale:       float32(cfg.Scale),
		frameMs:     1000 / fps,
		texture:     texture,
		pixels:      make([]color.RGBA, cfg.Width*cfg.Height),
		cancel:      cancel,
		logger:      logger.WithPrefix("raylib"),
	}
	d.logger.Info("window opened", "width", cfg.Width, "height", cfg.Height, "scale", cfg.Scale)
	return d, nil
}

func (d *Device) Pressed(b hal.Button) bool {
	for _, k := range keys[b] {
		if rl.IsKeyDown(k) {
			return true
		}
	}
	return false
}

// Sleep presents the framebuffer and keeps the window responsive for ms.
func (d *Device) Sleep(ms int) {
	deadline := time.Now().Add(time.Duration(max(ms, 0)) * time.Millisecond)
	for {
		if d.TakeDirty() || time.Since(d.lastFrame) >= time.Duration(d.frameMs)*time.Millisecond {
			d.present()
		} else {
			rl.PollInputEvents()
		}
		if rl.WindowShouldClose() {
			d.cancel()
			return
		}

		left := time.Until(deadline)
		if left <= 0 {
			return
		}
		time.Sleep(min(left, time.Duration(d.frameMs)*time.Millisecond))
	}
}

func (d *Device) present() {
	img := d.Image()
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.pixels[y*w+x] = img.RGBAAt(x, y)
		}
	}
	rl.UpdateTexture(d.texture, d.pixels)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTextureEx(d.texture, rl.NewVector2(0, 0), 0, d.scale, rl.White)
	rl.EndDrawing()
	d.lastFrame = time.Now()
}

// Reset re-executes the program, which reopens the window.
func (d *Device) Reset() error {
	d.logger.Warn("restarting")
	return hal.ExecReset{BeforeExec: func() { d.Close() }}.Reset()
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	rl.UnloadTexture(d.texture)
	rl.CloseWindow()
	return nil
}
