package hal

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Framebuffer is an in-memory Display. Backends that can only push whole
// images (an OLED over SPI, a raylib texture) draw into it and flush it while
// the game sleeps.
type Framebuffer struct {
	img    *image.RGBA
	face   *basicfont.Face
	cursor image.Point
	dirty  bool

	TextColor      color.RGBA
	TextBackground color.RGBA
}

func NewFramebuffer(w, h int) *Framebuffer {
	fb := &Framebuffer{
		img:            image.NewRGBA(image.Rect(0, 0, w, h)),
		face:           basicfont.Face7x13,
		TextColor:      White,
		TextBackground: Black,
	}
	fb.FillRect(0, 0, w, h, Black)
	return fb
}

func (fb *Framebuffer) Width() int {
	return fb.img.Bounds().Dx()
}

func (fb *Framebuffer) Height() int {
	return fb.img.Bounds().Dy()
}

func (fb *Framebuffer) FillRect(x, y, w, h int, c color.RGBA) {
	draw.Draw(fb.img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, draw.Src)
	fb.dirty = true
}

func (fb *Framebuffer) SetCursor(x, y int) {
	fb.cursor = image.Pt(x, y)
}

// WriteText paints s on an opaque background so it can overwrite earlier text,
// then leaves the cursor after the last glyph.
func (fb *Framebuffer) WriteText(s string) {
	adv := fb.FontMaxWidth()
	fb.FillRect(fb.cursor.X, fb.cursor.Y, adv*len([]rune(s)), fb.FontHeight(), fb.TextBackground)

	d := font.Drawer{
		Dst:  fb.img,
		Src:  image.NewUniform(fb.TextColor),
		Face: fb.face,
		Dot:  fixed.P(fb.cursor.X, fb.cursor.Y+fb.face.Ascent),
	}
	d.DrawString(s)
	fb.cursor.X = d.Dot.X.Round()
	fb.dirty = true
}

func (fb *Framebuffer) FontMaxWidth() int {
	return fb.face.Advance
}

func (fb *Framebuffer) FontHeight() int {
	return fb.face.Height
}

func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// TakeDirty reports whether anything was drawn since the previous call.
func (fb *Framebuffer) TakeDirty() bool {
	d := fb.dirty
	fb.dirty = false
	return d
}
