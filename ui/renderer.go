package ui

import (
	"fmt"
	"strings"

	"sn8ke/game/types"
	"sn8ke/hal"
)

const (
	speedLabel = "speed: "
	speedUnit  = " kp/h"
)

var (
	Background  = hal.Black
	BorderColor = hal.Red
	BodyColor   = hal.Gray
	HeadColor   = hal.White
	FoodColor   = hal.Green
)

// Renderer draws the game on a Display. It only issues rectangle fills and text
// writes, so it works the same on every backend.
type Renderer struct {
	display hal.Display
	headerX int
	headerY int
}

func NewRenderer(d hal.Display) *Renderer {
	return &Renderer{display: d}
}

func (r *Renderer) Clear() {
	r.display.FillRect(0, 0, r.display.Width(), r.display.Height(), Background)
}

// Border paints the outer ring of cells and clears the interior. It also pins
// the speed header just above the plan.
func (r *Renderer) Border(plan types.Plan) {
	b := plan.Bounds()
	cs := plan.CellSize
	r.display.FillRect(b.Min.X, b.Min.Y, b.Dx(), b.Dy(), BorderColor)
	r.display.FillRect(b.Min.X+cs, b.Min.Y+cs, b.Dx()-2*cs, b.Dy()-2*cs, Background)

	r.headerX = plan.X0
	r.headerY = max(0, plan.Y0-r.display.FontHeight()-2)
}

func (r *Renderer) Cell(plan types.Plan, c types.Cell, col hal.Color) {
	px := plan.ToPixel(c)
	r.display.FillRect(px.Min.X, px.Min.Y, px.Dx(), px.Dy(), col)
}

// Speed writes the whole header line.
func (r *Renderer) Speed(speed float64) {
	r.display.SetCursor(r.headerX, r.headerY)
	r.display.WriteText(fmt.Sprintf("%s%5.1f%s", speedLabel, speed, speedUnit))
}

// SpeedUpdate rewrites only the number of a header drawn by Speed.
func (r *Renderer) SpeedUpdate(speed float64) {
	r.display.SetCursor(r.headerX+len(speedLabel)*r.display.FontMaxWidth(), r.headerY)
	r.display.WriteText(fmt.Sprintf("%5.1f", speed))
}

func (r *Renderer) Centered(text string, y int) {
	w := len([]rune(text)) * r.display.FontMaxWidth()
	r.display.SetCursor(max(0, (r.display.Width()-w)/2), y)
	r.display.WriteText(text)
}

// Crash prints the end of game summary over the plan.
func (r *Renderer) Crash(cause types.CollisionType, topSpeed float64) {
	fh := r.display.FontHeight()
	wide := fh + fh/2
	y := r.display.Height() * 5 / 16

	title, hint := "You crashed!", "Wear a helmet!"
	if cause == types.SelfCollision {
		title, hint = "You ate yourself!", "Mind the tail!"
	}

	r.Centered(title, y)
	y += wide
	r.Centered(hint, y)
	y += wide
	r.Centered("top speed", y)
	y += fh
	r.Centered(fmt.Sprintf("%.2f", topSpeed), y)
	y += fh
	r.Centered("kilopixels per hour", y)
}

// Alert clears the screen and shows msg wrapped to the display width.
func (r *Renderer) Alert(msg string) {
	r.Clear()
	cols := max(1, r.display.Width()/r.display.FontMaxWidth())
	lines := wrap(msg, cols)
	fh := r.display.FontHeight()
	y := max(0, (r.display.Height()-len(lines)*fh)/2)
	for _, l := range lines {
		r.Centered(l, y)
		y += fh
	}
}

func (r *Renderer) Splash(title string) {
	r.Clear()
	r.Centered(title, r.display.Height()/3)
}

func wrap(s string, cols int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		for len([]rune(word)) > cols {
			if cur.Len() > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			rs := []rune(word)
			lines = append(lines, string(rs[:cols]))
			word = string(rs[cols:])
		}
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(word)) > cols {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
