package types

import (
	"errors"
	"image"
)

var (
	ErrPlanTooSmall    = errors.New("plan must be at least 3x3 cells")
	ErrInvalidCellSize = errors.New("cell size must be positive")
)

// MinPlanSize leaves room for a one cell border around a one cell interior.
const MinPlanSize = 3

// Cell is a position on the plan in grid units
type Cell struct {
	X, Y int
}

func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y}
}

// Turn is a heading change relative to the current bearing
type Turn int

const (
	Left     Turn = -1
	Straight Turn = 0
	Right    Turn = 1
)

func (t Turn) String() string {
	switch t {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "straight"
	}
}

// Bearings in clockwise order, starting east.
var Bearings = [4]Cell{
	{X: 1, Y: 0},  // right
	{X: 0, Y: 1},  // down
	{X: -1, Y: 0}, // left
	{X: 0, Y: -1}, // up
}

// BearingIndex returns the position of dir in Bearings, or -1.
func BearingIndex(dir Cell) int {
	for i, b := range Bearings {
		if b == dir {
			return i
		}
	}
	return -1
}

// Rotate applies t to the bearing at index i. The result is always in [0,4).
func Rotate(i int, t Turn) int {
	n := len(Bearings)
	return ((i+int(t))%n + n) % n
}

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

// Plan is the playable area. It maps grid cells to display pixels.
type Plan struct {
	X0, Y0         int
	PixelW, PixelH int
	CellSize       int
}

// NewPlan builds a plan whose top-left pixel is (x0, y0) and which spans w by h
// pixels. Pixels left over by the integer division are unused.
func NewPlan(x0, y0, w, h, cellSize int) (Plan, error) {
	if cellSize <= 0 {
		return Plan{}, ErrInvalidCellSize
	}
	p := Plan{X0: x0, Y0: y0, PixelW: w, PixelH: h, CellSize: cellSize}
	if p.Width() < MinPlanSize || p.Height() < MinPlanSize {
		return Plan{}, ErrPlanTooSmall
	}
	return p, nil
}

// Width in cells, border included.
func (p Plan) Width() int {
	return p.PixelW / p.CellSize
}

// Height in cells, border included.
func (p Plan) Height() int {
	return p.PixelH / p.CellSize
}

// ToPixel returns the display rectangle covered by c.
func (p Plan) ToPixel(c Cell) image.Rectangle {
	x := p.X0 + c.X*p.CellSize
	y := p.Y0 + c.Y*p.CellSize
	return image.Rect(x, y, x+p.CellSize, y+p.CellSize)
}

// Bounds is the pixel rectangle of the whole grid, border ring included.
func (p Plan) Bounds() image.Rectangle {
	return image.Rect(p.X0, p.Y0, p.X0+p.Width()*p.CellSize, p.Y0+p.Height()*p.CellSize)
}

// Interior reports whether c lies strictly inside the border ring.
func (p Plan) Interior(c Cell) bool {
	return c.X > 0 && c.X < p.Width()-1 && c.Y > 0 && c.Y < p.Height()-1
}

// Center is the cell the snake starts from.
func (p Plan) Center() Cell {
	return Cell{X: p.Width() / 2, Y: p.Height() / 2}
}

// View is a read-only snapshot of a running game, handed to observers.
type View struct {
	Plan  Plan
	Body  []Cell
	Food  Cell
	Eaten int
	Cause CollisionType
}
