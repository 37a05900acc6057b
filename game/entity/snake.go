package entity

import (
	"sn8ke/game/types"
)

// InitialGrowth lets the snake lengthen visibly at the start even when the
// first food is only worth one cell.
const InitialGrowth = 5

type Snake struct {
	body          []types.Cell
	pendingGrowth int
}

// NewSnake creates a two cell snake heading right from start.
func NewSnake(start types.Cell) *Snake {
	return &Snake{
		body:          []types.Cell{start, start.Add(types.Bearings[0])},
		pendingGrowth: InitialGrowth,
	}
}

// Advance moves the head one cell after applying turn and returns the new head.
// The tail stays in place while growth is pending.
func (s *Snake) Advance(turn types.Turn) types.Cell {
	head := s.Head()
	idx := types.BearingIndex(s.Heading())
	if idx < 0 {
		// body is always contiguous, this only guards hand-built snakes
		idx = 0
	}
	newHead := head.Add(types.Bearings[types.Rotate(idx, turn)])
	s.body = append(s.body, newHead)

	if s.pendingGrowth > 0 {
		s.pendingGrowth--
	} else {
		s.body = s.body[1:]
	}
	return newHead
}

// Heading is the vector from the second to last cell to the head.
func (s *Snake) Heading() types.Cell {
	return s.Head().Sub(s.body[len(s.body)-2])
}

// Feed queues n cells of growth.
func (s *Snake) Feed(n int) {
	if n > 0 {
		s.pendingGrowth += n
	}
}

func (s *Snake) PendingGrowth() int {
	return s.pendingGrowth
}

func (s *Snake) Head() types.Cell {
	return s.body[len(s.body)-1]
}

func (s *Snake) Tail() types.Cell {
	return s.body[0]
}

func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the cells, tail first.
func (s *Snake) Body() []types.Cell {
	out := make([]types.Cell, len(s.body))
	copy(out, s.body)
	return out
}

func (s *Snake) Contains(c types.Cell) bool {
	for _, part := range s.body {
		if part == c {
			return true
		}
	}
	return false
}

// Occupies reports whether c is covered by any cell other than the head.
func (s *Snake) Occupies(c types.Cell) bool {
	for _, part := range s.body[:len(s.body)-1] {
		if part == c {
			return true
		}
	}
	return false
}
