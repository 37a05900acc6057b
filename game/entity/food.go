package entity

import (
	"golang.org/x/exp/rand"

	"sn8ke/game/types"
)

// Food is the single pickup on the plan. Value grows by one on every placement.
type Food struct {
	Cell  types.Cell
	Value int
}

// Place moves the food to a random interior cell not covered by snake.
// There is no retry bound: a plan with no free interior cell never returns.
func (f *Food) Place(snake *Snake, plan types.Plan, rng *rand.Rand) {
	for {
		c := types.Cell{
			X: rng.Intn(plan.Width()-2) + 1,
			Y: rng.Intn(plan.Height()-2) + 1,
		}
		if !snake.Contains(c) {
			f.Cell = c
			break
		}
	}
	f.Value++
}
