package manager

import (
	"golang.org/x/exp/rand"

	"sn8ke/game/entity"
	"sn8ke/game/types"
)

type FoodManager struct {
	plan         types.Plan
	food         entity.Food
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(plan types.Plan, rng *rand.Rand, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		plan:         plan,
		rng:          rng,
		collisionMgr: collisionMgr,
	}
}

// Place moves the food off the snake and returns its new cell.
func (fm *FoodManager) Place(snake *entity.Snake) types.Cell {
	fm.food.Place(snake, fm.plan, fm.rng)
	return fm.food.Cell
}

// SetFood replaces the current food without drawing a random cell.
func (fm *FoodManager) SetFood(f entity.Food) {
	fm.food = f
}

func (fm *FoodManager) IsPickup(head types.Cell) bool {
	return fm.collisionMgr.IsFoodCollision(head, fm.food.Cell)
}

func (fm *FoodManager) Cell() types.Cell {
	return fm.food.Cell
}

// Value is the growth granted by the current food.
func (fm *FoodManager) Value() int {
	return fm.food.Value
}
