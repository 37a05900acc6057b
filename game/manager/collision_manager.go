package manager

import (
	"sn8ke/game/entity"
	"sn8ke/game/types"
)

type CollisionManager struct {
	plan types.Plan
}

func NewCollisionManager(plan types.Plan) *CollisionManager {
	return &CollisionManager{
		plan: plan,
	}
}

// CheckCollision inspects the snake right after it advanced. Running into its
// own body wins over hitting the wall when both happen on the same move.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake) types.CollisionType {
	head := snake.Head()
	if cm.isSelfCollision(snake, head) {
		return types.SelfCollision
	}
	if cm.isWallCollision(head) {
		return types.WallCollision
	}
	return types.NoCollision
}

// isWallCollision reports whether pos is on or past the border ring
func (cm *CollisionManager) isWallCollision(pos types.Cell) bool {
	return !cm.plan.Interior(pos)
}

// isSelfCollision reports whether the new head landed on an older body cell
func (cm *CollisionManager) isSelfCollision(snake *entity.Snake, head types.Cell) bool {
	return snake.Occupies(head)
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Cell, food types.Cell) bool {
	return pos == food
}
