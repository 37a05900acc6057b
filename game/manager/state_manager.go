package manager

const (
	DefaultDelayMs = 150
	DefaultStepMs  = 9
)

// StateManager tracks the tick delay and the speed derived from it.
type StateManager struct {
	delayMs  int
	stepMs   int
	cellSize int
	eaten    int
	ticks    int
}

func NewStateManager(delayMs, stepMs, cellSize int) *StateManager {
	if delayMs < 0 {
		delayMs = 0
	}
	if stepMs < 0 {
		stepMs = 0
	}
	return &StateManager{
		delayMs:  delayMs,
		stepMs:   stepMs,
		cellSize: cellSize,
	}
}

// SpeedUp shortens the delay by one step, never below zero.
func (sm *StateManager) SpeedUp() int {
	sm.eaten++
	sm.delayMs -= sm.stepMs
	if sm.delayMs < 0 {
		sm.delayMs = 0
	}
	return sm.delayMs
}

func (sm *StateManager) Tick() {
	sm.ticks++
}

func (sm *StateManager) Delay() int {
	return sm.delayMs
}

func (sm *StateManager) Eaten() int {
	return sm.eaten
}

func (sm *StateManager) Ticks() int {
	return sm.ticks
}

// Speed is in kilopixels per hour: one cell of cellSize pixels per tick.
func (sm *StateManager) Speed() float64 {
	return DelayToSpeed(sm.delayMs, sm.cellSize)
}

// DelayToSpeed treats a zero delay as one millisecond so the top speed stays finite.
func DelayToSpeed(delayMs, cellSize int) float64 {
	if delayMs < 1 {
		delayMs = 1
	}
	return 3600 * float64(cellSize) / float64(delayMs)
}
