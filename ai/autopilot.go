// Package ai drives the buttons with a Q-learning player.
package ai

import (
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"

	"sn8ke/game/types"
	"sn8ke/hal"
)

// Relative actions: turn left, keep going, turn right.
const (
	ActionLeft = iota
	ActionStraight
	ActionRight
	numActions
)

const (
	rewardFood    = 10.0
	rewardDeath   = -10.0
	rewardCloser  = 0.1
	rewardFarther = -0.15
)

// Autopilot observes the board every tick and answers button reads with the
// turn it picked. After a crash it presses Enter to start the next game.
type Autopilot struct {
	agent  *Agent
	logger *log.Logger

	turn    types.Turn
	crashed bool

	// previous decision, rewarded on the next observation
	hasPrev   bool
	prevState string
	prevAct   int
	prevEaten int
	prevDist  int

	games int
	best  int
}

func NewAutopilot(rng *rand.Rand, logger *log.Logger) *Autopilot {
	if logger == nil {
		logger = log.Default()
	}
	return &Autopilot{
		agent:  NewAgent(numActions, 0.3, 0.9, rng),
		logger: logger.WithPrefix("autopilot"),
	}
}

// Agent exposes the learner, mostly for inspection.
func (p *Autopilot) Agent() *Agent {
	return p.agent
}

func (p *Autopilot) Observe(v types.View) {
	if len(v.Body) < 2 {
		return
	}
	if v.Cause != types.NoCollision {
		p.finish(v)
		return
	}

	p.crashed = false
	state := Encode(v)
	dist := manhattan(v.Body[len(v.Body)-1], v.Food)
	if p.hasPrev {
		var reward float64
		switch {
		case v.Eaten > p.prevEaten:
			reward = rewardFood
		case dist < p.prevDist:
			reward = rewardCloser
		default:
			reward = rewardFarther
		}
		p.agent.Update(p.prevState, p.prevAct, reward, state)
	}

	action := p.agent.Action(state)
	p.turn = types.Turn(action - 1)
	p.hasPrev = true
	p.prevState = state
	p.prevAct = action
	p.prevEaten = v.Eaten
	p.prevDist = dist
}

func (p *Autopilot) finish(v types.View) {
	if p.hasPrev {
		p.agent.Update(p.prevState, p.prevAct, rewardDeath, "")
	}
	p.agent.EndEpisode()
	p.games++
	p.best = max(p.best, v.Eaten)
	p.logger.Debug("episode finished",
		"game", p.games,
		"eaten", v.Eaten,
		"best", p.best,
		"cause", v.Cause,
		"epsilon", p.agent.Epsilon,
		"states", len(p.agent.QTable))

	p.hasPrev = false
	p.turn = types.Straight
	p.crashed = true
}

// Pressed maps the current decision onto the buttons: Down turns left, Up
// turns right. Enter reads as held once the last game has ended.
func (p *Autopilot) Pressed(b hal.Button) bool {
	switch b {
	case hal.ButtonDown:
		return p.turn == types.Left
	case hal.ButtonUp:
		return p.turn == types.Right
	case hal.ButtonEnter:
		return p.crashed
	}
	return false
}

// Encode reduces a view to the danger on the left, ahead and right of the
// head, plus where the food lies relative to the heading.
func Encode(v types.View) string {
	n := len(v.Body)
	head := v.Body[n-1]
	idx := types.BearingIndex(head.Sub(v.Body[n-2]))
	if idx < 0 {
		idx = 0
	}

	danger := func(t types.Turn) int {
		c := head.Add(types.Bearings[types.Rotate(idx, t)])
		if !v.Plan.Interior(c) {
			return 1
		}
		// the tail cell is about to move unless the snake grows, count it anyway
		for _, b := range v.Body[:n-1] {
			if b == c {
				return 1
			}
		}
		return 0
	}

	f := v.Food.Sub(head)
	ahead := sign(dot(f, types.Bearings[idx]))
	side := sign(dot(f, types.Bearings[types.Rotate(idx, types.Right)]))
	return fmt.Sprintf("%d%d%d:%d:%d", danger(types.Left), danger(types.Straight), danger(types.Right), ahead, side)
}

func dot(a, b types.Cell) int {
	return a.X*b.X + a.Y*b.Y
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func manhattan(a, b types.Cell) int {
	d := a.Sub(b)
	return abs(d.X) + abs(d.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
