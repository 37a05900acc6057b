package ai

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"

	"sn8ke/game/types"
	"sn8ke/hal"
)

func plan10(t *testing.T) types.Plan {
	t.Helper()
	p, err := types.NewPlan(0, 0, 10, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestEncode(t *testing.T) {
	plan := plan10(t)
	tests := []struct {
		name string
		body []types.Cell
		food types.Cell
		want string
	}{
		{
			name: "open board food ahead",
			body: []types.Cell{{X: 3, Y: 5}, {X: 4, Y: 5}},
			food: types.Cell{X: 7, Y: 5},
			want: "000:1:0",
		},
		{
			name: "wall ahead food behind on the right",
			body: []types.Cell{{X: 7, Y: 2}, {X: 8, Y: 2}},
			food: types.Cell{X: 2, Y: 6},
			want: "010:-1:1",
		},
		{
			name: "heading north against the top wall",
			body: []types.Cell{{X: 1, Y: 2}, {X: 1, Y: 1}},
			food: types.Cell{X: 5, Y: 1},
			want: "110:0:1",
		},
		{
			name: "own body on the left",
			body: []types.Cell{{X: 5, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 5}, {X: 5, Y: 5}},
			food: types.Cell{X: 5, Y: 8},
			want: "100:0:1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(types.View{Plan: plan, Body: tt.body, Food: tt.food})
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAgentUpdate(t *testing.T) {
	a := NewAgent(3, 0.5, 0.9, rand.New(rand.NewSource(1)))
	a.QTable["next"] = []float64{0, 2, 0}

	a.Update("s", 1, 1, "next")
	if got := a.QTable["s"][1]; math.Abs(got-1.4) > 1e-9 {
		t.Errorf("expected 1.4, got %f", got)
	}

	a.Update("t", 0, -4, "")
	if got := a.QTable["t"][0]; got != -2 {
		t.Errorf("expected terminal update -2, got %f", got)
	}
}

func TestAgentGreedy(t *testing.T) {
	a := NewAgent(3, 0.5, 0.9, rand.New(rand.NewSource(1)))
	a.Epsilon = 0
	a.QTable["s"] = []float64{-1, 0.5, 3}
	for i := 0; i < 10; i++ {
		if got := a.Action("s"); got != 2 {
			t.Fatalf("expected greedy action 2, got %d", got)
		}
	}
}

func TestEndEpisodeDecaysEpsilon(t *testing.T) {
	a := NewAgent(3, 0.5, 0.9, rand.New(rand.NewSource(1)))
	prev := a.Epsilon
	for i := 0; i < 500; i++ {
		a.EndEpisode()
		if a.Epsilon > prev {
			t.Fatalf("epsilon grew from %f to %f", prev, a.Epsilon)
		}
		prev = a.Epsilon
	}
	if a.Epsilon != a.MinEpsilon {
		t.Errorf("expected epsilon to settle at %f, got %f", a.MinEpsilon, a.Epsilon)
	}
}

func TestAutopilotButtons(t *testing.T) {
	p := NewAutopilot(rand.New(rand.NewSource(3)), log.New(io.Discard))
	p.agent.Epsilon = 0
	view := types.View{
		Plan: plan10(t),
		Body: []types.Cell{{X: 3, Y: 5}, {X: 4, Y: 5}},
		Food: types.Cell{X: 4, Y: 8},
	}
	p.agent.QTable[Encode(view)] = []float64{0, 0, 1}

	p.Observe(view)
	if !p.Pressed(hal.ButtonUp) || p.Pressed(hal.ButtonDown) {
		t.Errorf("expected a right turn on Up only")
	}
	if p.Pressed(hal.ButtonEnter) {
		t.Errorf("expected Enter released while playing")
	}

	view.Body = append(view.Body, types.Cell{X: 4, Y: 6})
	view.Cause = types.WallCollision
	p.Observe(view)
	if !p.Pressed(hal.ButtonEnter) {
		t.Errorf("expected Enter held after a crash")
	}
	if p.Pressed(hal.ButtonUp) || p.Pressed(hal.ButtonDown) {
		t.Errorf("expected steering released after a crash")
	}
	if p.agent.Episode != 1 {
		t.Errorf("expected one finished episode, got %d", p.agent.Episode)
	}
}

func TestAutopilotRewards(t *testing.T) {
	p := NewAutopilot(rand.New(rand.NewSource(3)), log.New(io.Discard))
	p.agent.Epsilon = 0
	plan := plan10(t)
	first := types.View{
		Plan: plan,
		Body: []types.Cell{{X: 3, Y: 5}, {X: 4, Y: 5}},
		Food: types.Cell{X: 5, Y: 5},
	}
	state := Encode(first)
	p.agent.QTable[state] = []float64{0, 1, 0}
	p.Observe(first)

	second := types.View{
		Plan:  plan,
		Body:  []types.Cell{{X: 3, Y: 5}, {X: 4, Y: 5}, {X: 5, Y: 5}},
		Food:  types.Cell{X: 2, Y: 2},
		Eaten: 1,
	}
	p.Observe(second)
	if got := p.agent.QTable[state][ActionStraight]; got <= 1 {
		t.Errorf("expected eating to raise the straight value above 1, got %f", got)
	}

	crash := second
	crash.Cause = types.SelfCollision
	before := p.agent.QTable[Encode(second)][p.prevAct]
	act := p.prevAct
	p.Observe(crash)
	if got := p.agent.QTable[Encode(second)][act]; got >= before {
		t.Errorf("expected the crash to lower %f, got %f", before, got)
	}
}
