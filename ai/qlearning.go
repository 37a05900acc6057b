package ai

import (
	"math"

	"golang.org/x/exp/rand"
)

// QTable maps an encoded state to one value per action.
type QTable map[string][]float64

// Agent is a tabular Q-learning agent with a decaying epsilon-greedy policy.
type Agent struct {
	QTable         QTable
	NumActions     int
	LearningRate   float64
	Discount       float64
	Epsilon        float64
	InitialEpsilon float64
	MinEpsilon     float64
	EpsilonDecay   float64
	Episode        int

	rng *rand.Rand
}

func NewAgent(numActions int, learningRate, discount float64, rng *rand.Rand) *Agent {
	return &Agent{
		QTable:         make(QTable),
		NumActions:     numActions,
		LearningRate:   learningRate,
		Discount:       discount,
		Epsilon:        0.9,
		InitialEpsilon: 0.9,
		MinEpsilon:     0.02,
		EpsilonDecay:   0.97,
		rng:            rng,
	}
}

// Action picks an action for state: random with probability Epsilon, else the best known.
func (a *Agent) Action(state string) int {
	if a.rng.Float64() < a.Epsilon {
		return a.rng.Intn(a.NumActions)
	}
	return a.bestAction(state)
}

// Update applies Q(s,a) += lr * (r + discount * max Q(s') - Q(s,a)).
// An empty next state is terminal.
func (a *Agent) Update(state string, action int, reward float64, next string) {
	q := a.values(state)
	target := reward
	if next != "" {
		target += a.Discount * a.maxValue(next)
	}
	q[action] += a.LearningRate * (target - q[action])
}

// EndEpisode decays epsilon towards MinEpsilon.
func (a *Agent) EndEpisode() {
	a.Episode++
	a.Epsilon = math.Max(a.MinEpsilon, a.InitialEpsilon*math.Pow(a.EpsilonDecay, float64(a.Episode)))
}

func (a *Agent) values(state string) []float64 {
	q, ok := a.QTable[state]
	if !ok {
		q = make([]float64, a.NumActions)
		a.QTable[state] = q
	}
	return q
}

func (a *Agent) bestAction(state string) int {
	q := a.values(state)
	best := 0
	for action, v := range q {
		if v > q[best] {
			best = action
		}
	}
	return best
}

func (a *Agent) maxValue(state string) float64 {
	q, ok := a.QTable[state]
	if !ok {
		return 0
	}
	maxQ := math.Inf(-1)
	for _, v := range q {
		maxQ = math.Max(maxQ, v)
	}
	return maxQ
}
