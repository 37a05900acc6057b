package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"sn8ke/game/entity"
	"sn8ke/game/manager"
	"sn8ke/game/types"
	"sn8ke/hal"
	"sn8ke/ui"
)

// Settings tune the speed progression.
type Settings struct {
	InitialDelayMs int
	DelayStepMs    int
}

func DefaultSettings() Settings {
	return Settings{
		InitialDelayMs: manager.DefaultDelayMs,
		DelayStepMs:    manager.DefaultStepMs,
	}
}

// Deps are the collaborators a game talks to. Rand and Logger are optional.
type Deps struct {
	Display hal.Display
	Buttons hal.Buttons
	Clock   hal.Clock
	Rand    *rand.Rand
	Logger  *log.Logger
}

// Observer is implemented by button sources that need to see the board, such
// as the autopilot. Observe is called before every input sample and once more
// when the game ends.
type Observer interface {
	Observe(v types.View)
}

type Result struct {
	UUID     string
	Cause    types.CollisionType
	TopSpeed float64
	Length   int
	Ticks    int
	Eaten    int
	Duration time.Duration
}

// Game is one session: a fresh plan, snake and food.
type Game struct {
	UUID      string
	StartTime time.Time

	plan         types.Plan
	snake        *entity.Snake
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager
	renderer     *ui.Renderer

	buttons hal.Buttons
	clock   hal.Clock
	logger  *log.Logger
}

// NewGame sets up the board and draws it: border, snake, first food and speed.
func NewGame(plan types.Plan, settings Settings, deps Deps) *Game {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	gameUUID := uuid.New().String()
	collisionMgr := manager.NewCollisionManager(plan)
	g := &Game{
		UUID:         gameUUID,
		StartTime:    time.Now(),
		plan:         plan,
		snake:        entity.NewSnake(plan.Center()),
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(plan, rng, collisionMgr),
		stateMgr:     manager.NewStateManager(settings.InitialDelayMs, settings.DelayStepMs, plan.CellSize),
		renderer:     ui.NewRenderer(deps.Display),
		buttons:      deps.Buttons,
		clock:        deps.Clock,
		logger:       logger.With("session", gameUUID),
	}

	g.renderer.Clear()
	g.renderer.Border(plan)
	g.renderer.Cell(plan, g.snake.Tail(), ui.BodyColor)
	g.renderer.Cell(plan, g.snake.Head(), ui.HeadColor)
	g.placeFood()
	g.renderer.Speed(g.stateMgr.Speed())

	g.logger.Info("game started", "width", plan.Width(), "height", plan.Height(), "delay_ms", g.stateMgr.Delay())
	return g
}

// Play runs ticks until the snake crashes or ctx is cancelled.
func (g *Game) Play(ctx context.Context) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			g.logger.Info("game interrupted", "ticks", g.stateMgr.Ticks())
			return g.result(types.NoCollision), err
		}

		start := g.clock.Ticks()
		if cause := g.Step(); cause != types.NoCollision {
			return g.end(cause), nil
		}

		// keep a fixed period: the work done this tick comes out of the sleep
		elapsed := hal.TicksDiff(g.clock.Ticks(), start)
		g.clock.Sleep(max(0, g.stateMgr.Delay()-elapsed))
	}
}

// Step advances the game by one tick without sleeping.
func (g *Game) Step() types.CollisionType {
	g.observe(types.NoCollision)
	turn := g.readTurn()

	tail := g.snake.Tail()
	growing := g.snake.PendingGrowth() > 0
	oldHead := g.snake.Head()

	head := g.snake.Advance(turn)
	g.stateMgr.Tick()

	if !growing {
		g.renderer.Cell(g.plan, tail, ui.Background)
	}
	g.renderer.Cell(g.plan, oldHead, ui.BodyColor)
	g.renderer.Cell(g.plan, head, ui.HeadColor)

	if cause := g.collisionMgr.CheckCollision(g.snake); cause != types.NoCollision {
		return cause
	}

	if g.foodMgr.IsPickup(head) {
		g.snake.Feed(g.foodMgr.Value())
		g.placeFood()
		delay := g.stateMgr.SpeedUp()
		g.renderer.SpeedUpdate(g.stateMgr.Speed())
		g.logger.Debug("food eaten", "length", g.snake.Len(), "pending", g.snake.PendingGrowth(), "delay_ms", delay)
	}
	return types.NoCollision
}

// readTurn samples both steering buttons once. Pressing both goes straight.
func (g *Game) readTurn() types.Turn {
	left := g.buttons.Pressed(hal.ButtonDown)
	right := g.buttons.Pressed(hal.ButtonUp)
	switch {
	case left && !right:
		return types.Left
	case right && !left:
		return types.Right
	default:
		return types.Straight
	}
}

func (g *Game) placeFood() {
	c := g.foodMgr.Place(g.snake)
	g.renderer.Cell(g.plan, c, ui.FoodColor)
}

func (g *Game) observe(cause types.CollisionType) {
	o, ok := g.buttons.(Observer)
	if !ok {
		return
	}
	o.Observe(types.View{
		Plan:  g.plan,
		Body:  g.snake.Body(),
		Food:  g.foodMgr.Cell(),
		Eaten: g.stateMgr.Eaten(),
		Cause: cause,
	})
}

func (g *Game) end(cause types.CollisionType) Result {
	g.observe(cause)
	res := g.result(cause)
	g.renderer.Crash(cause, res.TopSpeed)
	g.logger.Info("game over",
		"cause", cause,
		"top_speed", res.TopSpeed,
		"length", res.Length,
		"eaten", res.Eaten,
		"ticks", res.Ticks)
	return res
}

func (g *Game) result(cause types.CollisionType) Result {
	return Result{
		UUID:     g.UUID,
		Cause:    cause,
		TopSpeed: g.stateMgr.Speed(),
		Length:   g.snake.Len(),
		Ticks:    g.stateMgr.Ticks(),
		Eaten:    g.stateMgr.Eaten(),
		Duration: time.Since(g.StartTime),
	}
}

// Snake exposes the live snake for inspection.
func (g *Game) Snake() *entity.Snake {
	return g.snake
}

func (g *Game) Food() types.Cell {
	return g.foodMgr.Cell()
}

func (g *Game) Delay() int {
	return g.stateMgr.Delay()
}

func (g *Game) Plan() types.Plan {
	return g.plan
}
