package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"

	"sn8ke/ai"
	"sn8ke/config"
	"sn8ke/game"
	"sn8ke/game/types"
	"sn8ke/hal"
	"sn8ke/ui"
)

// errBootGate means the boot button was not held, so the game must not start.
var errBootGate = errors.New("down button not held at boot")

// run drives the device until ctx is cancelled or the player resets it.
func run(ctx context.Context, cfg *config.Config, dev hal.Device, logger *log.Logger) error {
	s := cfg.Session
	if s.RequireBootHold && !dev.Pressed(hal.ButtonDown) {
		return errBootGate
	}

	r := ui.NewRenderer(dev)
	r.Splash(s.Title)
	dev.Sleep(s.SplashMs)

	plan, err := buildPlan(dev, cfg.PlanFor(cfg.Backend))
	if err != nil {
		logger.Error("failed to lay out the board", "err", err)
		r.Alert(fmt.Sprintf("failed to start: %v", err))
		dev.Sleep(s.PauseMs)
		return reset(dev, logger, err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	var buttons hal.Buttons = dev
	if s.Autopilot {
		buttons = ai.NewAutopilot(rand.New(rand.NewSource(seed+1)), logger)
	}
	settings := game.Settings{
		InitialDelayMs: cfg.Game.InitialDelayMs,
		DelayStepMs:    cfg.Game.DelayStepMs,
	}
	logger.Info("session started", "seed", seed, "width", plan.Width(), "height", plan.Height(), "autopilot", s.Autopilot)

	for {
		g := game.NewGame(plan, settings, game.Deps{
			Display: dev,
			Buttons: buttons,
			Clock:   dev,
			Rand:    rng,
			Logger:  logger,
		})
		if _, err := g.Play(ctx); err != nil {
			return err
		}

		dev.Sleep(s.PauseMs)
		again, err := waitForNext(ctx, buttons, dev, s)
		if err != nil {
			return err
		}
		if !again {
			return reset(dev, logger, nil)
		}
	}
}

// buildPlan fits the grid into the display minus the configured margins.
func buildPlan(d hal.Display, pc config.PlanConfig) (types.Plan, error) {
	w := d.Width() - pc.Left - pc.Right
	h := d.Height() - pc.Top - pc.Bottom
	plan, err := types.NewPlan(pc.Left, pc.Top, w, h, pc.CellSize)
	if err != nil {
		return types.Plan{}, fmt.Errorf("%dx%d display: %w", d.Width(), d.Height(), err)
	}
	return plan, nil
}

// waitForNext polls until Enter starts another game, returning true, or until
// Up and Down have been held together for ResetHoldMs, returning false.
func waitForNext(ctx context.Context, buttons hal.Buttons, dev hal.Device, s config.SessionConfig) (bool, error) {
	holding := false
	var since uint32
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if buttons.Pressed(hal.ButtonEnter) {
			return true, nil
		}
		if dev.Pressed(hal.ButtonUp) && dev.Pressed(hal.ButtonDown) {
			now := dev.Ticks()
			if !holding {
				holding, since = true, now
			}
			if hal.TicksDiff(now, since) >= s.ResetHoldMs {
				return false, nil
			}
		} else {
			holding = false
		}
		dev.Sleep(s.PollMs)
	}
}

// reset restarts the device. cause is the failure that led here, if any.
func reset(dev hal.Device, logger *log.Logger, cause error) error {
	logger.Warn("resetting device")
	if err := dev.Reset(); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to reset device: %w", err))
	}
	return cause
}
