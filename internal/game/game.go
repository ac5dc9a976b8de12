// Package game wires the terminal, input tracking, and the simulation into
// a frame-driven loop.
package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cryptrunner/internal/gamedata"
	"github.com/samdwyer/cryptrunner/internal/input"
	"github.com/samdwyer/cryptrunner/internal/sim"
	"github.com/samdwyer/cryptrunner/internal/telemetry"
	"github.com/samdwyer/cryptrunner/internal/ui"
)

// tickInterval is the target frame duration. The simulation itself scales
// by the measured delta, so a slow terminal only lowers the frame rate.
const tickInterval = 33 * time.Millisecond

// Game owns the screen, the renderer, the input tracker, and the session.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	tracker  *input.Tracker
	session  *sim.Session
	running  bool
}

// New creates a game instance and takes over the terminal.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		tracker:  input.NewTracker(),
		running:  true,
	}, nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	tracer := telemetry.Tracer("game")
	initCtx, initSpan := tracer.Start(ctx, "game.init")

	playerDef, err := gamedata.LoadPlayerDef()
	if err != nil {
		initSpan.End()
		return err
	}
	enemies, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		initSpan.End()
		return err
	}

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g.session = sim.New(initCtx, g.cfg.WorldParams(), playerDef, enemies, rng)

	initSpan.SetAttributes(
		attribute.Int64("game.seed", seed),
		attribute.Int("dungeon.rooms", len(g.session.Dungeon.Centers)),
	)
	initSpan.End()

	// Terminal events arrive on their own goroutine; the loop below is the
	// only place that touches game state.
	events := make(chan tcell.Event, 16)
	go g.pollEvents(events)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	last := time.Now()

	for g.running {
		select {
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ev)

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			in := g.tracker.Snapshot(now)
			g.session.Step(ctx, in, dt, now)
			g.renderer.Render(
				g.session.Dungeon,
				g.session.Player,
				g.session.Enemy,
				g.session.State == sim.StateGameOver,
			)
		}
	}

	return nil
}

// pollEvents forwards terminal events until the screen is finalized.
func (g *Game) pollEvents(events chan<- tcell.Event) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		events <- ev
	}
}

func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent feeds key presses into the tracker. The simulation never
// sees these events; it samples the tracker once per tick.
func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	now := ev.When()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tracker.PressDirection(input.DirUp, now)
	case tcell.KeyDown:
		g.tracker.PressDirection(input.DirDown, now)
	case tcell.KeyLeft:
		g.tracker.PressDirection(input.DirLeft, now)
	case tcell.KeyRight:
		g.tracker.PressDirection(input.DirRight, now)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			g.tracker.PressDirection(input.DirUp, now)
		case 's', 'S':
			g.tracker.PressDirection(input.DirDown, now)
		case 'a', 'A':
			g.tracker.PressDirection(input.DirLeft, now)
		case 'd', 'D':
			g.tracker.PressDirection(input.DirRight, now)
		case ' ':
			g.tracker.PressAttack()
		case 'r', 'R':
			g.tracker.PressRestart()
		case 'q', 'Q':
			g.running = false
		}
	}
}

// Close releases the terminal without running the loop, for callers that
// bail out between New and Run.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
