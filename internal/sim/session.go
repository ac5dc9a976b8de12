// Package sim advances the game world one tick at a time. A Session owns
// the dungeon, both actors, and the Playing/GameOver state machine; the
// caller drives it with sampled input and a measured frame delta, so the
// simulation is independent of rendering and of frame rate.
package sim

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cryptrunner/internal/entity"
	"github.com/samdwyer/cryptrunner/internal/gamedata"
	"github.com/samdwyer/cryptrunner/internal/input"
	"github.com/samdwyer/cryptrunner/internal/telemetry"
	"github.com/samdwyer/cryptrunner/internal/world"
)

// State represents the current session state.
type State int

const (
	// StatePlaying is the normal running state.
	StatePlaying State = iota
	// StateGameOver is entered when the player's health reaches zero.
	// Movement and combat are suspended until a restart.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session holds all mutable game state: the current dungeon, the player,
// the single enemy, and the state machine. Everything a tick touches lives
// here rather than in package-level variables.
type Session struct {
	Params  world.Params
	Dungeon *world.Dungeon
	Player  *entity.Actor
	Enemy   *entity.Actor
	State   State

	playerDef *gamedata.ActorDef
	enemies   *gamedata.EnemyRegistry
	rng       *rand.Rand
	runID     string
	ticks     uint64

	// Wall-clock time of the last successful enemy attack, zero before the
	// first one. Wall-clock rather than tick-counted so the cooldown is
	// frame-rate independent.
	lastEnemyHit time.Time
}

// New creates a session and generates its first dungeon. The rng drives
// dungeon generation and enemy selection; a fixed seed reproduces the run.
func New(ctx context.Context, params world.Params, playerDef *gamedata.ActorDef, enemies *gamedata.EnemyRegistry, rng *rand.Rand) *Session {
	s := &Session{
		Params:    params,
		playerDef: playerDef,
		enemies:   enemies,
		rng:       rng,
		runID:     uuid.NewString(),
	}
	s.start(ctx, "session.start")
	return s
}

// Restart discards the current dungeon and actors and begins a fresh run:
// a new dungeon from the same rng stream, both actors back at full health.
func (s *Session) Restart(ctx context.Context) {
	s.start(ctx, "session.restart")
}

func (s *Session) start(ctx context.Context, spanName string) {
	tracer := telemetry.Tracer("session")
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	s.Dungeon = world.Generate(ctx, s.Params, s.rng)

	// Player spawns at the first placed room, the enemy at the last. With
	// zero rooms both fall back to the grid center.
	playerAt := world.Point{X: s.Params.Width / 2, Y: s.Params.Height / 2}
	enemyAt := playerAt
	if n := len(s.Dungeon.Centers); n > 0 {
		playerAt = s.Dungeon.Centers[0]
		enemyAt = s.Dungeon.Centers[n-1]
	}

	s.Player = entity.NewActor(s.playerDef, float64(playerAt.X), float64(playerAt.Y))
	enemyDef := s.enemies.SpawnRandom(s.rng)
	s.Enemy = entity.NewActor(enemyDef, float64(enemyAt.X), float64(enemyAt.Y))

	s.State = StatePlaying
	s.lastEnemyHit = time.Time{}
	s.ticks = 0

	span.SetAttributes(
		attribute.String("session.run_id", s.runID),
		attribute.Int("dungeon.room_count", len(s.Dungeon.Centers)),
		attribute.String("dungeon.fingerprint", strconv.FormatUint(s.Dungeon.Fingerprint(), 16)),
		attribute.String("enemy.id", enemyDef.ID),
	)
}

// Step advances the session by one tick. dt is the measured time since the
// previous tick and now is the wall clock used for the enemy attack
// cooldown. While game over, only the restart action is honored.
func (s *Session) Step(ctx context.Context, in input.State, dt time.Duration, now time.Time) {
	if s.State == StateGameOver {
		if in.Restart {
			s.Restart(ctx)
		}
		return
	}

	s.ticks++

	if in.Attack {
		s.PlayerAttack(ctx)
	}
	s.movePlayer(in, dt)
	s.moveEnemy(dt)
	s.enemyAttack(ctx, now)
}

// Ticks returns the number of ticks simulated since the last (re)start.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

func (s *Session) gameOver(ctx context.Context) {
	s.State = StateGameOver

	tracer := telemetry.Tracer("session")
	_, span := tracer.Start(ctx, "session.game_over")
	span.SetAttributes(
		attribute.String("session.run_id", s.runID),
		attribute.Int64("session.ticks", int64(s.ticks)),
		attribute.Int("enemy.hp_remaining", s.Enemy.HP),
	)
	span.End()
}
