package sim

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cryptrunner/internal/telemetry"
)

const (
	// PlayerAttackRadius is how far the player's attack reaches, in grid units.
	PlayerAttackRadius = 1.5
	// EnemyHitRadius is how close the enemy must be to hit the player.
	EnemyHitRadius = 1.0
	// EnemyAttackInterval is the wall-clock cooldown between enemy attacks.
	EnemyAttackInterval = 1000 * time.Millisecond
)

// PlayerAttack resolves one player attack. It succeeds only while playing,
// with a living enemy inside the attack radius (boundary inclusive, squared
// distances throughout). There is no cooldown. Returns true on a hit.
func (s *Session) PlayerAttack(ctx context.Context) bool {
	e := s.Enemy
	if s.State != StatePlaying || e == nil || !e.Alive() {
		return false
	}
	if s.Player.DistanceSq(e) > PlayerAttackRadius*PlayerAttackRadius {
		return false
	}

	e.TakeDamage(s.Player.Damage())
	if !e.Alive() {
		tracer := telemetry.Tracer("combat")
		_, span := tracer.Start(ctx, "combat.kill")
		span.SetAttributes(
			attribute.String("session.run_id", s.runID),
			attribute.String("enemy.id", e.Def.ID),
			attribute.Int64("session.ticks", int64(s.ticks)),
		)
		span.End()
	}
	return true
}

// enemyAttack runs the enemy's tick-driven attack: in range, gated by the
// wall-clock cooldown. A kill transitions the session to game over.
func (s *Session) enemyAttack(ctx context.Context, now time.Time) {
	e := s.Enemy
	if e == nil || !e.Alive() {
		return
	}
	if s.Player.DistanceSq(e) > EnemyHitRadius*EnemyHitRadius {
		return
	}
	if !s.lastEnemyHit.IsZero() && now.Sub(s.lastEnemyHit) < EnemyAttackInterval {
		return
	}

	s.Player.TakeDamage(e.Damage())
	s.lastEnemyHit = now

	if !s.Player.Alive() {
		s.gameOver(ctx)
	}
}
