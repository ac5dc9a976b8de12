package sim

import (
	"math"
	"time"

	"github.com/samdwyer/cryptrunner/internal/entity"
	"github.com/samdwyer/cryptrunner/internal/input"
)

// movePlayer advances the player along the normalized sum of the held
// direction flags. Opposing flags cancel; diagonal movement is no faster
// than axis movement.
func (s *Session) movePlayer(in input.State, dt time.Duration) {
	var dx, dz float64
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dz--
	}
	if in.Down {
		dz++
	}
	if dx == 0 && dz == 0 {
		return
	}

	norm := math.Hypot(dx, dz)
	step := s.Player.Speed * dt.Seconds() / norm
	s.moveActor(s.Player, dx*step, dz*step)
}

// moveEnemy advances the enemy straight toward the player. There is no
// pathfinding: an enemy on the far side of a wall pushes against it.
func (s *Session) moveEnemy(dt time.Duration) {
	e := s.Enemy
	if e == nil || !e.Alive() {
		return
	}

	dx := s.Player.X - e.X
	dz := s.Player.Z - e.Z
	dist := math.Hypot(dx, dz)
	if dist == 0 {
		return
	}

	step := e.Speed * dt.Seconds() / dist
	s.moveActor(e, dx*step, dz*step)
}

// moveActor resolves movement one axis at a time. An axis whose target cell
// is wall or out of bounds is dropped silently while the other axis may
// still commit, which lets actors slide along walls.
func (s *Session) moveActor(a *entity.Actor, dx, dz float64) {
	if nx := a.X + dx; s.walkable(nx, a.Z) {
		a.X = nx
	}
	if nz := a.Z + dz; s.walkable(a.X, nz) {
		a.Z = nz
	}
}

// walkable reports whether a continuous position resolves to a floor cell.
func (s *Session) walkable(x, z float64) bool {
	return s.Dungeon.IsPassable(cellOf(x), cellOf(z))
}

// cellOf rounds a continuous coordinate to its nearest grid cell.
func cellOf(v float64) int {
	return int(math.Floor(v + 0.5))
}
