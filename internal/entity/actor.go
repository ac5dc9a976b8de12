// Package entity provides the actors that inhabit the dungeon.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cryptrunner/internal/gamedata"
)

// Actor is a creature in the dungeon. The player and the enemy share this
// shape; only their definitions differ. Position is continuous in grid
// units: X runs along columns, Z along rows.
type Actor struct {
	Def   *gamedata.ActorDef // Archetype this actor was built from
	Name  string
	Glyph rune
	X, Z  float64 // Continuous position in grid units
	Speed float64 // Grid units per second
	HP    int
	MaxHP int
}

// NewActor creates an actor from a definition at the given position.
func NewActor(def *gamedata.ActorDef, x, z float64) *Actor {
	return &Actor{
		Def:   def,
		Name:  def.Name,
		Glyph: def.GlyphRune(),
		X:     x,
		Z:     z,
		Speed: def.Speed,
		HP:    def.HP,
		MaxHP: def.HP,
	}
}

// Alive returns true while the actor has HP remaining.
func (a *Actor) Alive() bool {
	return a.HP > 0
}

// TakeDamage reduces HP, clamping at zero, and returns the actual damage taken.
func (a *Actor) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > a.HP {
		actual = a.HP
	}
	a.HP -= actual
	return actual
}

// Damage returns the damage this actor deals per successful attack.
func (a *Actor) Damage() int {
	return a.Def.Damage
}

// HealthPercent returns current HP as a percentage of max, for the HUD.
func (a *Actor) HealthPercent() int {
	if a.MaxHP <= 0 {
		return 0
	}
	return a.HP * 100 / a.MaxHP
}

// Color returns the actor's display color.
func (a *Actor) Color() tcell.Color {
	return a.Def.TCellColor()
}

// DistanceSq returns the squared distance to another actor. Combat range
// checks compare against squared radii, so no square root is taken.
func (a *Actor) DistanceSq(other *Actor) float64 {
	dx := a.X - other.X
	dz := a.Z - other.Z
	return dx*dx + dz*dz
}
