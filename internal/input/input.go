// Package input models held-key state sampled once per simulation tick.
// The simulation never subscribes to terminal events; the game loop feeds
// key presses into a Tracker and hands the simulation a State value.
package input

import "time"

// Direction identifies one of the four movement keys.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	dirCount
)

// State is the input snapshot consumed by one simulation tick. Directions
// are level-triggered (held), Attack and Restart are edge-triggered actions.
type State struct {
	Up, Down, Left, Right bool
	Attack                bool
	Restart               bool
}

// holdWindow is how long a direction stays held after its last key event.
// Terminals deliver no key-release, so a held key is a press refreshed by
// the terminal's auto-repeat.
const holdWindow = 250 * time.Millisecond

// Tracker accumulates key events between ticks.
type Tracker struct {
	lastPress [dirCount]time.Time
	attack    bool
	restart   bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// PressDirection records a movement key event at the given time.
func (t *Tracker) PressDirection(d Direction, now time.Time) {
	if d < 0 || d >= dirCount {
		return
	}
	t.lastPress[d] = now
}

// PressAttack latches an attack action until the next snapshot.
func (t *Tracker) PressAttack() {
	t.attack = true
}

// PressRestart latches a restart action until the next snapshot.
func (t *Tracker) PressRestart() {
	t.restart = true
}

// Snapshot returns the current input state and consumes the one-shot
// actions. Call once per tick.
func (t *Tracker) Snapshot(now time.Time) State {
	s := State{
		Up:      t.heldAt(DirUp, now),
		Down:    t.heldAt(DirDown, now),
		Left:    t.heldAt(DirLeft, now),
		Right:   t.heldAt(DirRight, now),
		Attack:  t.attack,
		Restart: t.restart,
	}
	t.attack = false
	t.restart = false
	return s
}

func (t *Tracker) heldAt(d Direction, now time.Time) bool {
	last := t.lastPress[d]
	if last.IsZero() {
		return false
	}
	return now.Sub(last) <= holdWindow
}
