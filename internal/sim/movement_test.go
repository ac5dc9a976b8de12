package sim

import (
	"math"
	"testing"
	"time"

	"github.com/samdwyer/cryptrunner/internal/entity"
	"github.com/samdwyer/cryptrunner/internal/gamedata"
	"github.com/samdwyer/cryptrunner/internal/input"
	"github.com/samdwyer/cryptrunner/internal/world"
)

// gridFrom builds a dungeon from rune rows ('#' wall, '.' floor).
func gridFrom(rows []string) *world.Dungeon {
	height := len(rows)
	width := len(rows[0])
	tiles := make([][]world.Tile, height)
	for y, row := range rows {
		tiles[y] = make([]world.Tile, width)
		for x, r := range row {
			tiles[y][x] = world.Tile(r)
		}
	}
	return &world.Dungeon{Width: width, Height: height, Tiles: tiles}
}

func testPlayerDef() *gamedata.ActorDef {
	return &gamedata.ActorDef{ID: "delver", Name: "Delver", Glyph: "@", HP: 100, Speed: 5, Damage: 25}
}

func testEnemyDef(hp, damage int, speed float64) *gamedata.ActorDef {
	return &gamedata.ActorDef{ID: "wraith", Name: "Wraith", Glyph: "w", HP: hp, Speed: speed, Damage: damage, SpawnWeight: 1}
}

// testSession builds a playing session over a fixed grid with the player at
// (px,pz) and the enemy at (ex,ez).
func testSession(rows []string, px, pz, ex, ez float64) *Session {
	s := &Session{
		Dungeon: gridFrom(rows),
		Player:  entity.NewActor(testPlayerDef(), px, pz),
		Enemy:   entity.NewActor(testEnemyDef(50, 10, 3), ex, ez),
		State:   StatePlaying,
	}
	return s
}

var crossGrid = []string{
	"#####",
	"#...#",
	"#.#.#",
	"#...#",
	"#####",
}

func TestMoveActorAxisIndependent(t *testing.T) {
	s := testSession(crossGrid, 1.0, 1.0, 3.0, 3.0)

	// Right is open, down runs into the wall at (2,2): only x commits.
	s.moveActor(s.Player, 0.6, 0.6)

	if got := s.Player.X; got != 1.6 {
		t.Errorf("X = %f, want 1.6 (open axis should commit)", got)
	}
	if got := s.Player.Z; got != 1.0 {
		t.Errorf("Z = %f, want 1.0 (blocked axis should drop)", got)
	}
}

func TestMoveActorBlockedBothAxes(t *testing.T) {
	s := testSession(crossGrid, 1.0, 1.0, 3.0, 3.0)

	// Up and left both lead out of the carved pocket.
	s.moveActor(s.Player, -0.6, -0.6)

	if s.Player.X != 1.0 || s.Player.Z != 1.0 {
		t.Errorf("position = (%f,%f), want (1,1)", s.Player.X, s.Player.Z)
	}
}

func TestMovePlayerNormalizesDiagonal(t *testing.T) {
	open := []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	}
	s := testSession(open, 2.0, 2.0, 8.0, 3.0)

	in := input.State{Right: true, Down: true}
	s.movePlayer(in, 200*time.Millisecond) // speed 5 * 0.2s = 1.0 unit total

	want := 1.0 / math.Sqrt2
	if math.Abs(s.Player.X-(2.0+want)) > 1e-9 {
		t.Errorf("X = %f, want %f", s.Player.X, 2.0+want)
	}
	if math.Abs(s.Player.Z-(2.0+want)) > 1e-9 {
		t.Errorf("Z = %f, want %f", s.Player.Z, 2.0+want)
	}
}

func TestMovePlayerOpposingFlagsCancel(t *testing.T) {
	s := testSession(crossGrid, 1.0, 1.0, 3.0, 3.0)

	s.movePlayer(input.State{Left: true, Right: true, Up: true, Down: true}, time.Second)

	if s.Player.X != 1.0 || s.Player.Z != 1.0 {
		t.Errorf("position = (%f,%f), want unchanged (1,1)", s.Player.X, s.Player.Z)
	}
}

func TestMoveEnemyChasesPlayer(t *testing.T) {
	open := []string{
		"##########",
		"#........#",
		"#........#",
		"##########",
	}
	s := testSession(open, 1.0, 1.0, 8.0, 2.0)

	before := s.Enemy.DistanceSq(s.Player)
	s.moveEnemy(100 * time.Millisecond)
	after := s.Enemy.DistanceSq(s.Player)

	if after >= before {
		t.Errorf("enemy did not close distance: %f -> %f", before, after)
	}
}

func TestMoveEnemyStallsAgainstWall(t *testing.T) {
	// Enemy and player share a row, separated by a wall column.
	walled := []string{
		"#####",
		"#.#.#",
		"#####",
	}
	s := testSession(walled, 1.0, 1.0, 3.0, 1.0)

	s.moveEnemy(time.Second)

	if s.Enemy.X != 3.0 || s.Enemy.Z != 1.0 {
		t.Errorf("enemy = (%f,%f), want stalled at (3,1)", s.Enemy.X, s.Enemy.Z)
	}
}

func TestMoveEnemySkipsDead(t *testing.T) {
	s := testSession(crossGrid, 1.0, 1.0, 3.0, 3.0)
	s.Enemy.TakeDamage(1000)

	s.moveEnemy(time.Second)

	if s.Enemy.X != 3.0 || s.Enemy.Z != 3.0 {
		t.Error("dead enemy should not move")
	}
}

func TestCellOf(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{0.0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.49, 1},
		{1.5, 2},
		{-0.4, 0},
		{-0.6, -1},
	}
	for _, tt := range tests {
		if got := cellOf(tt.v); got != tt.want {
			t.Errorf("cellOf(%f) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
