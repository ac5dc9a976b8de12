package world

import (
	"context"
	"math/rand"
	"testing"
)

var testParams = Params{Width: 30, Height: 30, MaxRooms: 6, RoomMin: 3, RoomMax: 6}

func newWallGrid(p Params) *Dungeon {
	d := &Dungeon{
		Width:  p.Width,
		Height: p.Height,
		Tiles:  make([][]Tile, p.Height),
	}
	for y := range d.Tiles {
		d.Tiles[y] = make([]Tile, p.Width)
		for x := range d.Tiles[y] {
			d.Tiles[y][x] = TileWall
		}
	}
	return d
}

func TestGenerateReproducibility(t *testing.T) {
	seed := int64(12345)
	ctx := context.Background()

	d1 := Generate(ctx, testParams, rand.New(rand.NewSource(seed)))
	d2 := Generate(ctx, testParams, rand.New(rand.NewSource(seed)))

	if len(d1.Centers) != len(d2.Centers) {
		t.Fatalf("Center count mismatch: %d != %d", len(d1.Centers), len(d2.Centers))
	}
	for i := range d1.Centers {
		if d1.Centers[i] != d2.Centers[i] {
			t.Errorf("Center %d mismatch: %v != %v", i, d1.Centers[i], d2.Centers[i])
		}
	}

	if d1.Fingerprint() != d2.Fingerprint() {
		t.Errorf("Fingerprint mismatch: %x != %x", d1.Fingerprint(), d2.Fingerprint())
	}
	for y := 0; y < d1.Height; y++ {
		for x := 0; x < d1.Width; x++ {
			if d1.Tiles[y][x] != d2.Tiles[y][x] {
				t.Fatalf("Tile mismatch at (%d,%d): %c != %c", x, y, d1.Tiles[y][x], d2.Tiles[y][x])
			}
		}
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	ctx := context.Background()

	d1 := Generate(ctx, testParams, rand.New(rand.NewSource(12345)))
	d2 := Generate(ctx, testParams, rand.New(rand.NewSource(54321)))

	// Identical layouts from different seeds are astronomically unlikely.
	if d1.Fingerprint() == d2.Fingerprint() && len(d1.Centers) == len(d2.Centers) {
		identical := true
		for i := range d1.Centers {
			if d1.Centers[i] != d2.Centers[i] {
				identical = false
				break
			}
		}
		if identical {
			t.Error("Dungeons with different seeds should not be identical")
		}
	}
}

func TestGenerateBorderNeverCarved(t *testing.T) {
	ctx := context.Background()

	for seed := int64(1); seed <= 25; seed++ {
		d := Generate(ctx, testParams, rand.New(rand.NewSource(seed)))

		for x := 0; x < d.Width; x++ {
			if d.Tiles[0][x] != TileWall || d.Tiles[d.Height-1][x] != TileWall {
				t.Fatalf("seed %d: border cell carved in column %d", seed, x)
			}
		}
		for y := 0; y < d.Height; y++ {
			if d.Tiles[y][0] != TileWall || d.Tiles[y][d.Width-1] != TileWall {
				t.Fatalf("seed %d: border cell carved in row %d", seed, y)
			}
		}
	}
}

func TestGenerateCentersAreFloor(t *testing.T) {
	ctx := context.Background()

	sawRooms := false
	for seed := int64(1); seed <= 25; seed++ {
		d := Generate(ctx, testParams, rand.New(rand.NewSource(seed)))
		if len(d.Centers) > 0 {
			sawRooms = true
		}
		for i, c := range d.Centers {
			if d.GetTile(c.X, c.Y) != TileFloor {
				t.Errorf("seed %d: center %d at (%d,%d) is not floor", seed, i, c.X, c.Y)
			}
		}
	}
	if !sawRooms {
		t.Error("no rooms placed across 25 seeds; placement is broken")
	}
}

func TestPlaceRoomsNeverOverlap(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		d := newWallGrid(testParams)
		rooms := d.placeRooms(testParams, rng)

		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				a, b := rooms[i], rooms[j]
				overlap := a.X < b.X+b.Width && a.X+a.Width > b.X &&
					a.Y < b.Y+b.Height && a.Y+a.Height > b.Y
				if overlap {
					t.Errorf("seed %d: rooms %d and %d overlap: %+v %+v", seed, i, j, a, b)
				}
			}
		}
		if len(rooms) > testParams.MaxRooms {
			t.Errorf("seed %d: %d rooms exceeds %d attempts", seed, len(rooms), testParams.MaxRooms)
		}
	}
}

func TestGenerateChainConnectivity(t *testing.T) {
	ctx := context.Background()

	for seed := int64(1); seed <= 25; seed++ {
		d := Generate(ctx, testParams, rand.New(rand.NewSource(seed)))
		if len(d.Centers) < 2 {
			continue
		}

		reached := floodFill(d, d.Centers[0])
		for i, c := range d.Centers {
			if !reached[c] {
				t.Errorf("seed %d: center %d at (%d,%d) unreachable from first room", seed, i, c.X, c.Y)
			}
		}
	}
}

// floodFill walks floor tiles 4-directionally from start.
func floodFill(d *Dungeon, start Point) map[Point]bool {
	reached := map[Point]bool{start: true}
	queue := []Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range []Point{{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1}} {
			if !reached[n] && d.IsPassable(n.X, n.Y) {
				reached[n] = true
				queue = append(queue, n)
			}
		}
	}
	return reached
}

func TestGenerateZeroRoomDegenerate(t *testing.T) {
	// A grid too small for any room forces every attempt to be skipped.
	p := Params{Width: 4, Height: 4, MaxRooms: 10, RoomMin: 5, RoomMax: 6}
	d := Generate(context.Background(), p, rand.New(rand.NewSource(1)))

	if len(d.Centers) != 0 {
		t.Fatalf("expected zero rooms, got %d", len(d.Centers))
	}
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if d.Tiles[y][x] != TileWall {
				t.Errorf("cell (%d,%d) carved in zero-room dungeon", x, y)
			}
		}
	}
}
