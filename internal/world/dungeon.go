package world

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cryptrunner/internal/telemetry"
)

// Params controls dungeon generation.
type Params struct {
	Width, Height int // Grid dimensions in cells
	MaxRooms      int // Placement attempts; final room count may be lower
	RoomMin       int // Minimum room dimension
	RoomMax       int // Maximum room dimension
}

// Dungeon is the generated game map. It is immutable after Generate returns.
type Dungeon struct {
	Width   int
	Height  int
	Tiles   [][]Tile
	Centers []Point // Room centers in placement order
}

// Generate builds a dungeon from the given parameters and random source.
// It always returns a usable map; with unlucky rolls the result may contain
// zero rooms, and callers fall back to the grid center as an anchor.
// Identical params and rng seed produce an identical dungeon.
func Generate(ctx context.Context, p Params, rng *rand.Rand) *Dungeon {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	d := &Dungeon{
		Width:   p.Width,
		Height:  p.Height,
		Tiles:   make([][]Tile, p.Height),
		Centers: make([]Point, 0, p.MaxRooms),
	}
	for y := range d.Tiles {
		d.Tiles[y] = make([]Tile, p.Width)
		for x := range d.Tiles[y] {
			d.Tiles[y][x] = TileWall
		}
	}

	rooms := d.placeRooms(p, rng)
	for i := 1; i < len(rooms); i++ {
		d.carveCorridor(rooms[i-1].Center(), rooms[i].Center(), rng)
	}

	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.room_count", len(d.Centers)),
		attribute.String("dungeon.fingerprint", strconv.FormatUint(d.Fingerprint(), 16)),
		attribute.Int64("dungeon.generation_us", time.Since(startTime).Microseconds()),
	)

	return d
}

// placeRooms makes exactly p.MaxRooms placement attempts. A candidate whose
// area already contains floor is skipped outright; skipped attempts are not
// retried.
func (d *Dungeon) placeRooms(p Params, rng *rand.Rand) []Room {
	rooms := make([]Room, 0, p.MaxRooms)

	for i := 0; i < p.MaxRooms; i++ {
		w := p.RoomMin + rng.Intn(p.RoomMax-p.RoomMin+1)
		h := p.RoomMin + rng.Intn(p.RoomMax-p.RoomMin+1)

		// Top-left must leave a 1-cell wall border on every side.
		maxX := d.Width - w - 1
		maxY := d.Height - h - 1
		if maxX < 1 || maxY < 1 {
			continue
		}
		room := Room{
			X:      1 + rng.Intn(maxX),
			Y:      1 + rng.Intn(maxY),
			Width:  w,
			Height: h,
		}

		if d.overlapsFloor(room) {
			continue
		}

		d.carveRoom(room)
		rooms = append(rooms, room)
		d.Centers = append(d.Centers, room.Center())
	}

	return rooms
}

// overlapsFloor reports whether any cell of the candidate room is already
// carved. Checking cells rather than rectangles keeps the policy exact even
// if carving ever produces non-rectangular floor.
func (d *Dungeon) overlapsFloor(room Room) bool {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if d.Tiles[y][x] == TileFloor {
				return true
			}
		}
	}
	return false
}

// carveRoom sets all tiles within the room to floor.
func (d *Dungeon) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.Tiles[y][x] = TileFloor
		}
	}
}

// carveCorridor carves an L-shaped corridor between two room centers.
// Leg order is an unweighted coin flip per pair.
func (d *Dungeon) carveCorridor(from, to Point, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		d.carveHorizontalTunnel(from.X, to.X, from.Y)
		d.carveVerticalTunnel(from.Y, to.Y, to.X)
	} else {
		d.carveVerticalTunnel(from.Y, to.Y, from.X)
		d.carveHorizontalTunnel(from.X, to.X, to.Y)
	}
}

// carveHorizontalTunnel carves a horizontal tunnel, inclusive of both ends.
func (d *Dungeon) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		d.Tiles[y][x] = TileFloor
	}
}

// carveVerticalTunnel carves a vertical tunnel, inclusive of both ends.
func (d *Dungeon) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		d.Tiles[y][x] = TileFloor
	}
}

// IsPassable returns true if the given cell is in bounds and walkable.
func (d *Dungeon) IsPassable(x, y int) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	return d.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at the given position, treating out-of-bounds
// positions as wall.
func (d *Dungeon) GetTile(x, y int) Tile {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return TileWall
	}
	return d.Tiles[y][x]
}

// Fingerprint returns an xxhash digest of the tile grid. Two dungeons carved
// from the same seed and params share a fingerprint.
func (d *Dungeon) Fingerprint() uint64 {
	h := xxhash.New()
	row := make([]byte, d.Width)
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			row[x] = byte(d.Tiles[y][x])
		}
		h.Write(row)
	}
	return h.Sum64()
}
