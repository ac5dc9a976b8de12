package world

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Room is a rectangular carve region. Rooms exist only while the dungeon is
// being generated; afterwards only their centers survive, in placement order.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
}

// Center returns the integer center of the room.
func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}
