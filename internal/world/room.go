package world

// Room represents a rectangular room in the dungeon.
// The rectangle includes the room's wall border.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room, walls included
}

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// CenterPoint returns the room center as a Point.
func (r Room) CenterPoint() Point {
	x, y := r.Center()
	return Point{X: x, Y: y}
}

// Contains returns true if the given point is inside the room rectangle, walls included.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// InInterior returns true if the point is strictly inside the wall border.
func (r Room) InInterior(x, y int) bool {
	return x > r.X && x < r.X+r.Width-1 && y > r.Y && y < r.Y+r.Height-1
}

// OnBorder returns true if the point lies on the room's wall ring.
func (r Room) OnBorder(x, y int) bool {
	return r.Contains(x, y) && !r.InInterior(x, y)
}

// InHalo returns true if the point lies in the one-tile ring just outside the room.
func (r Room) InHalo(x, y int) bool {
	outer := Room{X: r.X - 1, Y: r.Y - 1, Width: r.Width + 2, Height: r.Height + 2}
	return outer.Contains(x, y) && !r.Contains(x, y)
}

// Intersects returns true if this room overlaps or touches another room.
// Edges are compared inclusively, so rooms sharing a wall line count as overlapping.
func (r Room) Intersects(other Room) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// EachInterior calls fn for every interior cell of the room.
func (r Room) EachInterior(fn func(x, y int)) {
	for y := r.Y + 1; y < r.Y+r.Height-1; y++ {
		for x := r.X + 1; x < r.X+r.Width-1; x++ {
			fn(x, y)
		}
	}
}

// EachCell calls fn for every cell of the room rectangle, walls included.
func (r Room) EachCell(fn func(x, y int)) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			fn(x, y)
		}
	}
}

// EachHalo calls fn for every cell in the ring just outside the room.
func (r Room) EachHalo(fn func(x, y int)) {
	for x := r.X - 1; x <= r.X+r.Width; x++ {
		fn(x, r.Y-1)
		fn(x, r.Y+r.Height)
	}
	for y := r.Y; y < r.Y+r.Height; y++ {
		fn(r.X-1, y)
		fn(r.X+r.Width, y)
	}
}
