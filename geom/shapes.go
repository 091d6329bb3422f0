// Copyright © 2024 Galvanized Logic Inc.

package geom

// Rect is an axis-aligned rectangle described by its minimum and maximum
// corners. Min is expected to be componentwise less than or equal to Max;
// callers that build a Rect from user input should validate that
// themselves (the world does, for its bounds, at construction).
type Rect struct {
	Min Vec2
	Max Vec2
}

// Circle is a circle described by its center and radius.
type Circle struct {
	Center Vec2
	Radius float32
}

// Width returns the rectangle's extent along X.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the rectangle's extent along Y.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Translate returns r shifted so that its minimum corner is at min,
// preserving its size.
func (r Rect) Translate(min Vec2) Rect {
	size := Vec2{r.Width(), r.Height()}
	return Rect{Min: min, Max: min.Add(size)}
}

// Valid reports whether Min is componentwise less than Max on both axes.
func (r Rect) Valid() bool { return r.Min.X < r.Max.X && r.Min.Y < r.Max.Y }

// Contains reports whether r fully contains b, inclusive of the boundary.
func (r Rect) Contains(b Rect) bool {
	return b.Min.X >= r.Min.X && b.Max.X <= r.Max.X &&
		b.Min.Y >= r.Min.Y && b.Max.Y <= r.Max.Y
}

// Overlaps reports whether r and b overlap, inclusive of the boundary.
func (r Rect) Overlaps(b Rect) bool {
	return r.Min.X <= b.Max.X && r.Max.X >= b.Min.X &&
		r.Min.Y <= b.Max.Y && r.Max.Y >= b.Min.Y
}

// Quadrant returns the i'th (0..3) quadrant of r: NW, NE, SW, SE in that
// order, matching the quadtree's child ordering.
func (r Rect) Quadrant(i int) Rect {
	c := r.Center()
	switch i {
	case 0: // NW
		return Rect{Min: Vec2{r.Min.X, r.Min.Y}, Max: Vec2{c.X, c.Y}}
	case 1: // NE
		return Rect{Min: Vec2{c.X, r.Min.Y}, Max: Vec2{r.Max.X, c.Y}}
	case 2: // SW
		return Rect{Min: Vec2{r.Min.X, c.Y}, Max: Vec2{c.X, r.Max.Y}}
	default: // SE
		return Rect{Min: Vec2{c.X, c.Y}, Max: Vec2{r.Max.X, r.Max.Y}}
	}
}

// AABB returns the axis-aligned bounding box of the circle.
func (c Circle) AABB() Rect {
	r := Vec2{c.Radius, c.Radius}
	return Rect{Min: c.Center.Sub(r), Max: c.Center.Add(r)}
}

// Translate returns c re-centered at center, preserving its radius.
func (c Circle) Translate(center Vec2) Circle {
	return Circle{Center: center, Radius: c.Radius}
}
