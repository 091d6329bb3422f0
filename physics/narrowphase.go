// Copyright © 2024 Galvanized Logic Inc.

package physics

import "github.com/galvanized-logic/collide2d/geom"

// manifold is the narrow-phase result for one overlapping pair: whether
// the shapes overlap, and if so, the contact normal (pointing from A to
// B) and penetration depth needed by resolution. All tests are inclusive
// at the boundary.
type manifold struct {
	overlap     bool
	normal      geom.Vec2
	penetration float32
}

// testColliders runs the appropriate primitive test for the pair (a, b)
// based on their shape kinds. Symmetric: testColliders(a, b) and
// testColliders(b, a) report the same overlap, with normal negated.
func testColliders(a, b *Collider) manifold {
	switch {
	case a.kind == CircleShape && b.kind == CircleShape:
		return testCircleCircle(a.circle, b.circle)
	case a.kind == RectangleShape && b.kind == RectangleShape:
		return testRectRect(a.rect, b.rect)
	case a.kind == CircleShape && b.kind == RectangleShape:
		return testCircleRect(a.circle, b.rect)
	default: // a is Rectangle, b is Circle
		m := testCircleRect(b.circle, a.rect)
		m.normal = m.normal.Scale(-1)
		return m
	}
}

// testCircleCircle implements |c1-c2|^2 <= (r1+r2)^2, inclusive.
func testCircleCircle(a, b geom.Circle) manifold {
	delta := b.Center.Sub(a.Center)
	distSqr := delta.LenSqr()
	radiusSum := a.Radius + b.Radius
	if distSqr > radiusSum*radiusSum {
		return manifold{}
	}
	dist := delta.Len()
	normal := geom.Vec2{X: 1} // fallback axis for coincident centers
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	return manifold{overlap: true, normal: normal, penetration: radiusSum - dist}
}

// testRectRect implements standard AABB overlap on both axes, inclusive,
// with the normal chosen along the axis of minimum penetration and its
// sign from center to center.
func testRectRect(a, b geom.Rect) manifold {
	if !a.Overlaps(b) {
		return manifold{}
	}
	overlapX := minf(a.Max.X, b.Max.X) - maxf(a.Min.X, b.Min.X)
	overlapY := minf(a.Max.Y, b.Max.Y) - maxf(a.Min.Y, b.Min.Y)

	ca, cb := a.Center(), b.Center()
	var normal geom.Vec2
	var penetration float32
	if overlapX < overlapY {
		penetration = overlapX
		if cb.X < ca.X {
			normal = geom.Vec2{X: -1}
		} else {
			normal = geom.Vec2{X: 1}
		}
	} else {
		penetration = overlapY
		if cb.Y < ca.Y {
			normal = geom.Vec2{Y: -1}
		} else {
			normal = geom.Vec2{Y: 1}
		}
	}
	return manifold{overlap: true, normal: normal, penetration: penetration}
}

// testCircleRect clamps the circle center to the rectangle, then tests
// the squared distance from the clamped point to the center against the
// radius squared, inclusive. The normal points from the circle to the
// rectangle, matching the A->B contract of testColliders with A the
// circle and B the rectangle; testColliders negates it when A is the
// rectangle.
func testCircleRect(c geom.Circle, r geom.Rect) manifold {
	clamped := geom.Clamp(c.Center, r.Min, r.Max)
	delta := c.Center.Sub(clamped)
	distSqr := delta.LenSqr()
	if distSqr > c.Radius*c.Radius {
		return manifold{}
	}
	dist := delta.Len()
	var normal geom.Vec2
	var penetration float32
	if dist > 0 {
		normal = delta.Scale(-1 / dist) // from circle toward rect, i.e. A->B
		penetration = c.Radius - dist
	} else {
		// center is on or inside the rectangle: pick the axis of least
		// penetration, same idea as rect/rect, but orient the normal
		// A->B (circle into rect) like the dist>0 branch above, so it
		// stays continuous as the center crosses the boundary.
		toMin := c.Center.Sub(r.Min)
		toMax := r.Max.Sub(c.Center)
		penetration = minf(minf(toMin.X, toMax.X), minf(toMin.Y, toMax.Y))
		switch penetration {
		case toMin.X:
			normal = geom.Vec2{X: 1}
		case toMax.X:
			normal = geom.Vec2{X: -1}
		case toMin.Y:
			normal = geom.Vec2{Y: 1}
		default:
			normal = geom.Vec2{Y: -1}
		}
		penetration += c.Radius
	}
	return manifold{overlap: true, normal: normal, penetration: penetration}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
