// Copyright © 2024 Galvanized Logic Inc.

package physics

import "github.com/galvanized-logic/collide2d/geom"

// ShapeKind distinguishes the two collider shape variants this engine
// supports. There is no compound-shape or convex-hull variant; that is
// explicit corpus territory (the teacher's 3D physics package grew
// convex hulls and GJK/EPA for exactly this reason), not this engine's.
type ShapeKind int

const (
	// CircleShape colliders carry a Circle in world coordinates.
	CircleShape ShapeKind = iota
	// RectangleShape colliders carry a Rect in world coordinates.
	RectangleShape
)

// Collider is a shape bound to a body, with the attributes that govern
// how it participates in overlap detection and resolution. The shape
// is always in world coordinates; World.Step refreshes it from the
// owning body's position every step, after integration.
type Collider struct {
	body        BodyHandle
	kind        ShapeKind
	circle      geom.Circle
	rect        geom.Rect
	trigger     bool
	restitution float32
	id          int64
	idAssigned  bool
	enabled     bool
}

func newCollider(body BodyHandle, id int64) Collider {
	return Collider{
		body:    body,
		kind:    CircleShape,
		circle:  geom.Circle{Radius: 0},
		id:      id,
		enabled: true,
	}
}

// Body returns the handle of the body this collider is attached to.
func (c *Collider) Body() BodyHandle { return c.body }

// ID returns the collider's user-assigned identifier.
func (c *Collider) ID() int64 { return c.id }

// Kind returns which shape variant this collider currently carries.
func (c *Collider) Kind() ShapeKind { return c.kind }

// Circle returns the collider's circle shape. Only meaningful when
// Kind() == CircleShape.
func (c *Collider) Circle() geom.Circle { return c.circle }

// Rectangle returns the collider's rectangle shape. Only meaningful
// when Kind() == RectangleShape.
func (c *Collider) Rectangle() geom.Rect { return c.rect }

// SetCircle switches the collider to a circle shape with the given
// radius. The center keeps its last stored value until the next step
// re-centers it on the owning body's position.
func (c *Collider) SetCircle(radius float32) {
	c.kind = CircleShape
	c.circle = geom.Circle{Center: c.circle.Center, Radius: radius}
}

// SetRectangle switches the collider to a rectangle shape with the
// given size (width, height) from the owning body's position, which
// becomes the rectangle's min corner on the next refresh.
func (c *Collider) SetRectangle(size geom.Vec2) {
	c.kind = RectangleShape
	c.rect = geom.Rect{Min: c.rect.Min, Max: c.rect.Min.Add(size)}
}

// Trigger reports whether this collider is a trigger.
func (c *Collider) Trigger() bool { return c.trigger }

// SetTrigger sets whether this collider is a trigger. Trigger colliders
// participate in overlap detection and event dispatch but never in
// impulse resolution.
func (c *Collider) SetTrigger(trigger bool) { c.trigger = trigger }

// Restitution returns the collider's bounciness coefficient.
func (c *Collider) Restitution() float32 { return c.restitution }

// SetRestitution sets the collider's bounciness coefficient, clamped to
// [0, 1].
func (c *Collider) SetRestitution(e float32) {
	if e < 0 {
		e = 0
	}
	if e > 1 {
		e = 1
	}
	c.restitution = e
}

// Enabled reports whether this collider takes part in the next step's
// quadtree rebuild and narrow-phase pass.
func (c *Collider) Enabled() bool { return c.enabled }

// SetEnabled toggles whether this collider takes part in the next
// step's quadtree rebuild and narrow-phase pass.
func (c *Collider) SetEnabled(enabled bool) { c.enabled = enabled }

// aabb returns the collider's current axis-aligned bounding box, used
// by the quadtree for insertion.
func (c *Collider) aabb() geom.Rect {
	if c.kind == CircleShape {
		return c.circle.AABB()
	}
	return c.rect
}

// refresh recomputes the collider's world-space shape from the body's
// position: a circle is re-centered, a rectangle is translated so its
// min corner equals the body's position.
func (c *Collider) refresh(bodyPos geom.Vec2) {
	if c.kind == CircleShape {
		c.circle = c.circle.Translate(bodyPos)
	} else {
		c.rect = c.rect.Translate(bodyPos)
	}
}
