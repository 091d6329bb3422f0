// Copyright © 2024 Galvanized Logic Inc.

package physics

import "github.com/galvanized-logic/collide2d/geom"

// Kind distinguishes how a Body participates in integration and
// resolution. Kind is never rotational or orientation related; this
// engine has no rotational dynamics (see Non-goals).
type Kind int

const (
	// Static bodies never move; inverse mass is always zero and the
	// integrator leaves their position and velocity unchanged regardless
	// of accumulated force.
	Static Kind = iota
	// Kinematic bodies move according to a velocity the caller sets
	// directly. They integrate position but never respond to force;
	// their inverse mass is zero like Static, for the same resolution
	// formulas, but step(dt) still advances their position by velocity.
	Kinematic
	// Dynamic bodies are driven by accumulated force and participate
	// fully in impulse resolution.
	Dynamic
)

// Body is the physical state of one simulated object: position,
// velocity, accumulated force, and the kind that governs how step(dt)
// treats it. Bodies are allocated and destroyed through a World; the
// caller mutates a live Body's fields between steps via its methods,
// and the integrator mutates them during step(dt).
type Body struct {
	position Vec2
	velocity Vec2
	force    Vec2
	invMass  float32
	kind     Kind
	enabled  bool
}

// Vec2 is an alias so physics call sites read naturally without forcing
// every caller to also import geom for this one type.
type Vec2 = geom.Vec2

func newBody() Body {
	return Body{invMass: 1, kind: Dynamic, enabled: true}
}

// Position returns the body's current position.
func (b *Body) Position() Vec2 { return b.position }

// SetPosition overrides the body's position directly. Used by callers
// that move a body outside of force-driven simulation (e.g. respawning,
// or a Kinematic body under direct script control).
func (b *Body) SetPosition(p Vec2) { b.position = p }

// Velocity returns the body's current linear velocity.
func (b *Body) Velocity() Vec2 { return b.velocity }

// SetVelocity overrides the body's velocity directly. This is the only
// way to drive a Kinematic body, which never responds to AddForce.
func (b *Body) SetVelocity(v Vec2) { b.velocity = v }

// Kind returns the body's kind.
func (b *Body) Kind() Kind { return b.kind }

// SetMass sets the body's mass and switches it to Dynamic. A mass of
// zero is invalid for a Dynamic body; use SetStatic or SetKinematic
// instead of trying to express an immovable body with zero mass.
func (b *Body) SetMass(mass float32) error {
	if mass <= 0 {
		return newErr(InvalidArgument, "set_mass", nil)
	}
	b.invMass = 1 / mass
	b.kind = Dynamic
	return nil
}

// SetStatic marks the body immovable: inverse mass zero, kind Static.
func (b *Body) SetStatic() {
	b.invMass = 0
	b.kind = Static
}

// SetKinematic marks the body as caller-driven: inverse mass zero (it
// never responds to force), kind Kinematic, but step(dt) still
// integrates its position from its velocity.
func (b *Body) SetKinematic() {
	b.invMass = 0
	b.kind = Kinematic
}

// Enabled reports whether the body participates in the next step.
func (b *Body) Enabled() bool { return b.enabled }

// SetEnabled toggles whether the body participates in the next step.
func (b *Body) SetEnabled(enabled bool) { b.enabled = enabled }

// AddForce accumulates f into the body's force for the next integration.
// A no-op on Static and Kinematic bodies, which never respond to force.
func (b *Body) AddForce(f Vec2) {
	if b.kind != Dynamic {
		return
	}
	b.force = b.force.Add(f)
}

// inverseMass returns the body's inverse mass, zero for Static and
// Kinematic bodies.
func (b *Body) inverseMass() float32 { return b.invMass }

// integrate advances the body by one semi-implicit Euler step:
// velocity is updated from the current force first, then position is
// updated from the new velocity. Static bodies are untouched. Kinematic
// bodies integrate position from their externally set velocity but
// never accumulate force (AddForce already refused it).
func (b *Body) integrate(dt float32) {
	if b.kind == Static {
		return
	}
	if b.kind == Dynamic {
		b.velocity = b.velocity.Add(b.force.Scale(b.invMass * dt))
	}
	b.position = b.position.Add(b.velocity.Scale(dt))
}

// clearForce resets accumulated force to zero. Called on every body at
// the end of every step, dynamic or not, so invariant 5 (force is zero
// at step end) holds universally.
func (b *Body) clearForce() { b.force = geom.Zero }
