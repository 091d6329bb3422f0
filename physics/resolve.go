// Copyright © 2024 Galvanized Logic Inc.

package physics

// positionalSlop absorbs a small amount of penetration before applying
// positional correction, avoiding jitter between resting bodies.
const positionalSlop = float32(0.01)

// resolve applies impulse and positional correction for one overlapping,
// non-trigger pair. m.normal is expected to point from a to b.
func resolve(a, b *Body, ea, eb float32, m manifold) {
	n := m.normal
	relVel := b.velocity.Sub(a.velocity).Dot(n)
	if relVel >= 0 {
		return // separating or resting; nothing to resolve
	}

	im := a.invMass + b.invMass
	if im == 0 {
		return // two immovable bodies
	}

	restitution := ea
	if eb < restitution {
		restitution = eb
	}

	j := -(1 + restitution) * relVel / im
	impulse := n.Scale(j)
	a.velocity = a.velocity.Sub(impulse.Scale(a.invMass))
	b.velocity = b.velocity.Add(impulse.Scale(b.invMass))

	penetration := m.penetration - positionalSlop
	if penetration <= 0 {
		return
	}
	correction := n.Scale(penetration / im)
	a.position = a.position.Sub(correction.Scale(a.invMass))
	b.position = b.position.Add(correction.Scale(b.invMass))
}
