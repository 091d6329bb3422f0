// Copyright © 2024 Galvanized Logic Inc.

// Package physics is a real-time 2D rigid-body simulation. It integrates
// motion for dynamic bodies, indexes collider shapes in a quadtree,
// narrow-phase tests candidate pairs, dispatches trigger/collision
// events to a listener, and resolves non-trigger overlaps impulsively
// with restitution.
//
// Package physics is provided as the core of a small 2D engine. A
// rendering layer, input handling, and sample scenes are expected to be
// built on top of it; none of that lives here.
package physics

import (
	"log/slog"

	"github.com/galvanized-logic/collide2d/geom"
)

// World owns every body, collider, and quadtree node in one simulation.
// It is not safe for concurrent use; callers must externally serialize
// access to a single World.
type World struct {
	bodies    Arena[Body]
	colliders Arena[Collider]

	bounds geom.Rect
	tree   *quadTree

	maxDepth     int
	nodeCapacity int

	listener *ContactListener
	log      *slog.Logger

	gravity    geom.Vec2
	hasGravity bool

	bodyColliders map[BodyHandle][]ColliderHandle
	idOwners      map[int64]ColliderHandle

	prevOverlaps map[overlapKey]overlapRecord
	pairScratch  []candidatePair
}

// Option configures a World at construction time.
type Option func(*World)

// WithMaxDepth overrides the quadtree's maximum split depth.
func WithMaxDepth(depth int) Option { return func(w *World) { w.maxDepth = depth } }

// WithNodeCapacity overrides the number of colliders a quadtree node
// holds before it splits.
func WithNodeCapacity(capacity int) Option { return func(w *World) { w.nodeCapacity = capacity } }

// WithLogger overrides the logger used for recoverable anomalies
// (stale handles passed to destroy, listener panics). The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option { return func(w *World) { w.log = l } }

// WithGravity installs a constant acceleration applied to every enabled
// Dynamic body every step (as a force of g times the body's mass), saving callers from an AddForce call
// on every body every frame. Off by default: a World with no configured
// gravity behaves exactly as the base integrator specifies, with no
// implicit force ever added.
func WithGravity(g geom.Vec2) Option {
	return func(w *World) {
		w.gravity = g
		w.hasGravity = true
	}
}

// NewWorld creates an empty World with the given bounds, used as the
// quadtree's root. Bounds must have Min strictly less than Max on both
// axes.
func NewWorld(bounds geom.Rect, opts ...Option) (*World, error) {
	if !bounds.Valid() {
		return nil, newErr(InvalidArgument, "new_world", nil)
	}
	w := &World{
		bounds:        bounds,
		maxDepth:      defaultMaxDepth,
		nodeCapacity:  defaultNodeCapacity,
		log:           slog.Default(),
		bodyColliders: make(map[BodyHandle][]ColliderHandle),
		idOwners:      make(map[int64]ColliderHandle),
		prevOverlaps:  make(map[overlapKey]overlapRecord),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.tree = newQuadTree(w.maxDepth, w.nodeCapacity)
	return w, nil
}

// CreateBody allocates a body with zero velocity, zero force, unit
// mass, and Dynamic kind, and returns a handle to it.
func (w *World) CreateBody() BodyHandle {
	return w.bodies.Allocate(newBody())
}

// GetBody resolves h to the body it references.
func (w *World) GetBody(h BodyHandle) (*Body, error) {
	b, ok := w.bodies.Get(h)
	if !ok {
		return nil, newErr(StaleHandle, "get_body", nil)
	}
	return b, nil
}

// DestroyBody frees h's slot, bumps its generation, and transitively
// destroys every collider still owned by it.
func (w *World) DestroyBody(h BodyHandle) error {
	if _, ok := w.bodies.Get(h); !ok {
		w.log.Debug("destroy_body on stale handle", "handle", h)
		return newErr(StaleHandle, "destroy_body", nil)
	}
	for _, ch := range w.bodyColliders[h] {
		w.destroyColliderSlot(ch)
	}
	delete(w.bodyColliders, h)
	w.bodies.Free(h)
	return nil
}

// CreateCollider attaches a new collider to bodyHandle: a degenerate
// circle of radius 0 at the body's current position, not a trigger,
// restitution 0, identifier 0. Assign a caller-chosen identifier with
// SetColliderID before relying on equality or overlap tracking between
// colliders that share the default identifier.
func (w *World) CreateCollider(bodyHandle BodyHandle) (ColliderHandle, error) {
	body, ok := w.bodies.Get(bodyHandle)
	if !ok {
		return ColliderHandle{}, newErr(StaleHandle, "create_collider", nil)
	}
	c := newCollider(bodyHandle, 0)
	c.circle = geom.Circle{Center: body.position, Radius: 0}
	h := w.colliders.Allocate(c)
	w.bodyColliders[bodyHandle] = append(w.bodyColliders[bodyHandle], h)
	return h, nil
}

// GetCollider resolves h to the collider it references.
func (w *World) GetCollider(h ColliderHandle) (*Collider, error) {
	c, ok := w.colliders.Get(h)
	if !ok {
		return nil, newErr(StaleHandle, "get_collider", nil)
	}
	return c, nil
}

// SetColliderID assigns id as h's user-facing identifier, used for
// canonical pair ordering and equality. Fails with InvalidArgument if
// id is already assigned to a different live collider.
func (w *World) SetColliderID(h ColliderHandle, id int64) error {
	c, ok := w.colliders.Get(h)
	if !ok {
		return newErr(StaleHandle, "set_collider_id", nil)
	}
	if owner, used := w.idOwners[id]; used && owner != h {
		return newErr(InvalidArgument, "set_collider_id", nil)
	}
	if c.idAssigned {
		delete(w.idOwners, c.id)
	}
	c.id = id
	c.idAssigned = true
	w.idOwners[id] = h
	return nil
}

// DestroyCollider frees h's slot and detaches it from its owning body's
// collider list.
func (w *World) DestroyCollider(h ColliderHandle) error {
	c, ok := w.colliders.Get(h)
	if !ok {
		w.log.Debug("destroy_collider on stale handle", "handle", h)
		return newErr(StaleHandle, "destroy_collider", nil)
	}
	owner := c.body
	w.destroyColliderSlot(h)
	list := w.bodyColliders[owner]
	for i, ch := range list {
		if ch == h {
			w.bodyColliders[owner] = append(list[:i], list[i+1:]...)
			break
		}
	}
	return nil
}

// destroyColliderSlot does the low-level teardown shared by
// DestroyCollider and the cascade from DestroyBody: release the
// identifier, drop any overlap record referencing this collider (an
// exit event for a destroyed participant is suppressed, a documented
// choice rather than an oversight), and free the arena slot.
func (w *World) destroyColliderSlot(h ColliderHandle) {
	c, ok := w.colliders.Get(h)
	if !ok {
		return
	}
	if c.idAssigned {
		delete(w.idOwners, c.id)
	}
	for key, rec := range w.prevOverlaps {
		if rec.a == h || rec.b == h {
			delete(w.prevOverlaps, key)
		}
	}
	w.colliders.Free(h)
}

// SetContactListener installs listener, replacing any previously
// installed one. Passing nil clears it. The World keeps the pointer
// until it is replaced or cleared, and invokes its callbacks only during
// each Step's dispatch.
func (w *World) SetContactListener(listener *ContactListener) {
	w.listener = listener
}

// VisitQuadTree walks the current quadtree depth-first, calling fn once
// per node with its bounds and depth. Intended for read-only debug
// rendering; the tree reflects the state as of the most recent Step.
func (w *World) VisitQuadTree(fn func(node QuadNode)) {
	w.tree.visit(func(n *quadNode) {
		fn(QuadNode{Bounds: n.bounds, Depth: n.depth, Children: n.children})
	})
}

// Clear frees every body, collider, and quadtree node, and drops the
// overlap set. The World remains usable afterward.
func (w *World) Clear() {
	w.bodies.Reset()
	w.colliders.Reset()
	w.tree = newQuadTree(w.maxDepth, w.nodeCapacity)
	w.bodyColliders = make(map[BodyHandle][]ColliderHandle)
	w.idOwners = make(map[int64]ColliderHandle)
	w.prevOverlaps = make(map[overlapKey]overlapRecord)
}

// Step advances the simulation by dt seconds: integrate, reset forces,
// refresh collider shapes, rebuild the broad-phase index, narrow-phase
// test candidate pairs, dispatch enter/exit events, then resolve
// non-trigger overlaps. dt must be non-negative; dt == 0 is legal and
// still rebuilds the index and emits transition events for any overlap
// state user code changed manually between steps.
func (w *World) Step(dt float32) error {
	if dt < 0 {
		return newErr(InvalidArgument, "step", nil)
	}

	if w.hasGravity {
		w.bodies.Each(func(_ BodyHandle, b *Body) {
			if b.enabled && b.kind == Dynamic && b.invMass != 0 {
				b.AddForce(w.gravity.Scale(1 / b.invMass))
			}
		})
	}
	w.bodies.Each(func(_ BodyHandle, b *Body) {
		if b.enabled {
			b.integrate(dt)
		}
	})
	w.bodies.Each(func(_ BodyHandle, b *Body) { b.clearForce() })

	w.colliders.Each(func(_ ColliderHandle, c *Collider) {
		if body, ok := w.bodies.Get(c.body); ok {
			c.refresh(body.position)
		}
	})

	w.tree.rebuild(w.bounds)
	w.colliders.Each(func(h ColliderHandle, c *Collider) {
		body, ok := w.bodies.Get(c.body)
		if c.enabled && ok && body.enabled {
			w.tree.insert(h, c.aabb())
		}
	})

	w.pairScratch = w.tree.collectCandidatePairs(w.pairScratch[:0])

	curr := make(map[overlapKey]overlapRecord, len(w.pairScratch))
	type resolution struct {
		ca, cb *Collider
		m      manifold
	}
	var toResolve []resolution

	for _, p := range w.pairScratch {
		ca, ok1 := w.colliders.Get(p.a)
		cb, ok2 := w.colliders.Get(p.b)
		if !ok1 || !ok2 || !ca.enabled || !cb.enabled {
			continue
		}
		m := testColliders(ca, cb)
		if !m.overlap {
			continue
		}
		key, ha, hb := canonicalKey(p.a, p.b, ca, cb)
		trigger := ca.trigger || cb.trigger
		curr[key] = overlapRecord{key: key, a: ha, b: hb, trigger: trigger}
		if !trigger {
			toResolve = append(toResolve, resolution{ca: ca, cb: cb, m: m})
		}
	}

	enters, exits := diffOverlaps(w.prevOverlaps, curr)
	dispatchErr := dispatch(w.listener, enters, exits, w.log)
	w.prevOverlaps = curr

	for _, r := range toResolve {
		ba, ok1 := w.bodies.Get(r.ca.body)
		bb, ok2 := w.bodies.Get(r.cb.body)
		if !ok1 || !ok2 {
			continue
		}
		resolve(ba, bb, r.ca.restitution, r.cb.restitution, r.m)
	}

	return dispatchErr
}
