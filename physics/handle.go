// Copyright © 2024 Galvanized Logic Inc.

package physics

// handle.go implements a slot-based arena with generational handles.
// Bodies and colliders are both allocated from an Arena[T]; a handle
// returned from Allocate is a value (index, generation) and carries no
// lifetime obligation beyond refusing to resolve after Free.

// Handle is a stable reference to a slot in an Arena. Resolving a handle
// only succeeds while the slot's generation matches the generation the
// handle was allocated with.
type Handle struct {
	index      uint32
	generation uint32
}

// BodyHandle references a Body allocated by a World.
type BodyHandle = Handle

// ColliderHandle references a Collider allocated by a World.
type ColliderHandle = Handle

// slot holds one arena entry: a generation counter and, while occupied,
// the payload.
type slot[T any] struct {
	generation uint32
	occupied   bool
	value      T
}

// Arena is a generational slot allocator. The zero value is ready to use.
type Arena[T any] struct {
	slots    []slot[T]
	freelist []uint32
}

// Allocate stores value in a free slot (reusing one from the freelist
// when available) and returns a handle to it.
func (a *Arena[T]) Allocate(value T) Handle {
	if n := len(a.freelist); n > 0 {
		idx := a.freelist[n-1]
		a.freelist = a.freelist[:n-1]
		s := &a.slots[idx]
		s.occupied = true
		s.value = value
		return Handle{index: idx, generation: s.generation}
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{generation: 0, occupied: true, value: value})
	return Handle{index: idx, generation: 0}
}

// Get resolves h to its payload. ok is false, and the returned value is
// the zero value, when h's generation no longer matches the slot (the
// slot was freed and possibly reused).
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil, false
	}
	return &s.value, true
}

// Free releases the slot referenced by h, bumping its generation so any
// outstanding copies of h stop resolving. Freeing an already-stale or
// out-of-range handle is a no-op and reports false.
func (a *Arena[T]) Free(h Handle) bool {
	if int(h.index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return false
	}
	var zero T
	s.value = zero
	s.occupied = false
	s.generation++
	a.freelist = append(a.freelist, h.index)
	return true
}

// Reset discards every slot and the freelist, returning the arena to its
// zero-value state. Used by World.Clear.
func (a *Arena[T]) Reset() {
	a.slots = a.slots[:0]
	a.freelist = a.freelist[:0]
}

// Each calls fn for every currently occupied slot, passing the handle
// that resolves to it and a pointer to its payload. fn must not call
// Allocate or Free on the same arena while iterating.
func (a *Arena[T]) Each(fn func(Handle, *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.occupied {
			fn(Handle{index: uint32(i), generation: s.generation}, &s.value)
		}
	}
}

// Len returns the number of currently occupied slots.
func (a *Arena[T]) Len() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].occupied {
			n++
		}
	}
	return n
}
