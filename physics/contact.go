// Copyright © 2024 Galvanized Logic Inc.

package physics

import "log/slog"

// ContactListener is the capability set a World dispatches overlap
// transitions to: four independently optional callbacks rather than a
// base class with virtual methods to override, since Go has no
// inheritance. Any nil field is a no-op, matching the "each a no-op by
// default" contract.
type ContactListener struct {
	OnTriggerEnter   func(a, b ColliderHandle)
	OnTriggerExit    func(a, b ColliderHandle)
	OnCollisionEnter func(a, b ColliderHandle)
	OnCollisionExit  func(a, b ColliderHandle)
}

// overlapKey is the canonical, unordered identity of a contacting pair:
// the pair's collider identifiers with the smaller one first. Two
// colliders are the same pair regardless of which order narrow-phase
// happened to test them in.
type overlapKey struct {
	minID, maxID int64
}

// overlapRecord is one entry in the current or previous overlap set: the
// canonical key, the handles in canonical order (so dispatch always
// calls the listener with a consistent a, b ordering), and whether
// either side is a trigger, which decides the event variant.
type overlapRecord struct {
	key     overlapKey
	a, b    ColliderHandle
	trigger bool
}

// canonicalKey returns the pair's canonical overlap key and the two
// collider handles reordered so the lower identifier comes first.
func canonicalKey(ha, hb ColliderHandle, a, b *Collider) (overlapKey, ColliderHandle, ColliderHandle) {
	if a.id < b.id {
		return overlapKey{a.id, b.id}, ha, hb
	}
	return overlapKey{b.id, a.id}, hb, ha
}

// diffOverlaps compares the previous step's overlap set against the
// current one, returning the enter and exit transitions per the state
// machine: a key present only in curr is an enter, present only in prev
// is an exit, present in both or neither produces no event.
func diffOverlaps(prev, curr map[overlapKey]overlapRecord) (enters, exits []overlapRecord) {
	for key, rec := range curr {
		if _, was := prev[key]; !was {
			enters = append(enters, rec)
		}
	}
	for key, rec := range prev {
		if _, is := curr[key]; !is {
			exits = append(exits, rec)
		}
	}
	return enters, exits
}

// dispatch invokes listener callbacks for every enter and exit
// transition, choosing the trigger or collision variant from each
// record's trigger flag. A panicking callback is recovered so the rest
// of the transitions still get dispatched; the first panic observed is
// returned, wrapped as a ListenerPanic error, after all dispatch
// finishes.
func dispatch(listener *ContactListener, enters, exits []overlapRecord, log *slog.Logger) error {
	if listener == nil {
		return nil
	}
	var firstPanic any
	call := func(fn func(a, b ColliderHandle), a, b ColliderHandle) {
		if fn == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil && firstPanic == nil {
				firstPanic = r
			}
		}()
		fn(a, b)
	}
	for _, rec := range enters {
		if rec.trigger {
			call(listener.OnTriggerEnter, rec.a, rec.b)
		} else {
			call(listener.OnCollisionEnter, rec.a, rec.b)
		}
	}
	for _, rec := range exits {
		if rec.trigger {
			call(listener.OnTriggerExit, rec.a, rec.b)
		} else {
			call(listener.OnCollisionExit, rec.a, rec.b)
		}
	}
	if firstPanic != nil {
		if log != nil {
			log.Error("contact listener panicked during dispatch", "recovered", firstPanic)
		}
		return newErr(ListenerPanic, "dispatch", panicError{firstPanic})
	}
	return nil
}

// panicError adapts a recovered panic value into an error so it can be
// wrapped by *Error.
type panicError struct{ value any }

func (p panicError) Error() string { return "recovered: " + errString(p.value) }

func errString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "non-error panic value"
}
