// Copyright © 2024 Galvanized Logic Inc.

package physics

import "testing"

func rec(id1, id2 int64, trigger bool) overlapRecord {
	key := overlapKey{id1, id2}
	if id2 < id1 {
		key = overlapKey{id2, id1}
	}
	return overlapRecord{key: key, a: Handle{index: uint32(id1)}, b: Handle{index: uint32(id2)}, trigger: trigger}
}

func TestCanonicalKeyOrdersBySmallerID(t *testing.T) {
	a := &Collider{id: 5}
	b := &Collider{id: 2}
	key, first, second := canonicalKey(Handle{index: 1}, Handle{index: 2}, a, b)
	if key != (overlapKey{2, 5}) {
		t.Fatalf("got key %v, want {2, 5}", key)
	}
	if first.index != 2 || second.index != 1 {
		t.Errorf("expected handles reordered to put the lower id first, got %v, %v", first, second)
	}
}

func TestDiffOverlapsDetectsEnterAndExit(t *testing.T) {
	prev := map[overlapKey]overlapRecord{
		{1, 2}: rec(1, 2, false),
		{3, 4}: rec(3, 4, false),
	}
	curr := map[overlapKey]overlapRecord{
		{1, 2}: rec(1, 2, false), // unchanged: no event
		{5, 6}: rec(5, 6, false), // new: enter
	}

	enters, exits := diffOverlaps(prev, curr)
	if len(enters) != 1 || enters[0].key != (overlapKey{5, 6}) {
		t.Errorf("got enters %v, want one record for {5,6}", enters)
	}
	if len(exits) != 1 || exits[0].key != (overlapKey{3, 4}) {
		t.Errorf("got exits %v, want one record for {3,4}", exits)
	}
}

func TestDiffOverlapsNoChangeNoEvents(t *testing.T) {
	m := map[overlapKey]overlapRecord{{1, 2}: rec(1, 2, false)}
	enters, exits := diffOverlaps(m, m)
	if len(enters) != 0 || len(exits) != 0 {
		t.Errorf("identical sets should produce no events, got enters=%v exits=%v", enters, exits)
	}
}

func TestDispatchChoosesTriggerVariant(t *testing.T) {
	var triggerEnters, collisionEnters int
	listener := &ContactListener{
		OnTriggerEnter:   func(a, b ColliderHandle) { triggerEnters++ },
		OnCollisionEnter: func(a, b ColliderHandle) { collisionEnters++ },
	}
	enters := []overlapRecord{rec(1, 2, true), rec(3, 4, false)}
	if err := dispatch(listener, enters, nil, nil); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	if triggerEnters != 1 || collisionEnters != 1 {
		t.Errorf("got triggerEnters=%d collisionEnters=%d, want 1 and 1", triggerEnters, collisionEnters)
	}
}

func TestDispatchNilListenerIsNoop(t *testing.T) {
	if err := dispatch(nil, []overlapRecord{rec(1, 2, false)}, nil, nil); err != nil {
		t.Errorf("nil listener should be a no-op, got error: %v", err)
	}
}

func TestDispatchRecoversPanicAndContinues(t *testing.T) {
	var secondCalled bool
	listener := &ContactListener{
		OnCollisionEnter: func(a, b ColliderHandle) {
			if a.index == 1 {
				panic("boom")
			}
			secondCalled = true
		},
	}
	enters := []overlapRecord{rec(1, 2, false), rec(3, 4, false)}
	err := dispatch(listener, enters, nil, nil)
	if err == nil {
		t.Fatal("expected a wrapped panic error")
	}
	var perr *Error
	if !asError(err, &perr) || perr.Kind != ListenerPanic {
		t.Errorf("expected a ListenerPanic error, got %v", err)
	}
	if !secondCalled {
		t.Error("a panicking callback should not stop the remaining dispatches")
	}
}

// asError is a small errors.As shim kept local to this test file so it
// doesn't pull in the errors package just for one assertion.
func asError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
