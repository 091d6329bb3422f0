// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"testing"

	"github.com/galvanized-logic/collide2d/geom"
)

// pairKey normalizes a candidatePair for set membership comparisons,
// independent of the arbitrary a/b order collectCandidatePairs emits.
func pairKey(p candidatePair) (ColliderHandle, ColliderHandle) {
	if p.a.index < p.b.index {
		return p.a, p.b
	}
	return p.b, p.a
}

func TestCollectCandidatePairsNoDuplicates(t *testing.T) {
	qt := newQuadTree(5, 2)
	bounds := geom.Rect{Min: geom.Vec2{0, 0}, Max: geom.Vec2{100, 100}}
	qt.rebuild(bounds)

	const n = 20
	for i := 0; i < n; i++ {
		x := float32(i * 4 % 100)
		y := float32(i * 7 % 100)
		qt.insert(Handle{index: uint32(i)}, geom.Rect{Min: geom.Vec2{x, y}, Max: geom.Vec2{x + 1, y + 1}})
	}

	pairs := qt.collectCandidatePairs(nil)

	seen := map[[2]ColliderHandle]bool{}
	for _, p := range pairs {
		a, b := pairKey(p)
		key := [2]ColliderHandle{a, b}
		if seen[key] {
			t.Fatalf("duplicate candidate pair emitted: %v", key)
		}
		seen[key] = true
	}
}

func TestCollectCandidatePairsSameNode(t *testing.T) {
	qt := newQuadTree(5, 8)
	bounds := geom.Rect{Min: geom.Vec2{0, 0}, Max: geom.Vec2{100, 100}}
	qt.rebuild(bounds)

	// Three colliders all in the single unsplit root node should produce
	// exactly N*(N-1)/2 = 3 pairs.
	qt.insert(Handle{index: 1}, geom.Rect{Min: geom.Vec2{1, 1}, Max: geom.Vec2{2, 2}})
	qt.insert(Handle{index: 2}, geom.Rect{Min: geom.Vec2{3, 3}, Max: geom.Vec2{4, 4}})
	qt.insert(Handle{index: 3}, geom.Rect{Min: geom.Vec2{5, 5}, Max: geom.Vec2{6, 6}})

	pairs := qt.collectCandidatePairs(nil)
	if len(pairs) != 3 {
		t.Fatalf("got %d pairs, want 3", len(pairs))
	}
}

func TestCollectCandidatePairsAncestorCrossesQuadrants(t *testing.T) {
	qt := newQuadTree(5, 1)
	bounds := geom.Rect{Min: geom.Vec2{0, 0}, Max: geom.Vec2{100, 100}}
	qt.rebuild(bounds)

	// Force a split, leaving one straddling item at the root...
	qt.insert(Handle{index: 1}, geom.Rect{Min: geom.Vec2{1, 1}, Max: geom.Vec2{2, 2}})
	qt.insert(Handle{index: 2}, geom.Rect{Min: geom.Vec2{49, 1}, Max: geom.Vec2{51, 2}})
	// ...and one item fully inside a child quadrant.
	qt.insert(Handle{index: 3}, geom.Rect{Min: geom.Vec2{80, 80}, Max: geom.Vec2{81, 81}})

	pairs := qt.collectCandidatePairs(nil)

	found := map[[2]ColliderHandle]bool{}
	for _, p := range pairs {
		a, b := pairKey(p)
		found[[2]ColliderHandle{a, b}] = true
	}

	straddler := Handle{index: 2}
	leaf := Handle{index: 3}
	a, b := pairKey(candidatePair{a: straddler, b: leaf})
	if !found[[2]ColliderHandle{a, b}] {
		t.Error("a straddling ancestor item should still pair with a descendant leaf item")
	}
}
