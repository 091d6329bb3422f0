// Copyright © 2024 Galvanized Logic Inc.

package physics

// candidatePair is a broad-phase result: two collider handles whose
// AABBs are close enough (by quadtree placement) to be worth a
// narrow-phase test. Order is arbitrary; narrow-phase results are keyed
// by canonical pair, so pair order here never affects observable
// behavior.
type candidatePair struct {
	a, b ColliderHandle
}

// collectCandidatePairs walks the quadtree emitting, for every node,
// all pairs within its own direct contents and all pairs between its
// direct contents and the direct contents of every ancestor. Because
// every collider lives in exactly one node, no canonical pair can be
// emitted twice: a pair formed within one node's D×D or D×A sets can
// never recur at another node, since that would require one of the two
// colliders to live in two different nodes at once.
func (qt *quadTree) collectCandidatePairs(out []candidatePair) []candidatePair {
	if qt.used == 0 {
		return out
	}
	return qt.collectAt(0, nil, out)
}

func (qt *quadTree) collectAt(nodeIdx int, ancestors []quadItem, out []candidatePair) []candidatePair {
	n := &qt.nodes[nodeIdx]
	d := n.items

	for i := 0; i < len(d); i++ {
		for j := i + 1; j < len(d); j++ {
			out = append(out, candidatePair{a: d[i].handle, b: d[j].handle})
		}
	}
	for i := range d {
		for _, anc := range ancestors {
			out = append(out, candidatePair{a: d[i].handle, b: anc.handle})
		}
	}

	if n.children[0] == -1 {
		return out
	}

	merged := make([]quadItem, len(ancestors)+len(d))
	copy(merged, ancestors)
	copy(merged[len(ancestors):], d)

	for i := 0; i < 4; i++ {
		out = qt.collectAt(n.children[i], merged, out)
	}
	return out
}
