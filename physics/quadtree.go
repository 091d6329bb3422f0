// Copyright © 2024 Galvanized Logic Inc.

package physics

import "github.com/galvanized-logic/collide2d/geom"

// QuadNode is one node of the broad-phase quadtree: its bounds, depth,
// the colliders it directly stores, and up to four children. Exposed
// read-only for introspection (see World.VisitQuadTree); the engine
// itself owns all mutation through the pooled quadTree type below.
type QuadNode struct {
	Bounds   geom.Rect
	Depth    int
	Children [4]int // -1 when absent, else the child's index in the internal node pool.
}

// quadItem is one collider stored directly in a node: its handle and
// the AABB it was inserted with, kept together so a split can
// redistribute contents without looking the collider back up.
type quadItem struct {
	handle ColliderHandle
	aabb   geom.Rect
}

// quadNode is the internal, mutable node representation backing QuadNode.
type quadNode struct {
	bounds   geom.Rect
	depth    int
	children [4]int
	items    []quadItem
}

// quadTree is a pooled quadtree rebuilt from scratch every step. Nodes
// are stored in a flat slice and referenced by index so the pool can be
// logically reset (index 0 becomes the new root, the rest marked free)
// without reallocating node storage across rebuilds.
type quadTree struct {
	nodes        []quadNode
	used         int
	maxDepth     int
	nodeCapacity int
}

const (
	defaultMaxDepth     = 5
	defaultNodeCapacity = 8
)

func newQuadTree(maxDepth, nodeCapacity int) *quadTree {
	return &quadTree{maxDepth: maxDepth, nodeCapacity: nodeCapacity}
}

// rebuild logically resets the pool to a single root node with the
// given bounds. Previously allocated node slots are reused in place
// where possible; only growth past the pool's current size allocates.
func (qt *quadTree) rebuild(bounds geom.Rect) {
	qt.used = 0
	qt.allocNode(bounds, 0)
}

// allocNode returns the index of a node initialized with bounds and
// depth, reusing a pooled slot when one is available at qt.used.
func (qt *quadTree) allocNode(bounds geom.Rect, depth int) int {
	idx := qt.used
	if idx < len(qt.nodes) {
		n := &qt.nodes[idx]
		n.bounds = bounds
		n.depth = depth
		n.children = [4]int{-1, -1, -1, -1}
		n.items = n.items[:0]
	} else {
		qt.nodes = append(qt.nodes, quadNode{
			bounds:   bounds,
			depth:    depth,
			children: [4]int{-1, -1, -1, -1},
		})
	}
	qt.used++
	return idx
}

// insert places a collider's AABB into the tree starting from the root,
// per the descent/split rule in the quadtree design: find the single
// child that fully contains the AABB and recurse, otherwise store it in
// the current node and split if now over capacity.
func (qt *quadTree) insert(handle ColliderHandle, aabb geom.Rect) {
	qt.insertAt(0, quadItem{handle: handle, aabb: aabb})
}

func (qt *quadTree) insertAt(nodeIdx int, item quadItem) {
	n := &qt.nodes[nodeIdx]
	if n.children[0] != -1 {
		target, count := qt.findSingleContainingChild(nodeIdx, item.aabb)
		if count == 1 {
			qt.insertAt(target, item)
			return
		}
		n.items = append(n.items, item)
		return
	}
	n.items = append(n.items, item)
	if len(n.items) > qt.nodeCapacity && n.depth < qt.maxDepth {
		qt.split(nodeIdx)
	}
}

// findSingleContainingChild returns the child index and the count of
// children whose bounds fully contain aabb. The caller recurses only
// when exactly one child qualifies; otherwise the item straddles a
// split line and stays at this node.
func (qt *quadTree) findSingleContainingChild(nodeIdx int, aabb geom.Rect) (target, count int) {
	n := &qt.nodes[nodeIdx]
	for i := 0; i < 4; i++ {
		child := n.children[i]
		if qt.nodes[child].bounds.Contains(aabb) {
			target = child
			count++
		}
	}
	return target, count
}

// split allocates four children with quadrant bounds and redistributes
// the node's direct contents into them, leaving in the node only those
// items straddling the split lines.
func (qt *quadTree) split(nodeIdx int) {
	bounds := qt.nodes[nodeIdx].bounds
	depth := qt.nodes[nodeIdx].depth

	var children [4]int
	for i := 0; i < 4; i++ {
		children[i] = qt.allocNode(bounds.Quadrant(i), depth+1)
	}
	// allocNode may have appended to qt.nodes, invalidating any earlier
	// pointer into it; re-fetch before writing.
	qt.nodes[nodeIdx].children = children

	old := make([]quadItem, len(qt.nodes[nodeIdx].items))
	copy(old, qt.nodes[nodeIdx].items)
	qt.nodes[nodeIdx].items = qt.nodes[nodeIdx].items[:0]

	for _, item := range old {
		target, count := qt.findSingleContainingChild(nodeIdx, item.aabb)
		if count == 1 {
			qt.insertAt(target, item)
		} else {
			qt.nodes[nodeIdx].items = append(qt.nodes[nodeIdx].items, item)
		}
	}
}

// visit walks the live portion of the pool depth-first starting at the
// root, calling fn with each node. Used by the public read-only
// introspection; broad-phase pair collection walks the tree itself.
func (qt *quadTree) visit(fn func(node *quadNode)) {
	if qt.used == 0 {
		return
	}
	qt.visitNode(0, fn)
}

func (qt *quadTree) visitNode(idx int, fn func(node *quadNode)) {
	n := &qt.nodes[idx]
	fn(n)
	if n.children[0] != -1 {
		for i := 0; i < 4; i++ {
			qt.visitNode(n.children[i], fn)
		}
	}
}
