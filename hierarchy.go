package spatial

import (
	"fmt"
	"math/bits"
)

// hierarchyNode is one entry of the flat hierarchy array. A leaf carries the
// id of the caller's box; an internal node carries the array index of its
// right child. The left child of an internal node at i is always i+1.
type hierarchyNode struct {
	box   AABB
	leaf  bool
	id    int
	right int
}

// MortonHierarchy is a static bounding volume hierarchy for box-overlap
// queries. Boxes are ordered along a Morton curve and packed into a balanced
// binary tree stored in pre-order in a single slice of 2N-1 nodes.
//
// For N = 2^n + m boxes the tree has 2^n leaf slots, m of which hold two
// boxes under one extra internal node. The doubled slots are spread evenly
// across the row so no subtree is more than one level deeper than another.
type MortonHierarchy struct {
	nodes []hierarchyNode
	n     int
}

// NewMortonHierarchy returns an empty hierarchy.
func NewMortonHierarchy() *MortonHierarchy { return &MortonHierarchy{} }

// Build copies boxes into the hierarchy. It returns ErrEmptyInput when boxes
// is empty.
func (h *MortonHierarchy) Build(boxes []AABB) error {
	n := len(boxes)
	if n == 0 {
		return fmt.Errorf("%w: morton hierarchy needs at least one box", ErrEmptyInput)
	}

	order := mortonOrder(boxes)
	sorted := make([]AABB, n)
	for i, j := range order {
		sorted[i] = boxes[j]
	}

	depth := bits.Len(uint(n)) - 1
	b := hierarchyBuilder{
		boxes:   sorted,
		slots:   1 << depth,
		doubled: n - 1<<depth,
		nodes:   make([]hierarchyNode, 0, 2*n-1),
	}
	b.build(0, b.slots)

	h.nodes = b.nodes
	h.n = n
	return nil
}

// Overlaps returns the ids of all indexed boxes overlapping query.
func (h *MortonHierarchy) Overlaps(query AABB) []int {
	if len(h.nodes) == 0 {
		return nil
	}
	return h.overlaps(0, query, nil)
}

func (h *MortonHierarchy) overlaps(i int, query AABB, out []int) []int {
	node := &h.nodes[i]
	if !node.box.Overlaps(query) {
		return out
	}
	if node.leaf {
		return append(out, node.id)
	}
	out = h.overlaps(i+1, query, out)
	return h.overlaps(node.right, query, out)
}

// Len returns the number of indexed boxes.
func (h *MortonHierarchy) Len() int { return h.n }

// NumNodes returns the size of the node array (2*Len()-1 after Build).
func (h *MortonHierarchy) NumNodes() int { return len(h.nodes) }

// Bounds returns the box enclosing every indexed box.
func (h *MortonHierarchy) Bounds() AABB {
	if len(h.nodes) == 0 {
		return NewAABBAt(0, 0, 0)
	}
	return h.nodes[0].box
}

// Validate checks that every internal node contains both of its children and
// that exactly Len() leaves are reachable from the root.
func (h *MortonHierarchy) Validate() error {
	if h.n == 0 {
		return fmt.Errorf("%w: not built", ErrInvalidHierarchy)
	}
	if len(h.nodes) != 2*h.n-1 {
		return fmt.Errorf("%w: %d nodes for %d boxes", ErrInvalidHierarchy, len(h.nodes), h.n)
	}
	leaves, err := h.validateNode(0)
	if err != nil {
		return err
	}
	if leaves != h.n {
		return fmt.Errorf("%w: %d reachable leaves, want %d", ErrInvalidHierarchy, leaves, h.n)
	}
	return nil
}

func (h *MortonHierarchy) validateNode(i int) (int, error) {
	node := h.nodes[i]
	if node.leaf {
		return 1, nil
	}
	left, right := i+1, node.right
	if right <= left || right >= len(h.nodes) {
		return 0, fmt.Errorf("%w: node %d has right child %d", ErrInvalidHierarchy, i, right)
	}
	total := 0
	for _, c := range [2]int{left, right} {
		if !node.box.Contains(h.nodes[c].box) {
			return 0, fmt.Errorf("%w: node %d does not contain child %d", ErrInvalidHierarchy, i, c)
		}
		leaves, err := h.validateNode(c)
		if err != nil {
			return 0, err
		}
		total += leaves
	}
	return total, nil
}

// hierarchyBuilder lays out the node array in pre-order.
type hierarchyBuilder struct {
	boxes   []AABB // Morton-sorted
	slots   int    // 2^n leaf slots
	doubled int    // m slots holding two boxes
	nodes   []hierarchyNode
}

// build emits the subtree over leaf slots [lo, hi) and returns its root index.
func (b *hierarchyBuilder) build(lo, hi int) int {
	if hi-lo == 1 {
		return b.buildSlot(lo)
	}
	idx := b.reserve()
	mid := (lo + hi) / 2
	left := b.build(lo, mid)
	right := b.build(mid, hi)
	b.setInternal(idx, left, right)
	return idx
}

// buildSlot emits leaf slot s: a single leaf, or an internal node over two
// sibling leaves when the slot is doubled.
func (b *hierarchyBuilder) buildSlot(s int) int {
	first := s + b.doubledBefore(s)
	if b.doubledBefore(s+1) == b.doubledBefore(s) {
		return b.leaf(first)
	}
	idx := b.reserve()
	left := b.leaf(first)
	right := b.leaf(first + 1)
	b.setInternal(idx, left, right)
	return idx
}

// doubledBefore returns how many of the slots [0, s) are doubled.
func (b *hierarchyBuilder) doubledBefore(s int) int {
	return s * b.doubled / b.slots
}

func (b *hierarchyBuilder) reserve() int {
	b.nodes = append(b.nodes, hierarchyNode{})
	return len(b.nodes) - 1
}

func (b *hierarchyBuilder) leaf(i int) int {
	box := b.boxes[i]
	b.nodes = append(b.nodes, hierarchyNode{box: box, leaf: true, id: box.ID})
	return len(b.nodes) - 1
}

func (b *hierarchyBuilder) setInternal(idx, left, right int) {
	b.nodes[idx] = hierarchyNode{
		box:   Union(b.nodes[left].box, b.nodes[right].box),
		right: right,
	}
}
