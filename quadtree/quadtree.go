// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import "fmt"

const (
	// DefaultCapacity is the maximum number of entries a leaf holds
	// before it is subdivided, unless overridden by Options.Capacity.
	DefaultCapacity = 4
	// DefaultMaxDepth is the depth beyond which leaves are never
	// subdivided, unless overridden by Options.MaxDepth. The root is at
	// depth 0.
	DefaultMaxDepth = 32
)

// An Entry is a single (point, value) pair stored in a leaf.
type Entry[T any] struct {
	Point Point
	Value T
}

// Options tunes a Tree. The zero value selects the defaults.
type Options struct {
	// Capacity is the maximum number of entries held by a leaf. Zero
	// means DefaultCapacity.
	Capacity int
	// MaxDepth is the maximum depth of any node. A full leaf at this
	// depth is not subdivided and further inserts into it fail with
	// ErrMaxDepth. Zero means DefaultMaxDepth.
	MaxDepth int
	// Strict makes range search use Region.Intersects, an exact
	// rectangle intersection test, instead of the corner-containment
	// approximation Region.Overlaps when deciding which children to
	// descend into.
	Strict bool
}

func validateOptions(opts *Options) {
	if opts.Capacity < 0 {
		fmtPanic("capacity must not be negative (got %d)", opts.Capacity)
	} else if opts.MaxDepth < 0 {
		fmtPanic("max depth must not be negative (got %d)", opts.MaxDepth)
	}
}

// A node is a cell of the tree. All nodes live in the Tree's nodes
// slice. A leaf has first == 0 and holds its entries directly. An
// internal node has no entries and first is the index of its NW child,
// with the NE, SW, and SE children following contiguously. Since the
// root is at index 0 and is never anyone's child, zero is never a valid
// child index.
type node[T any] struct {
	region  Region
	depth   int
	first   int
	entries []Entry[T]
}

func (n *node[T]) isLeaf() bool {
	return n.first == 0
}

// Tree is a point-keyed region quadtree storing values of type T.
//
// Create a Tree with New or NewWithOptions. The zero value is not
// usable.
type Tree[T any] struct {
	// nodes is the arena holding every node. nodes[0] is the root.
	nodes []node[T]
	// capacity is the maximum number of entries per leaf.
	capacity int
	// maxDepth is the depth at which leaves stop subdividing.
	maxDepth int
	// depth is the depth of the deepest node created so far.
	depth int
	// numEntries is the total number of entries stored in the tree.
	numEntries int
	// overlaps decides whether range search descends into a child.
	overlaps func(child, window Region) bool
}

// New creates an empty tree covering the region with the given centre
// and half-extent, using the default capacity and maximum depth.
func New[T any](centre, size Point) *Tree[T] {
	return NewWithOptions[T](Region{Centre: centre, Size: size}, Options{})
}

// NewWithOptions creates an empty tree covering region r. Panics if
// either half-extent of r is negative or NaN, or if opts contains a
// negative capacity or maximum depth.
func NewWithOptions[T any](r Region, opts Options) *Tree[T] {
	if !(r.Size.X >= 0 && r.Size.Y >= 0) {
		fmtPanic("region size must not be negative (got %s)", r.Size)
	}
	validateOptions(&opts)

	t := &Tree[T]{
		capacity: DefaultCapacity,
		maxDepth: DefaultMaxDepth,
		overlaps: Region.Overlaps,
	}
	if opts.Capacity > 0 {
		t.capacity = opts.Capacity
	}
	if opts.MaxDepth > 0 {
		t.maxDepth = opts.MaxDepth
	}
	if opts.Strict {
		t.overlaps = Region.Intersects
	}
	t.nodes = []node[T]{{region: r, entries: make([]Entry[T], 0, t.capacity)}}
	return t
}

// Region returns the region covered by the tree's root.
func (t *Tree[T]) Region() Region {
	return t.nodes[0].region
}

// Len returns the number of entries stored in the tree.
func (t *Tree[T]) Len() int {
	return t.numEntries
}

// Capacity returns the maximum number of entries held by a leaf.
func (t *Tree[T]) Capacity() int {
	return t.capacity
}

// MaxDepth returns the depth at which leaves stop subdividing.
func (t *Tree[T]) MaxDepth() int {
	return t.maxDepth
}

// Insert stores value v at point p.
//
// Insert returns false with a nil error if p lies outside the tree's
// region; the tree is unchanged. If p would go into a full leaf which
// is already at the maximum depth, Insert returns false and an error
// for which errors.Is(err, ErrMaxDepth) is true; no entry is added or
// lost, although leaves on the path to p may have been subdivided.
// Otherwise the entry is stored and Insert returns true.
//
// Inserting the same point more than once stores it more than once.
func (t *Tree[T]) Insert(p Point, v T) (bool, error) {
	i := 0
	for {
		n := &t.nodes[i]
		if !n.isLeaf() {
			c, ok := t.child(i, p)
			if !ok {
				return false, nil
			}
			i = c
			continue
		}
		if !n.region.Contains(p) {
			return false, nil
		}
		if len(n.entries) < t.capacity {
			n.entries = append(n.entries, Entry[T]{Point: p, Value: v})
			t.numEntries++
			return true, nil
		}
		if n.depth >= t.maxDepth {
			return false, wrapErr("cannot insert %s into full leaf %s at depth %d", ErrMaxDepth, p, n.region, n.depth)
		}
		t.subdivide(i)
	}
}

// subdivide turns leaf i into an internal node with four empty leaf
// children and moves the leaf's entries into them. Children are
// appended to the arena, so any pointer into t.nodes held by the
// caller is invalid afterward.
func (t *Tree[T]) subdivide(i int) {
	parent := t.nodes[i].region
	depth := t.nodes[i].depth + 1
	first := len(t.nodes)
	for q := NW; q <= SE; q++ {
		t.nodes = append(t.nodes, node[T]{
			region:  parent.Quadrant(q),
			depth:   depth,
			entries: make([]Entry[T], 0, t.capacity),
		})
	}
	if depth > t.depth {
		t.depth = depth
	}

	entries := t.nodes[i].entries
	t.nodes[i].entries = nil
	t.nodes[i].first = first
	for _, e := range entries {
		c, ok := t.child(i, e.Point)
		if !ok {
			textPanic("logic error: leaf held a point outside its region")
		}
		// A leaf never holds more than capacity entries, so no child
		// can overflow here.
		t.nodes[c].entries = append(t.nodes[c].entries, e)
	}
}

// child returns the index of the child of internal node i which owns
// point p: the first child, in NW, NE, SW, SE order, whose region
// contains p. Returns false if node i itself does not contain p.
func (t *Tree[T]) child(i int, p Point) (int, bool) {
	n := &t.nodes[i]
	for q := NW; q <= SE; q++ {
		if t.nodes[n.first+int(q)].region.Contains(p) {
			return n.first + int(q), true
		}
	}
	if !n.region.Contains(p) {
		return 0, false
	}
	// Floating-point rounding in the child regions can leave a point on
	// the parent's outer edge outside all four children. Fall back to
	// the side of the centre the point is on.
	west := p.X <= n.region.Centre.X
	north := p.Y >= n.region.Centre.Y
	var q Quadrant
	switch {
	case north && west:
		q = NW
	case north:
		q = NE
	case west:
		q = SW
	default:
		q = SE
	}
	return n.first + int(q), true
}

// leaf returns the index of the leaf which owns point p, or false if p
// is outside the tree's region.
func (t *Tree[T]) leaf(p Point) (int, bool) {
	i := 0
	for !t.nodes[i].isLeaf() {
		c, ok := t.child(i, p)
		if !ok {
			return 0, false
		}
		i = c
	}
	return i, true
}

// Contains reports whether an entry was inserted at exactly point p.
func (t *Tree[T]) Contains(p Point) bool {
	_, ok := t.Find(p)
	return ok
}

// Find returns the value of the first entry inserted at exactly point
// p.
func (t *Tree[T]) Find(p Point) (v T, ok bool) {
	i, ok := t.leaf(p)
	if !ok {
		return
	}
	for _, e := range t.nodes[i].entries {
		if e.Point == p {
			return e.Value, true
		}
	}
	return v, false
}

// SearchFunc calls f for every entry whose point lies inside window,
// stopping early if f returns false. Entries are visited depth-first,
// children in NW, NE, SW, SE order, and each entry at most once.
//
// f must not modify the tree.
func (t *Tree[T]) SearchFunc(window Region, f func(Entry[T]) bool) {
	stack := make([]int, 1, 4*t.depth+1)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[i]
		if n.isLeaf() {
			for _, e := range n.entries {
				if window.Contains(e.Point) && !f(e) {
					return
				}
			}
			continue
		}
		// Push in reverse so that the children pop in NW, NE, SW, SE
		// order.
		for q := SE; q >= NW; q-- {
			c := n.first + int(q)
			if t.overlaps(t.nodes[c].region, window) {
				stack = append(stack, c)
			}
		}
	}
}

// Search returns the values of all entries whose point lies inside
// window, in the order SearchFunc visits them. The result is empty,
// not nil, if there are no matches.
func (t *Tree[T]) Search(window Region) []T {
	r := make([]T, 0)
	t.SearchFunc(window, func(e Entry[T]) bool {
		r = append(r, e.Value)
		return true
	})
	return r
}

// Query is shorthand for Search with the window given by its centre
// and half-extent.
func (t *Tree[T]) Query(centre, size Point) []T {
	return t.Search(Region{Centre: centre, Size: size})
}

// NodeInfo describes a single node visited by Walk.
type NodeInfo struct {
	// Region is the region covered by the node.
	Region Region
	// Depth is the node's depth. The root is at depth 0.
	Depth int
	// Leaf is true if the node is a leaf.
	Leaf bool
	// Entries is the number of entries held directly by the node,
	// always zero for an internal node.
	Entries int
}

// Walk calls f for every node in the tree in pre-order, children in
// NW, NE, SW, SE order, stopping early if f returns false.
func (t *Tree[T]) Walk(f func(NodeInfo) bool) {
	stack := make([]int, 1, 4*t.depth+1)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[i]
		info := NodeInfo{Region: n.region, Depth: n.depth, Leaf: n.isLeaf(), Entries: len(n.entries)}
		if !f(info) {
			return
		}
		if !info.Leaf {
			for q := SE; q >= NW; q-- {
				stack = append(stack, n.first+int(q))
			}
		}
	}
}

// Stats summarizes the shape of a tree.
type Stats struct {
	// Nodes is the total number of nodes, internal and leaf.
	Nodes int
	// Leaves is the number of leaf nodes.
	Leaves int
	// Depth is the depth of the deepest node.
	Depth int
	// Entries is the number of stored entries.
	Entries int
}

// Stats returns a summary of the tree's shape.
func (t *Tree[T]) Stats() Stats {
	// Every subdivision turns one leaf into an internal node and adds
	// four leaves.
	internal := (len(t.nodes) - 1) / 4
	return Stats{
		Nodes:   len(t.nodes),
		Leaves:  len(t.nodes) - internal,
		Depth:   t.depth,
		Entries: t.numEntries,
	}
}

// String returns a summary description of the tree.
func (t *Tree[T]) String() string {
	return fmt.Sprintf("Quadtree{Region:%s,Len:%d,Nodes:%d,Depth:%d}", t.Region(), t.numEntries, len(t.nodes), t.depth)
}
