// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import "strconv"

// Point is a two-dimensional coordinate. Y increases to the north.
type Point struct {
	X float64
	Y float64
}

// String returns the point formatted as "[x,y]".
func (p Point) String() string {
	return "[" + formatFloat(p.X) + "," + formatFloat(p.Y) + "]"
}

// Quadrant identifies one of the four children of an internal node.
// The numeric order of the constants is the fixed order in which
// children are tested during insertion, lookup, and search.
type Quadrant int

const (
	NW Quadrant = iota
	NE
	SW
	SE
)

var quadrantNames = [...]string{"NW", "NE", "SW", "SE"}

func (q Quadrant) String() string {
	if q < NW || q > SE {
		return "Quadrant(" + strconv.Itoa(int(q)) + ")"
	}
	return quadrantNames[q]
}

// Region is an axis-aligned rectangle given by its centre point and
// its half-extent on each axis. The rectangle covers the closed
// interval [Centre-Size, Centre+Size] on both axes, so points lying
// exactly on an edge are inside it.
type Region struct {
	// Centre is the centre point of the rectangle.
	Centre Point
	// Size is the half-width (X) and half-height (Y) of the rectangle.
	Size Point
}

// Min returns the south-west corner of the region.
func (r Region) Min() Point {
	return Point{r.Centre.X - r.Size.X, r.Centre.Y - r.Size.Y}
}

// Max returns the north-east corner of the region.
func (r Region) Max() Point {
	return Point{r.Centre.X + r.Size.X, r.Centre.Y + r.Size.Y}
}

// Contains reports whether p lies inside the region. Both bounds are
// inclusive on both axes.
func (r Region) Contains(p Point) bool {
	return r.Centre.X-r.Size.X <= p.X &&
		p.X <= r.Centre.X+r.Size.X &&
		r.Centre.Y-r.Size.Y <= p.Y &&
		p.Y <= r.Centre.Y+r.Size.Y
}

// Corners returns the four corners of the region in NW, NE, SW, SE
// order.
func (r Region) Corners() [4]Point {
	lo, hi := r.Min(), r.Max()
	return [4]Point{
		{lo.X, hi.Y},
		{hi.X, hi.Y},
		{lo.X, lo.Y},
		{hi.X, lo.Y},
	}
}

// Overlaps reports whether any of the four corners of r is contained in
// o.
//
// This is the test range search uses, by default, to decide whether to
// descend into a child node. It is an approximation: two rectangles
// which cross without either corner set landing inside the other, such
// as a thin window spanning a node from edge to edge, or a window lying
// strictly inside a node, do not overlap by this definition. Use
// Intersects, or Options.Strict, for exact rectangle intersection.
func (r Region) Overlaps(o Region) bool {
	for _, c := range r.Corners() {
		if o.Contains(c) {
			return true
		}
	}
	return false
}

// Intersects reports whether r and o share at least one point. Touching
// edges count as intersecting.
func (r Region) Intersects(o Region) bool {
	return r.Centre.X-r.Size.X <= o.Centre.X+o.Size.X &&
		o.Centre.X-o.Size.X <= r.Centre.X+r.Size.X &&
		r.Centre.Y-r.Size.Y <= o.Centre.Y+o.Size.Y &&
		o.Centre.Y-o.Size.Y <= r.Centre.Y+r.Size.Y
}

// Quadrant returns the region of the child in quadrant q: half the
// extent of r on both axes, centred a quarter of the full extent away
// from r's centre.
func (r Region) Quadrant(q Quadrant) Region {
	h := Point{r.Size.X / 2, r.Size.Y / 2}
	c := r.Centre
	switch q {
	case NW:
		return Region{Point{c.X - h.X, c.Y + h.Y}, h}
	case NE:
		return Region{Point{c.X + h.X, c.Y + h.Y}, h}
	case SW:
		return Region{Point{c.X - h.X, c.Y - h.Y}, h}
	case SE:
		return Region{Point{c.X + h.X, c.Y - h.Y}, h}
	default:
		fmtPanic("invalid quadrant %d", int(q))
		return Region{}
	}
}

// String returns the region formatted as "{centre,size}", for example
// "{[50,50],[100,100]}".
func (r Region) String() string {
	return "{" + r.Centre.String() + "," + r.Size.String() + "}"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
