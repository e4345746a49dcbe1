// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_String(t *testing.T) {
	testCases := []struct {
		name     string
		input    Point
		expected string
	}{
		{"Zero", Point{}, "[0,0]"},
		{"Integers", Point{-1, 2}, "[-1,2]"},
		{"Exact", Point{-100.5, 1234.125}, "[-100.5,1234.125]"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.input.String())
		})
	}
}

func TestQuadrant_String(t *testing.T) {
	assert.Equal(t, "NW", NW.String())
	assert.Equal(t, "NE", NE.String())
	assert.Equal(t, "SW", SW.String())
	assert.Equal(t, "SE", SE.String())
	assert.Equal(t, "Quadrant(4)", Quadrant(4).String())
	assert.Equal(t, "Quadrant(-1)", Quadrant(-1).String())
}

func TestRegion_String(t *testing.T) {
	r := Region{Centre: Point{50, 50}, Size: Point{100, 100}}

	assert.Equal(t, "{[50,50],[100,100]}", r.String())
}

func TestRegion_MinMax(t *testing.T) {
	r := Region{Centre: Point{1, -2}, Size: Point{3, 4}}

	assert.Equal(t, Point{-2, -6}, r.Min())
	assert.Equal(t, Point{4, 2}, r.Max())
}

func TestRegion_Contains(t *testing.T) {
	r := Region{Centre: Point{0, 0}, Size: Point{2, 1}}

	testCases := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"Centre", Point{0, 0}, true},
		{"Inside", Point{1.5, -0.5}, true},
		{"WestEdge", Point{-2, 0}, true},
		{"EastEdge", Point{2, 0}, true},
		{"NorthEdge", Point{0, 1}, true},
		{"SouthEdge", Point{0, -1}, true},
		{"Corner", Point{2, -1}, true},
		{"WestOf", Point{-2.0001, 0}, false},
		{"EastOf", Point{2.0001, 0}, false},
		{"NorthOf", Point{0, 1.0001}, false},
		{"SouthOf", Point{0, -1.0001}, false},
		{"NaN", Point{math.NaN(), 0}, false},
		{"Inf", Point{math.Inf(1), 0}, false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, r.Contains(testCase.p))
		})
	}

	t.Run("Degenerate", func(t *testing.T) {
		d := Region{Centre: Point{3, 3}}

		assert.True(t, d.Contains(Point{3, 3}))
		assert.False(t, d.Contains(Point{3, 3.5}))
	})
}

func TestRegion_Corners(t *testing.T) {
	r := Region{Centre: Point{0, 0}, Size: Point{2, 1}}

	assert.Equal(t, [4]Point{{-2, 1}, {2, 1}, {-2, -1}, {2, -1}}, r.Corners())
}

func TestRegion_Overlaps(t *testing.T) {
	unit := Region{Centre: Point{0, 0}, Size: Point{1, 1}}

	testCases := []struct {
		name     string
		a, b     Region
		expected bool
	}{
		{"Same", unit, unit, true},
		{"ContainedByOther", unit, Region{Size: Point{2, 2}}, true},
		{"CornerInside", unit, Region{Centre: Point{1.5, 1.5}, Size: Point{1, 1}}, true},
		{"TouchingEdge", unit, Region{Centre: Point{2, 0}, Size: Point{1, 1}}, true},
		{"TouchingCorner", unit, Region{Centre: Point{2, 2}, Size: Point{1, 1}}, true},
		{"Disjoint", unit, Region{Centre: Point{5, 5}, Size: Point{1, 1}}, false},
		// The corner test misses these even though the rectangles
		// share area.
		{"OtherStrictlyInside", unit, Region{Size: Point{0.5, 0.5}}, false},
		{"ThinCrossing", unit, Region{Size: Point{3, 0.1}}, false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.a.Overlaps(testCase.b))
		})
	}
}

func TestRegion_Intersects(t *testing.T) {
	unit := Region{Centre: Point{0, 0}, Size: Point{1, 1}}

	testCases := []struct {
		name     string
		a, b     Region
		expected bool
	}{
		{"Same", unit, unit, true},
		{"ContainedByOther", unit, Region{Size: Point{2, 2}}, true},
		{"OtherStrictlyInside", unit, Region{Size: Point{0.5, 0.5}}, true},
		{"ThinCrossing", unit, Region{Size: Point{3, 0.1}}, true},
		{"TouchingEdge", unit, Region{Centre: Point{2, 0}, Size: Point{1, 1}}, true},
		{"TouchingCorner", unit, Region{Centre: Point{2, 2}, Size: Point{1, 1}}, true},
		{"IsLeftOf", unit, Region{Centre: Point{-3, 0}, Size: Point{1, 1}}, false},
		{"IsRightOf", unit, Region{Centre: Point{3, 0}, Size: Point{1, 1}}, false},
		{"IsAbove", unit, Region{Centre: Point{0, 3}, Size: Point{1, 1}}, false},
		{"IsBelow", unit, Region{Centre: Point{0, -3}, Size: Point{1, 1}}, false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.a.Intersects(testCase.b))
			assert.Equal(t, testCase.expected, testCase.b.Intersects(testCase.a), "Intersects must be symmetric.")
		})
	}
}

func TestRegion_Quadrant(t *testing.T) {
	r := Region{Centre: Point{50, 50}, Size: Point{100, 100}}

	testCases := []struct {
		q        Quadrant
		expected Region
	}{
		{NW, Region{Centre: Point{0, 100}, Size: Point{50, 50}}},
		{NE, Region{Centre: Point{100, 100}, Size: Point{50, 50}}},
		{SW, Region{Centre: Point{0, 0}, Size: Point{50, 50}}},
		{SE, Region{Centre: Point{100, 0}, Size: Point{50, 50}}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.q.String(), func(t *testing.T) {
			assert.Equal(t, testCase.expected, r.Quadrant(testCase.q))
		})
	}

	t.Run("Tiling", func(t *testing.T) {
		var area float64
		for q := NW; q <= SE; q++ {
			c := r.Quadrant(q)
			area += 4 * c.Size.X * c.Size.Y
			assert.True(t, r.Contains(c.Min()))
			assert.True(t, r.Contains(c.Max()))
		}
		assert.Equal(t, 4*r.Size.X*r.Size.Y, area)
	})

	t.Run("Invalid", func(t *testing.T) {
		assert.PanicsWithValue(t, "quadtree: invalid quadrant 4", func() {
			r.Quadrant(4)
		})
	})
}
