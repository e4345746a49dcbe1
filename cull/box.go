// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cull

import (
	"math"
	"strconv"
	"strings"

	"github.com/gogama/quadcull/quadtree"
)

// Vec3 is a point or direction in world space. Y is up; the ground
// plane is X-Z.
type Vec3 struct {
	X float32
	Y float32
	Z float32
}

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

func (v Vec3) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Vec3) write(b *strings.Builder) {
	b.WriteByte('[')
	b.WriteString(strconv.FormatFloat(float64(v.X), 'f', -1, 32))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(float64(v.Y), 'f', -1, 32))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(float64(v.Z), 'f', -1, 32))
	b.WriteByte(']')
}

// Box is an axis-aligned bounding volume, the payload the culler
// indexes and forwards to the renderer.
type Box struct {
	Min Vec3
	Max Vec3
}

// Centre returns the centre of the box.
func (b Box) Centre() Vec3 {
	return Vec3{
		X: b.Min.X + (b.Max.X-b.Min.X)/2,
		Y: b.Min.Y + (b.Max.Y-b.Min.Y)/2,
		Z: b.Min.Z + (b.Max.Z-b.Min.Z)/2,
	}
}

// Key returns the point under which the box is indexed: its centre
// projected onto the ground plane, with world X as the index X axis
// and world Z as the index Y axis.
func (b Box) Key() quadtree.Point {
	c := b.Centre()
	return quadtree.Point{X: float64(c.X), Y: float64(c.Z)}
}

func (b Box) String() string {
	var s strings.Builder
	s.WriteString("Box{")
	b.Min.write(&s)
	s.WriteByte(',')
	b.Max.write(&s)
	s.WriteByte('}')
	return s.String()
}

// GridBoxes generates n unit boxes laid out on a square grid on the
// ground plane, row by row, with box k centred at (k/side, 0, k%side)
// where side is one more than the integer square root of n.
func GridBoxes(n int) []Box {
	if n <= 0 {
		return []Box{}
	}
	side := int(math.Sqrt(float64(n))) + 1
	boxes := make([]Box, 0, n)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			x, z := float32(i), float32(j)
			boxes = append(boxes, Box{
				Min: Vec3{x - 0.5, -0.5, z - 0.5},
				Max: Vec3{x + 0.5, 0.5, z + 0.5},
			})
			if len(boxes) == n {
				return boxes
			}
		}
	}
	return boxes
}
