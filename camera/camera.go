// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package camera models a first-person camera driven by keyboard
// controls, without any window or graphics dependency. It produces the
// ground-plane view window the culler searches each frame.
package camera

import (
	"fmt"
	"math"

	"github.com/gogama/quadcull/cull"
	"github.com/gogama/quadcull/quadtree"
)

const (
	// DefaultSpeed is the movement speed, in world units per second.
	DefaultSpeed = 10
	// DefaultTurnSpeed is the turning speed, in half turns per second.
	DefaultTurnSpeed = 1
)

// Camera is a position on the ground plane plus a heading. An angle of
// zero looks down the negative Z axis.
type Camera struct {
	Position  cull.Vec3
	Angle     float64
	Speed     float64
	TurnSpeed float64
}

// New returns a camera at pos with default speeds.
func New(pos cull.Vec3) *Camera {
	return &Camera{
		Position:  pos,
		Speed:     DefaultSpeed,
		TurnSpeed: DefaultTurnSpeed,
	}
}

// Update moves the camera according to the keys held for a frame
// lasting dt seconds and reports whether the view changed. Of each
// opposing pair, the first listed in the Keys constants wins.
func (c *Camera) Update(keys Keys, dt float64) bool {
	var changed bool
	step := c.Speed * dt

	if keys.Has(Forward) {
		c.move(-step, c.Angle)
		changed = true
	} else if keys.Has(Back) {
		c.move(step, c.Angle)
		changed = true
	}

	if keys.Has(Left) {
		c.move(-step, c.Angle+math.Pi/2)
		changed = true
	} else if keys.Has(Right) {
		c.move(step, c.Angle+math.Pi/2)
		changed = true
	}

	if keys.Has(TurnLeft) {
		c.turn(math.Pi * c.TurnSpeed * dt)
		changed = true
	} else if keys.Has(TurnRight) {
		c.turn(-math.Pi * c.TurnSpeed * dt)
		changed = true
	}

	if keys.Has(Up) {
		c.Position.Y += float32(step)
		changed = true
	} else if keys.Has(Down) {
		c.Position.Y -= float32(step)
		changed = true
	}

	return changed
}

func (c *Camera) move(d, angle float64) {
	c.Position.X += float32(d * math.Sin(angle))
	c.Position.Z += float32(d * math.Cos(angle))
}

func (c *Camera) turn(d float64) {
	c.Angle += d
	if c.Angle >= 2*math.Pi || c.Angle <= -2*math.Pi {
		c.Angle = 0
	}
}

// Window returns the view window on the ground plane: a region
// centred under the camera with the given half-extent.
func (c *Camera) Window(half quadtree.Point) quadtree.Region {
	return quadtree.Region{
		Centre: quadtree.Point{X: float64(c.Position.X), Y: float64(c.Position.Z)},
		Size:   half,
	}
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera{Position:%s,Angle:%g}", c.Position, c.Angle)
}
