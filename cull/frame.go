// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cull

import (
	"context"

	"github.com/gogama/quadcull/quadtree"
)

// A Frame is the result of culling one frame: the boxes whose key lies
// inside the view window, in index search order.
type Frame struct {
	// Seq is the frame's sequence number. The first frame is 1.
	Seq uint64
	// Window is the view window the boxes were culled against.
	Window quadtree.Region
	// Total is the number of boxes offered to the last successful
	// rebuild, before culling.
	Total int
	// Boxes contains the boxes which survived culling.
	Boxes []Box
}

// A Sink receives culled frames, typically to upload them to a
// renderer.
type Sink interface {
	Submit(ctx context.Context, f Frame) error
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(ctx context.Context, f Frame) error

// Submit calls fn(ctx, f).
func (fn SinkFunc) Submit(ctx context.Context, f Frame) error {
	return fn(ctx, f)
}

// Discard is a Sink which drops every frame.
var Discard Sink = SinkFunc(func(context.Context, Frame) error { return nil })
