// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package packet streams culled frames between the culler and a
// renderer which may live in another process.
//
// A stream starts with an 8-byte magic number carrying the format
// version, followed by any number of size-prefixed FlatBuffers Frame
// tables (see package flat for the schema). Each table holds the frame
// sequence number, the view window, the total box count and the
// visible boxes in search order.
package packet
