// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package quadtree provides a generic point-keyed region quadtree: a
// spatial index which partitions a rectangular area into a hierarchy
// of bounded-capacity cells and supports insertion of (point, value)
// pairs, exact point lookup, and axis-aligned range search.
//
// The tree is built for the rebuild-then-query pattern used by
// broad-phase culling. There is no deletion: when the underlying data
// changes, discard the tree and build a new one. A Tree is not safe for
// concurrent mutation, but any number of goroutines may search a tree
// which is no longer being modified.
package quadtree
