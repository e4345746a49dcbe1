// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"errors"
	"fmt"
)

const packageName = "quadtree: "

// ErrMaxDepth is returned by Tree.Insert when a full leaf cannot be
// subdivided because it is already at the tree's maximum depth. This
// happens when more than the node capacity of coincident (or otherwise
// inseparable) points are inserted into the same cell.
var ErrMaxDepth = textErr("maximum subdivision depth reached")

func textErr(text string) error {
	return errors.New(packageName + text)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
