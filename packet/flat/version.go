// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flat

import (
	_ "embed"
	"strings"
)

var (
	//go:embed "version-flatc.txt"
	flatcVersion string
	//go:embed "frame.fbs"
	schema string
	// Version documents the software versions used to build package
	// flat.
	Version = struct {
		// Flatc contains the version of the FlatBuffers compiler,
		// flatc, used to build package flat.
		Flatc string
		// Schema contains the FlatBuffers schema package flat was
		// generated from.
		Schema string
	}{
		Flatc:  strings.TrimSpace(flatcVersion),
		Schema: schema,
	}
)
