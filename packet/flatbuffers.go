// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packet

import (
	"fmt"
	"io"

	flatbuffers "github.com/google/flatbuffers/go"
)

// safeFlatBuffersInteraction runs a function that interacts with
// FlatBuffers, trapping any panic that occurs and converting it to a
// normal Go error.
//
// FlatBuffers accessors do not return errors, so reading a corrupt
// table shows up as an index out of range panic.
func safeFlatBuffersInteraction(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: flatbuffers: %v", r)
		}
	}()
	err = f()
	return
}

// writeSizePrefixed writes a finished, size-prefixed FlatBuffers buffer
// to an output stream after checking that the prefix agrees with the
// buffer length.
func writeSizePrefixed(w io.Writer, buf []byte) (n int, err error) {
	var size uint32
	if size, err = prefixSize(buf); err != nil {
		return
	} else if uint64(size) != uint64(len(buf)-flatbuffers.SizeUint32) {
		err = fmtErr("FlatBuffers size prefix does not match buffer (Len=%d, size=%d)", len(buf), size)
		return
	}
	return w.Write(buf)
}

func prefixSize(buf []byte) (size uint32, err error) {
	if len(buf) < flatbuffers.SizeUint32 {
		err = fmtErr("buffer too short for size prefix (Len=%d)", len(buf))
		return
	}
	size = flatbuffers.GetUint32(buf)
	return
}
