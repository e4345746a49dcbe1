// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packet

import (
	"io"
)

const (
	// magicLen is the length of the stream magic number in bytes.
	magicLen = 8
	// MinMajorVersion is the minimum major format version this
	// package can read.
	MinMajorVersion = 0x01
	// MaxMajorVersion is the maximum major format version this
	// package can read.
	MaxMajorVersion = 0x01
	// frameMaxLen is the largest encoded frame this package will read
	// or write. It keeps a corrupt size prefix from triggering a huge
	// allocation.
	frameMaxLen = 64 * 1024 * 1024
)

// magic contains the stream magic number.
//
// The fourth byte is the major format version of data written by this
// package, and the last byte is the patch version.
var magic = [magicLen]byte{'q', 'c', 'f', 0x01, 'q', 'c', 'f', 0x00}

// Version is a version of the frame stream format.
type Version struct {
	// Major is the major format version.
	Major uint8
	// Patch is the patch format version.
	Patch uint8
}

// Magic reads the magic number from a stream and, if it is valid,
// returns the format version. It does not read beyond the magic
// number.
func Magic(r io.Reader) (Version, error) {
	m := make([]byte, magicLen)
	_, err := io.ReadFull(r, m)
	if err != nil {
		return Version{}, err
	}
	if m[0] == magic[0] &&
		m[1] == magic[1] &&
		m[2] == magic[2] &&
		m[4] == magic[4] &&
		m[5] == magic[5] &&
		m[6] == magic[6] {
		return Version{m[3], m[7]}, nil
	}
	return Version{}, textErr("invalid magic number")
}
