// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flat

import (
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFrame(withWindow bool) []byte {
	b := flatbuffers.NewBuilder(0)
	FrameStartBoxesVector(b, 1)
	CreateBox(b, -1, -2, -3, 1, 2, 3.5)
	boxes := b.EndVector(1)
	FrameStart(b)
	FrameAddSeq(b, 42)
	FrameAddTotal(b, 7)
	if withWindow {
		FrameAddWindow(b, CreateWindow(b, 0.5, -0.5, 2, 3))
	}
	FrameAddBoxes(b, boxes)
	b.FinishSizePrefixed(FrameEnd(b))
	return b.FinishedBytes()
}

func TestFrame_String(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		f := GetSizePrefixedRootAsFrame(buildFrame(true), 0)

		assert.Equal(t, "Frame{Seq:42,Total:7,Window:{[0.5,-0.5],[2,3]},Boxes:1}", f.String())
		var x Box
		require.True(t, f.Boxes(&x, 0))
		assert.Equal(t, "Box{[-1,-2,-3],[1,2,3.5]}", x.String())
	})

	t.Run("NoWindow", func(t *testing.T) {
		f := GetSizePrefixedRootAsFrame(buildFrame(false), 0)

		assert.Equal(t, "Frame{Seq:42,Total:7,Window:<nil>,Boxes:1}", f.String())
	})

	t.Run("Corrupt", func(t *testing.T) {
		buf := buildFrame(true)
		flatbuffers.WriteUint32(buf[flatbuffers.SizeUint32:], 1<<30)
		f := GetSizePrefixedRootAsFrame(buf, 0)

		assert.Contains(t, f.String(), "error: panic: flatbuffers:")
	})
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "23.5.26", Version.Flatc)
	assert.Contains(t, Version.Schema, "table Frame")
}
