// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packet

import (
	"context"
	"io"
	"math"

	"github.com/gogama/quadcull/cull"
	"github.com/gogama/quadcull/packet/flat"
	flatbuffers "github.com/google/flatbuffers/go"
)

// boxSize is the encoded size of one flat.Box struct.
const boxSize = 24

// Writer writes a frame stream to an underlying stream. The magic
// number is written ahead of the first frame.
//
// Writer implements cull.Sink, so it can be handed straight to a
// culler.
type Writer struct {
	stateful
	// w is the stream to write to.
	w io.Writer
	// b is reused to encode each frame.
	b *flatbuffers.Builder
	// numFrames is the number of frames written.
	numFrames int
}

// NewWriter returns a Writer which writes to w. If w implements
// Flush or io.Closer, Close flushes or closes it.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		textPanic("nil writer")
	}
	return &Writer{w: w, b: flatbuffers.NewBuilder(1024)}
}

// WriteFrame encodes f and writes it to the stream, preceded by the
// magic number if this is the first frame. It returns the number of
// bytes written.
//
// A failure while writing to the underlying stream leaves the Writer
// in an error state, and every later call returns the same error.
func (w *Writer) WriteFrame(f *cull.Frame) (n int, err error) {
	if f == nil {
		textPanic("nil frame")
	}

	if err = w.canWrite(); err != nil {
		return
	}

	// Encode before writing anything so a bad frame leaves the stream
	// untouched.
	var buf []byte
	if buf, err = w.encode(f); err != nil {
		return
	}

	if w.state == uninitialized {
		if n, err = w.writeMagic(); err != nil {
			return
		}
	}

	m, err := writeSizePrefixed(w.w, buf)
	n += m
	if err != nil {
		err = w.toErr(wrapErr("failed to write frame %d", err, f.Seq))
		return
	}
	w.numFrames++
	return
}

// Submit writes f, unless ctx is already done.
func (w *Writer) Submit(ctx context.Context, f cull.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := w.WriteFrame(&f)
	return err
}

// NumFrames returns the number of frames written so far.
func (w *Writer) NumFrames() int {
	return w.numFrames
}

// Close closes the Writer. If no frame was written, the magic number is
// written first so the stream still reads back as empty. If the
// underlying stream has a Flush method it is flushed, and if it
// implements io.Closer it is closed. Closing a closed Writer returns
// ErrClosed.
func (w *Writer) Close() error {
	if w.err == nil && w.state == uninitialized {
		if _, err := w.writeMagic(); err != nil {
			_ = w.close(w.w)
			return err
		}
	}
	return w.close(w.w)
}

func (w *Writer) writeMagic() (int, error) {
	n, err := w.w.Write(magic[:])
	if err != nil {
		return n, w.toErr(wrapErr("failed to write magic number", err))
	}
	return n, w.toState(uninitialized, inFrames)
}

func (w *Writer) canWrite() error {
	if w.err != nil {
		return w.err
	}
	switch w.state {
	case uninitialized, inFrames:
		return nil
	default:
		fmtPanic("logic error: unexpected state 0x%x looking to write frame", w.state)
	}
	return nil
}

func (w *Writer) encode(f *cull.Frame) ([]byte, error) {
	if f.Total < 0 || uint64(f.Total) > math.MaxUint32 {
		return nil, fmtErr("frame %d total box count %d out of range", f.Seq, f.Total)
	}
	if len(f.Boxes) > (frameMaxLen-1024)/boxSize {
		return nil, fmtErr("frame %d has too many boxes (%d)", f.Seq, len(f.Boxes))
	}

	b := w.b
	b.Reset()

	flat.FrameStartBoxesVector(b, len(f.Boxes))
	for i := len(f.Boxes) - 1; i >= 0; i-- {
		x := &f.Boxes[i]
		flat.CreateBox(b, x.Min.X, x.Min.Y, x.Min.Z, x.Max.X, x.Max.Y, x.Max.Z)
	}
	boxes := b.EndVector(len(f.Boxes))

	flat.FrameStart(b)
	flat.FrameAddSeq(b, f.Seq)
	flat.FrameAddTotal(b, uint32(f.Total))
	flat.FrameAddWindow(b, flat.CreateWindow(b,
		f.Window.Centre.X, f.Window.Centre.Y,
		f.Window.Size.X, f.Window.Size.Y))
	flat.FrameAddBoxes(b, boxes)
	b.FinishSizePrefixed(flat.FrameEnd(b))

	return b.FinishedBytes(), nil
}
