// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packet

import (
	"errors"
	"io"

	"github.com/gogama/quadcull/cull"
	"github.com/gogama/quadcull/packet/flat"
	"github.com/gogama/quadcull/quadtree"
	flatbuffers "github.com/google/flatbuffers/go"
)

// Reader reads a frame stream from an underlying stream. The magic
// number is checked on the first read.
type Reader struct {
	stateful
	// r is the stream to read from.
	r io.Reader
	// version is the format version read from the magic number.
	version Version
	// numFrames is the number of frames read.
	numFrames int
}

// NewReader returns a Reader which reads from r. If r implements
// io.Closer, Close closes it.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		textPanic("nil reader")
	}
	return &Reader{r: r}
}

// Version returns the format version of the stream. It is the zero
// value until the first frame has been read.
func (r *Reader) Version() Version {
	return r.version
}

// ReadRaw reads the next frame and returns it as an undecoded
// FlatBuffers table. At the clean end of the stream it returns io.EOF.
func (r *Reader) ReadRaw() (*flat.Frame, error) {
	if err := r.canRead(); err != nil {
		return nil, err
	}

	if r.state == uninitialized {
		v, err := Magic(r.r)
		if err != nil {
			return nil, r.toErr(wrapErr("failed to read magic number", err))
		}
		if v.Major < MinMajorVersion || v.Major > MaxMajorVersion {
			return nil, r.toErr(fmtErr("unsupported major version %d (supported: %d..%d)", v.Major, MinMajorVersion, MaxMajorVersion))
		}
		r.version = v
		if err = r.toState(uninitialized, inFrames); err != nil {
			return nil, err
		}
	}

	prefix := make([]byte, flatbuffers.SizeUint32)
	_, err := io.ReadFull(r.r, prefix)
	if err == io.EOF {
		r.state = eof
		return nil, io.EOF
	} else if err != nil {
		return nil, r.toErr(wrapErr("failed to read size of frame %d", err, r.numFrames))
	}

	size := flatbuffers.GetUint32(prefix)
	if size > frameMaxLen {
		return nil, r.toErr(fmtErr("frame %d size %d exceeds maximum %d", r.numFrames, size, frameMaxLen))
	} else if size < flatbuffers.SizeUOffsetT {
		return nil, r.toErr(fmtErr("frame %d size %d too small", r.numFrames, size))
	}

	buf := make([]byte, flatbuffers.SizeUint32+int(size))
	copy(buf, prefix)
	_, err = io.ReadFull(r.r, buf[flatbuffers.SizeUint32:])
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, r.toErr(wrapErr("failed to read frame %d", err, r.numFrames))
	}

	r.numFrames++
	return flat.GetSizePrefixedRootAsFrame(buf, 0), nil
}

// ReadFrame reads and decodes the next frame. At the clean end of the
// stream it returns io.EOF.
//
// A corrupt frame is reported as an error, but the stream stays
// readable because frame boundaries come from the size prefix.
func (r *Reader) ReadFrame() (cull.Frame, error) {
	raw, err := r.ReadRaw()
	if err != nil {
		return cull.Frame{}, err
	}
	var f cull.Frame
	if err = safeFlatBuffersInteraction(func() error {
		return decode(raw, &f)
	}); err != nil {
		return cull.Frame{}, wrapErr("failed to decode frame %d", err, r.numFrames-1)
	}
	return f, nil
}

// NumFrames returns the number of frames read so far.
func (r *Reader) NumFrames() int {
	return r.numFrames
}

// Close closes the Reader, and the underlying stream if it implements
// io.Closer. Closing a closed Reader returns ErrClosed.
func (r *Reader) Close() error {
	return r.close(r.r)
}

func (r *Reader) canRead() error {
	if r.err != nil {
		return r.err
	}
	switch r.state {
	case uninitialized, inFrames:
		return nil
	case eof:
		return io.EOF
	default:
		fmtPanic("logic error: unexpected state 0x%x looking to read frame", r.state)
	}
	return nil
}

func decode(raw *flat.Frame, f *cull.Frame) error {
	var w flat.Window
	if raw.Window(&w) == nil {
		return textErr("missing window")
	}
	n := raw.BoxesLength()
	tab := raw.Table()
	if n > (len(tab.Bytes)-int(tab.Pos))/boxSize {
		return fmtErr("box count %d overruns buffer", n)
	}

	f.Seq = raw.Seq()
	f.Total = int(raw.Total())
	f.Window = quadtree.Region{
		Centre: quadtree.Point{X: w.Cx(), Y: w.Cy()},
		Size:   quadtree.Point{X: w.Hx(), Y: w.Hy()},
	}
	f.Boxes = make([]cull.Box, n)
	var x flat.Box
	for i := 0; i < n; i++ {
		raw.Boxes(&x, i)
		f.Boxes[i] = cull.Box{
			Min: cull.Vec3{X: x.MinX(), Y: x.MinY(), Z: x.MinZ()},
			Max: cull.Vec3{X: x.MaxX(), Y: x.MaxY(), Z: x.MaxZ()},
		}
	}
	return nil
}
