// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flat

import (
	"fmt"
	"strconv"
	"strings"
)

// String returns a string summarizing the Frame fields. Boxes are
// counted, not listed.
func (f *Frame) String() string {
	var b strings.Builder
	b.WriteString("Frame{")
	if err := safeFlatBuffersInteraction(func() error {
		b.WriteString("Seq:")
		b.WriteString(strconv.FormatUint(f.Seq(), 10))
		b.WriteString(",Total:")
		b.WriteString(strconv.FormatUint(uint64(f.Total()), 10))
		b.WriteString(",Window:")
		var w Window
		if f.Window(&w) != nil {
			b.WriteString(w.String())
		} else {
			b.WriteString("<nil>")
		}
		b.WriteString(",Boxes:")
		b.WriteString(strconv.Itoa(f.BoxesLength()))
		return nil
	}); err != nil {
		return "error: " + err.Error()
	}
	b.WriteByte('}')
	return b.String()
}

func (w *Window) String() string {
	var b strings.Builder
	if err := safeFlatBuffersInteraction(func() error {
		b.WriteString("{[")
		stringFloat(&b, w.Cx(), 64)
		b.WriteByte(',')
		stringFloat(&b, w.Cy(), 64)
		b.WriteString("],[")
		stringFloat(&b, w.Hx(), 64)
		b.WriteByte(',')
		stringFloat(&b, w.Hy(), 64)
		b.WriteString("]}")
		return nil
	}); err != nil {
		return "error: " + err.Error()
	}
	return b.String()
}

func (x *Box) String() string {
	var b strings.Builder
	if err := safeFlatBuffersInteraction(func() error {
		b.WriteString("Box{[")
		stringFloat(&b, float64(x.MinX()), 32)
		b.WriteByte(',')
		stringFloat(&b, float64(x.MinY()), 32)
		b.WriteByte(',')
		stringFloat(&b, float64(x.MinZ()), 32)
		b.WriteString("],[")
		stringFloat(&b, float64(x.MaxX()), 32)
		b.WriteByte(',')
		stringFloat(&b, float64(x.MaxY()), 32)
		b.WriteByte(',')
		stringFloat(&b, float64(x.MaxZ()), 32)
		b.WriteString("]}")
		return nil
	}); err != nil {
		return "error: " + err.Error()
	}
	return b.String()
}

func stringFloat(b *strings.Builder, f float64, bitSize int) {
	b.WriteString(strconv.FormatFloat(f, 'f', -1, bitSize))
}

func safeFlatBuffersInteraction(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: flatbuffers: %v", r)
		}
	}()
	err = f()
	return
}
