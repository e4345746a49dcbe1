// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packet

import "io"

type stateful struct {
	state state
	err   error
}

type state int

const (
	uninitialized state = 0x00
	invalid             = 0x01
	inFrames            = 0x12
	eof                 = 0x22
)

func (s *stateful) close(a interface{}) error {
	if s.err == ErrClosed {
		return ErrClosed
	}

	s.err = ErrClosed

	if f, ok := a.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	if c, ok := a.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}

	return nil
}

func (s *stateful) sanityCheckState() {
	if s.state&invalid == invalid {
		fmtPanic("logic error: invalid state 0x%x", s.state)
	}
}

func (s *stateful) toState(expected, to state) error {
	// Always fail if already in the error state.
	if s.err != nil {
		return s.err
	}

	if s.state == expected {
		s.state = to
		return nil
	}

	s.sanityCheckState()

	return errUnexpectedState
}

func (s *stateful) toErr(err error) error {
	if s.err != nil {
		textPanic("logic error: already in error state")
	}

	s.err = err
	return err
}
