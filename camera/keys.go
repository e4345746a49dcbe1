// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package camera

import (
	"strconv"
	"strings"
)

// Keys is the set of movement controls held down during a frame.
type Keys uint8

const (
	Forward Keys = 1 << iota
	Back
	Left
	Right
	TurnLeft
	TurnRight
	Up
	Down
)

var keyNames = [...]string{
	"forward",
	"back",
	"left",
	"right",
	"turn-left",
	"turn-right",
	"up",
	"down",
}

// Has reports whether every key in k is held in keys.
func (keys Keys) Has(k Keys) bool {
	return keys&k == k
}

func (keys Keys) String() string {
	if keys == 0 {
		return "none"
	}
	var b strings.Builder
	for i, name := range keyNames {
		if keys&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('+')
		}
		b.WriteString(name)
	}
	return b.String()
}

// ParseKeys parses a "+"-separated list of key names, as produced by
// Keys.String. The name "none" parses to the empty set.
func ParseKeys(s string) (Keys, error) {
	if s == "none" {
		return 0, nil
	}
	var keys Keys
	for _, name := range strings.Split(s, "+") {
		k, ok := lookupKey(strings.TrimSpace(name))
		if !ok {
			return 0, fmtErr("unknown key %s", strconv.Quote(name))
		}
		keys |= k
	}
	return keys, nil
}

func lookupKey(name string) (Keys, bool) {
	for i := range keyNames {
		if keyNames[i] == name {
			return 1 << i, true
		}
	}
	return 0, false
}
