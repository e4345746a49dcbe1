// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package camera

import (
	"strconv"
	"strings"
)

// A Step holds Keys down for a number of frames.
type Step struct {
	Keys   Keys
	Frames int
}

// A Script is a sequence of steps which repeats forever. It stands in
// for a user at the keyboard when running headless.
type Script []Step

// DefaultScript walks forward, turns, strafes and walks back.
var DefaultScript = Script{
	{Keys: Forward, Frames: 60},
	{Keys: TurnLeft, Frames: 30},
	{Keys: Forward | Left, Frames: 40},
	{Keys: TurnRight, Frames: 30},
	{Keys: Back, Frames: 60},
}

// Len returns the number of frames in one repetition of the script.
func (s Script) Len() int {
	var n int
	for i := range s {
		n += s[i].Frames
	}
	return n
}

// At returns the keys held at frame n, counting from zero.
func (s Script) At(n int) Keys {
	total := s.Len()
	if total <= 0 || n < 0 {
		return 0
	}
	n %= total
	for i := range s {
		if n < s[i].Frames {
			return s[i].Keys
		}
		n -= s[i].Frames
	}
	return 0
}

func (s Script) String() string {
	var b strings.Builder
	for i := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i].Keys.String())
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s[i].Frames))
	}
	return b.String()
}

// ParseScript parses a script in the form produced by Script.String,
// for example "forward:60,turn-left:30".
func ParseScript(s string) (Script, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmtErr("empty script")
	}
	var script Script
	for _, part := range strings.Split(s, ",") {
		keys, frames, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmtErr("script step %q: missing frame count", part)
		}
		k, err := ParseKeys(keys)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(frames)
		if err != nil || n <= 0 {
			return nil, fmtErr("script step %q: frame count must be a positive integer", part)
		}
		script = append(script, Step{Keys: k, Frames: n})
	}
	return script, nil
}
