// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript_At(t *testing.T) {
	s := Script{{Keys: Forward, Frames: 2}, {Keys: TurnLeft, Frames: 1}}

	assert.Equal(t, 3, s.Len())
	var got []Keys
	for n := 0; n < 7; n++ {
		got = append(got, s.At(n))
	}
	assert.Equal(t, []Keys{Forward, Forward, TurnLeft, Forward, Forward, TurnLeft, Forward}, got)
	assert.Equal(t, Keys(0), s.At(-1))
	assert.Equal(t, Keys(0), Script(nil).At(5))
}

func TestScript_String(t *testing.T) {
	assert.Equal(t, "forward:60,turn-left:30,forward+left:40,turn-right:30,back:60", DefaultScript.String())
}

func TestParseScript(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		s, err := ParseScript(DefaultScript.String())

		require.NoError(t, err)
		assert.Equal(t, DefaultScript, s)
	})

	t.Run("Invalid", func(t *testing.T) {
		testCases := []struct {
			name     string
			input    string
			expected string
		}{
			{name: "Empty", input: " ", expected: "camera: empty script"},
			{name: "MissingFrames", input: "forward", expected: `camera: script step "forward": missing frame count`},
			{name: "BadFrames", input: "forward:x", expected: `camera: script step "forward:x": frame count must be a positive integer`},
			{name: "ZeroFrames", input: "up:0", expected: `camera: script step "up:0": frame count must be a positive integer`},
			{name: "UnknownKey", input: "fly:3", expected: `camera: unknown key "fly"`},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				_, err := ParseScript(testCase.input)

				assert.EqualError(t, err, testCase.expected)
			})
		}
	})
}
