// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cull

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/gogama/quadcull/quadtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var unitRegion = quadtree.Region{Size: quadtree.Point{X: 1, Y: 1}}

type recordingSink struct {
	frames []Frame
	err    error
}

func (s *recordingSink) Submit(_ context.Context, f Frame) error {
	s.frames = append(s.frames, f)
	return s.err
}

func keys(boxes []Box) []quadtree.Point {
	k := make([]quadtree.Point, len(boxes))
	for i := range boxes {
		k[i] = boxes[i].Key()
	}
	return k
}

func TestCuller_Rebuild(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		c := New(Config{Region: unitRegion}, nil, nil)

		stats, err := c.Rebuild(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, RebuildStats{Tree: quadtree.Stats{Nodes: 1, Leaves: 1}}, stats)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("Rejected", func(t *testing.T) {
		c := New(Config{Region: unitRegion}, nil, nil)

		stats, err := c.Rebuild(context.Background(), GridBoxes(4))

		require.NoError(t, err)
		assert.Equal(t, 4, stats.Boxes)
		assert.Equal(t, 3, stats.Indexed)
		assert.Equal(t, 1, stats.Rejected)
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, []quadtree.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}}, keys(c.Visible(unitRegion)))
	})

	t.Run("Subdivided", func(t *testing.T) {
		region := quadtree.Region{Centre: quadtree.Point{X: 5, Y: 5}, Size: quadtree.Point{X: 5, Y: 5}}
		c := New(Config{Region: region}, nil, nil)

		stats, err := c.Rebuild(context.Background(), GridBoxes(100))

		require.NoError(t, err)
		assert.Equal(t, 100, stats.Indexed)
		assert.Zero(t, stats.Rejected)
		assert.Equal(t, 100, stats.Tree.Entries)
		assert.Greater(t, stats.Tree.Depth, 1)
	})

	t.Run("Replaces", func(t *testing.T) {
		c := New(Config{Region: unitRegion}, nil, nil)
		_, err := c.Rebuild(context.Background(), GridBoxes(2))
		require.NoError(t, err)

		_, err = c.Rebuild(context.Background(), GridBoxes(1))

		require.NoError(t, err)
		assert.Equal(t, []quadtree.Point{{X: 0, Y: 0}}, keys(c.Visible(unitRegion)))
	})

	t.Run("DepthExhausted", func(t *testing.T) {
		c := New(Config{Region: unitRegion, Capacity: 1, MaxDepth: 1}, nil, nil)
		_, err := c.Rebuild(context.Background(), GridBoxes(1))
		require.NoError(t, err)
		dup := GridBoxes(1)[0]

		_, err = c.Rebuild(context.Background(), []Box{dup, dup})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, ErrTypeDepthExhausted))
		assert.Equal(t, 1, c.Len(), "Previous index must be kept.")
	})
}

func TestCuller_Visible(t *testing.T) {
	boxes := []Box{
		{Min: Vec3{-1, 0, -1}, Max: Vec3{-0.5, 1, -0.5}},
		{Min: Vec3{0.5, 0, 0.5}, Max: Vec3{1, 1, 1}},
	}

	t.Run("Corner", func(t *testing.T) {
		c := New(Config{Region: unitRegion, Capacity: 1}, nil, nil)
		_, err := c.Rebuild(context.Background(), boxes)
		require.NoError(t, err)

		visible := c.Visible(quadtree.Region{Centre: quadtree.Point{X: 0.75, Y: 0.75}, Size: quadtree.Point{X: 0.1, Y: 0.1}})

		assert.Empty(t, visible, "Window strictly inside a child is missed by the corner test.")
	})

	t.Run("Strict", func(t *testing.T) {
		c := New(Config{Region: unitRegion, Capacity: 1, Strict: true}, nil, nil)
		_, err := c.Rebuild(context.Background(), boxes)
		require.NoError(t, err)

		visible := c.Visible(quadtree.Region{Centre: quadtree.Point{X: 0.75, Y: 0.75}, Size: quadtree.Point{X: 0.1, Y: 0.1}})

		assert.Equal(t, boxes[1:], visible)
	})
}

func TestCuller_Frame(t *testing.T) {
	t.Run("Sequence", func(t *testing.T) {
		sink := &recordingSink{}
		c := New(Config{Region: unitRegion}, sink, nil)
		_, err := c.Rebuild(context.Background(), GridBoxes(4))
		require.NoError(t, err)
		window := quadtree.Region{Size: quadtree.Point{X: 0.5, Y: 1}}

		f1, err := c.Frame(context.Background(), window)
		require.NoError(t, err)
		f2, err := c.Frame(context.Background(), unitRegion)
		require.NoError(t, err)

		assert.Equal(t, uint64(1), f1.Seq)
		assert.Equal(t, window, f1.Window)
		assert.Equal(t, 4, f1.Total)
		assert.Equal(t, []quadtree.Point{{X: 0, Y: 0}, {X: 0, Y: 1}}, keys(f1.Boxes))
		assert.Equal(t, uint64(2), f2.Seq)
		assert.Len(t, f2.Boxes, 3)
		assert.Equal(t, []Frame{f1, f2}, sink.frames)
		assert.Equal(t, uint64(2), c.Seq())
	})

	t.Run("SubmitFailed", func(t *testing.T) {
		cause := stderrors.New("renderer gone")
		sink := &recordingSink{err: cause}
		c := New(Config{Region: unitRegion}, sink, nil)

		f, err := c.Frame(context.Background(), unitRegion)

		require.Error(t, err)
		assert.True(t, errors.IsType(err, ErrTypeSubmit))
		assert.Equal(t, uint64(1), f.Seq)
		assert.Len(t, sink.frames, 1)
	})
}

func TestCuller_Tracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = provider.Shutdown(context.Background())
	})

	c := New(Config{Region: unitRegion, Capacity: 1, MaxDepth: 1}, nil, nil)
	_, err := c.Rebuild(context.Background(), GridBoxes(1))
	require.NoError(t, err)
	_, err = c.Frame(context.Background(), unitRegion)
	require.NoError(t, err)
	dup := GridBoxes(1)[0]
	_, err = c.Rebuild(context.Background(), []Box{dup, dup})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "cull.Rebuild", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, "cull.Frame", spans[1].Name())
	assert.Equal(t, "cull.Rebuild", spans[2].Name())
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}
