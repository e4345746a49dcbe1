// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cull

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gogama/quadcull/quadtree"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/gogama/quadcull/cull"

const (
	// ErrTypeDepthExhausted is the error type of a rebuild aborted
	// because too many boxes share a cell at the maximum depth.
	ErrTypeDepthExhausted = "cull_depth_exhausted"
	// ErrTypeSubmit is the error type of a frame the sink refused.
	ErrTypeSubmit = "cull_submit_failed"
)

// Config tunes the index a Culler builds.
type Config struct {
	// Region is the area of the ground plane covered by the index.
	// Boxes keyed outside it are rejected.
	Region quadtree.Region
	// Capacity is the leaf capacity. Zero means
	// quadtree.DefaultCapacity.
	Capacity int
	// MaxDepth is the subdivision limit. Zero means
	// quadtree.DefaultMaxDepth.
	MaxDepth int
	// Strict selects exact rectangle intersection when descending
	// the index instead of the corner overlap test.
	Strict bool
}

func (cfg Config) options() quadtree.Options {
	return quadtree.Options{
		Capacity: cfg.Capacity,
		MaxDepth: cfg.MaxDepth,
		Strict:   cfg.Strict,
	}
}

// RebuildStats describes the outcome of a rebuild.
type RebuildStats struct {
	// Boxes is the number of boxes offered.
	Boxes int
	// Indexed is the number of boxes stored in the new index.
	Indexed int
	// Rejected is the number of boxes dropped because their key lies
	// outside the index region.
	Rejected int
	// Tree describes the shape of the new index.
	Tree quadtree.Stats
}

// A Culler keeps a point index over a set of boxes and culls them
// against a view window once per frame. Updating the box set means
// rebuilding the index.
//
// A Culler is not safe for concurrent use.
type Culler struct {
	cfg     Config
	sink    Sink
	metrics *Metrics
	tracer  trace.Tracer
	tree    *quadtree.Tree[Box]
	total   int
	seq     uint64
}

// New returns a Culler with an empty index. A nil sink discards
// frames, and a nil metrics records nothing.
func New(cfg Config, sink Sink, metrics *Metrics) *Culler {
	if sink == nil {
		sink = Discard
	}
	return &Culler{
		cfg:     cfg,
		sink:    sink,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
		tree:    quadtree.NewWithOptions[Box](cfg.Region, cfg.options()),
	}
}

// Rebuild discards the current index and indexes boxes afresh. Boxes
// keyed outside the configured region are skipped and counted. If the
// index runs out of depth, the rebuild is abandoned, the previous
// index stays in place and an error of type ErrTypeDepthExhausted is
// returned.
func (c *Culler) Rebuild(ctx context.Context, boxes []Box) (RebuildStats, error) {
	_, span := c.tracer.Start(ctx, "cull.Rebuild", trace.WithAttributes(
		attribute.Int("boxes", len(boxes)),
	))
	defer span.End()

	start := time.Now()
	stats := RebuildStats{Boxes: len(boxes)}
	tree := quadtree.NewWithOptions[Box](c.cfg.Region, c.cfg.options())
	for i := range boxes {
		ok, err := tree.Insert(boxes[i].Key(), boxes[i])
		if err != nil {
			err = errors.New("rebuilding index failed").
				WithType(ErrTypeDepthExhausted).
				WithTag("box", boxes[i].String()).
				WithTag("index", i).
				Wrap(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "depth exhausted")
			c.metrics.observeRebuild(stats, time.Since(start), err)
			return stats, err
		}
		if !ok {
			stats.Rejected++
		}
	}

	stats.Indexed = tree.Len()
	stats.Tree = tree.Stats()
	c.tree = tree
	c.total = len(boxes)

	if stats.Rejected > 0 {
		logs.WithTag("rejected", stats.Rejected).
			WithTag("boxes", stats.Boxes).
			WithTag("region", c.cfg.Region.String()).
			Warn("boxes outside the index region were dropped")
	}
	span.SetAttributes(
		attribute.Int("indexed", stats.Indexed),
		attribute.Int("rejected", stats.Rejected),
		attribute.Int("nodes", stats.Tree.Nodes),
		attribute.Int("depth", stats.Tree.Depth),
	)
	c.metrics.observeRebuild(stats, time.Since(start), nil)
	return stats, nil
}

// Visible returns the boxes whose key lies inside window, in index
// search order.
func (c *Culler) Visible(window quadtree.Region) []Box {
	return c.tree.Search(window)
}

// Frame culls the index against window, stamps the result with the
// next sequence number and submits it to the sink. A sink failure is
// returned as an error of type ErrTypeSubmit along with the frame.
func (c *Culler) Frame(ctx context.Context, window quadtree.Region) (Frame, error) {
	ctx, span := c.tracer.Start(ctx, "cull.Frame")
	defer span.End()

	start := time.Now()
	c.seq++
	f := Frame{
		Seq:    c.seq,
		Window: window,
		Total:  c.total,
		Boxes:  c.Visible(window),
	}
	c.metrics.observeFrame(len(f.Boxes), time.Since(start))
	span.SetAttributes(
		attribute.Int64("seq", int64(f.Seq)),
		attribute.Int("visible", len(f.Boxes)),
	)

	if err := c.sink.Submit(ctx, f); err != nil {
		err = errors.New("submitting frame failed").
			WithType(ErrTypeSubmit).
			WithTag("seq", f.Seq).
			Wrap(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit failed")
		return f, err
	}
	return f, nil
}

// Seq returns the sequence number of the latest frame.
func (c *Culler) Seq() uint64 {
	return c.seq
}

// Len returns the number of boxes in the current index.
func (c *Culler) Len() int {
	return c.tree.Len()
}
