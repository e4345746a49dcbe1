// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cull

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus metrics recorded by a Culler. A nil
// *Metrics records nothing.
type Metrics struct {
	Rebuilds        *prometheus.CounterVec
	RebuildDuration prometheus.Histogram
	RejectedBoxes   prometheus.Counter
	TreeNodes       prometheus.Gauge
	TreeDepth       prometheus.Gauge
	TreeEntries     prometheus.Gauge
	Frames          prometheus.Counter
	FrameDuration   prometheus.Histogram
	VisibleBoxes    prometheus.Gauge
}

// NewMetrics registers the culling metrics against reg, defaulting to
// the global Prometheus registry when reg is nil. Registering twice
// against the same registry returns the already registered collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	rebuilds, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quadcull_rebuilds_total",
		Help: "Total number of index rebuilds, labeled by result.",
	}, []string{"result"}), "quadcull_rebuilds_total")
	if err != nil {
		return nil, err
	}
	rebuildDuration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quadcull_rebuild_duration_seconds",
		Help:    "Index rebuild latency in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}), "quadcull_rebuild_duration_seconds")
	if err != nil {
		return nil, err
	}
	rejected, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quadcull_rejected_boxes_total",
		Help: "Total number of boxes dropped by rebuilds because their key was outside the index region.",
	}), "quadcull_rejected_boxes_total")
	if err != nil {
		return nil, err
	}
	nodes, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quadcull_tree_nodes",
		Help: "Number of nodes in the current index.",
	}), "quadcull_tree_nodes")
	if err != nil {
		return nil, err
	}
	depth, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quadcull_tree_depth",
		Help: "Depth of the deepest node in the current index.",
	}), "quadcull_tree_depth")
	if err != nil {
		return nil, err
	}
	entries, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quadcull_tree_entries",
		Help: "Number of boxes stored in the current index.",
	}), "quadcull_tree_entries")
	if err != nil {
		return nil, err
	}
	frames, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quadcull_frames_total",
		Help: "Total number of culled frames.",
	}), "quadcull_frames_total")
	if err != nil {
		return nil, err
	}
	frameDuration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quadcull_frame_duration_seconds",
		Help:    "Per-frame culling latency in seconds, excluding the sink.",
		Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
	}), "quadcull_frame_duration_seconds")
	if err != nil {
		return nil, err
	}
	visible, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quadcull_visible_boxes",
		Help: "Number of boxes which survived culling in the latest frame.",
	}), "quadcull_visible_boxes")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Rebuilds:        rebuilds,
		RebuildDuration: rebuildDuration,
		RejectedBoxes:   rejected,
		TreeNodes:       nodes,
		TreeDepth:       depth,
		TreeEntries:     entries,
		Frames:          frames,
		FrameDuration:   frameDuration,
		VisibleBoxes:    visible,
	}, nil
}

func (m *Metrics) observeRebuild(stats RebuildStats, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.RebuildDuration.Observe(d.Seconds())
	if err != nil {
		m.Rebuilds.WithLabelValues("error").Inc()
		return
	}
	m.Rebuilds.WithLabelValues("ok").Inc()
	m.RejectedBoxes.Add(float64(stats.Rejected))
	m.TreeNodes.Set(float64(stats.Tree.Nodes))
	m.TreeDepth.Set(float64(stats.Tree.Depth))
	m.TreeEntries.Set(float64(stats.Tree.Entries))
}

func (m *Metrics) observeFrame(visible int, d time.Duration) {
	if m == nil {
		return
	}
	m.Frames.Inc()
	m.FrameDuration.Observe(d.Seconds())
	m.VisibleBoxes.Set(float64(visible))
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, name string) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			var zero C
			return zero, errors.New("collector already registered with incompatible type").
				WithTag("name", name)
		}
		var zero C
		return zero, err
	}
	return c, nil
}
