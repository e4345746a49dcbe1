// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gogama/quadcull/camera"
	"github.com/gogama/quadcull/cull"
	"github.com/gogama/quadcull/quadtree"
)

// defaultDT is the frame time assumed for the first frame, before any
// frame has been measured.
const defaultDT = 1.0 / 60

// A benchmark grows the number of boxes step by step, running a fixed
// number of culled frames per step, until the frame rate drops to a
// floor or the box count reaches a ceiling. Each step appends one
// "fps, boxes" line to out.
type benchmark struct {
	culler        *cull.Culler
	camera        *camera.Camera
	script        camera.Script
	half          quadtree.Point
	startBoxes    int
	stepBoxes     int
	maxBoxes      int
	framesPerStep int
	minFPS        float64
	out           io.Writer
	now           func() time.Time
}

// stepResult is the measurement taken for one step.
type stepResult struct {
	Boxes   int
	FPS     float64
	Visible int
	Rebuild cull.RebuildStats
}

func (b *benchmark) run(ctx context.Context) ([]stepResult, error) {
	var results []stepResult
	var frame int
	dt := defaultDT

	for n := b.startBoxes; ; {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		stats, err := b.culler.Rebuild(ctx, cull.GridBoxes(n))
		if err != nil {
			return results, errors.New("benchmark step failed").
				WithTag("boxes", n).
				Wrap(err)
		}

		var visible int
		begin := b.now()
		last := begin
		for i := 0; i < b.framesPerStep; i++ {
			b.camera.Update(b.script.At(frame), dt)
			f, err := b.culler.Frame(ctx, b.camera.Window(b.half))
			if err != nil {
				return results, err
			}
			visible = len(f.Boxes)
			frame++

			t := b.now()
			if d := t.Sub(last).Seconds(); d > 0 {
				dt = d
			}
			last = t
		}

		res := stepResult{
			Boxes:   n,
			FPS:     fps(last.Sub(begin), b.framesPerStep),
			Visible: visible,
			Rebuild: stats,
		}
		results = append(results, res)

		if _, err = fmt.Fprintf(b.out, "%g, %d\n", res.FPS, res.Boxes); err != nil {
			return results, errors.New("writing benchmark output failed").Wrap(err)
		}
		logs.WithTag("boxes", res.Boxes).
			WithTag("fps", res.FPS).
			WithTag("visible", res.Visible).
			WithTag("rejected", stats.Rejected).
			WithTag("depth", stats.Tree.Depth).
			Info("benchmark step complete")

		if res.FPS <= b.minFPS || n >= b.maxBoxes {
			return results, nil
		}
		n += b.stepBoxes
		if n > b.maxBoxes {
			n = b.maxBoxes
		}
	}
}

func fps(elapsed time.Duration, frames int) float64 {
	if frames <= 0 {
		return 0
	}
	avg := elapsed.Seconds() / float64(frames)
	if avg <= 0 {
		return math.Inf(1)
	}
	return 1 / avg
}

// gridRegion returns the smallest square region, anchored at the
// origin, which holds every key cull.GridBoxes generates for up to n
// boxes.
func gridRegion(n int) quadtree.Region {
	side := int(math.Sqrt(float64(n))) + 1
	half := float64(side) / 2
	return quadtree.Region{
		Centre: quadtree.Point{X: half, Y: half},
		Size:   quadtree.Point{X: half, Y: half},
	}
}
