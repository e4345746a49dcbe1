// Copyright 2023 The quadcull Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gogama/quadcull/camera"
	"github.com/gogama/quadcull/cull"
	"github.com/gogama/quadcull/packet"
	"github.com/gogama/quadcull/packet/flat"
	"github.com/gogama/quadcull/quadtree"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"golang.org/x/sync/errgroup"
)

// The quadcull version number. Set at build.
var version = "v0.1.0"

// Keeps the config field names intact under obfuscation so the cli
// package generates readable options.
var _ = reflect.TypeOf(config{})

type config struct {
	Output         string `cli:""        env:"QUADCULL_OUTPUT"           help:"CSV file receiving one \"fps, boxes\" line per step."`
	Packets        string `cli:""        env:"QUADCULL_PACKETS"          help:"Optional file receiving every culled frame as a packet stream."`
	AdminAddr      string `cli:""        env:"QUADCULL_ADMIN_ADDR"       help:"Admin listening address serving /metrics. Empty disables it."`
	StartBoxes     int    `cli:""        env:"QUADCULL_START_BOXES"      help:"Number of boxes in the first step."`
	StepBoxes      int    `cli:""        env:"QUADCULL_STEP_BOXES"       help:"Number of boxes added after each step."`
	MaxBoxes       int    `cli:""        env:"QUADCULL_MAX_BOXES"        help:"Number of boxes at which the benchmark stops."`
	FramesPerStep  int    `cli:""        env:"QUADCULL_FRAMES_PER_STEP"  help:"Number of frames averaged per step."`
	MinFPS         int    `cli:""        env:"QUADCULL_MIN_FPS"          help:"Frame rate at or below which the benchmark stops."`
	ViewHalfExtent int    `cli:""        env:"QUADCULL_VIEW_HALF_EXTENT" help:"Half-extent of the camera's view window on the ground plane."`
	Script         string `cli:""        env:"QUADCULL_SCRIPT"           help:"Camera key script, e.g. \"forward:60,turn-left:30\"."`
	Capacity       int    `cli:",hidden" env:"QUADCULL_CAPACITY"         help:"Index leaf capacity."`
	MaxDepth       int    `cli:",hidden" env:"QUADCULL_MAX_DEPTH"        help:"Index maximum subdivision depth."`
	Strict         bool   `cli:",hidden" env:"QUADCULL_STRICT"           help:"Use exact rectangle intersection when descending the index."`
	Trace          bool   `cli:""        env:"QUADCULL_TRACE"            help:"Export trace spans to stderr."`
	LogLevel       string `cli:""        env:"QUADCULL_LOG_LEVEL"        help:"Log level (debug|info|warning|error)."`
	LogIndent      bool   `cli:""        env:"QUADCULL_LOG_INDENT"       help:"Indent logs."`
	Version        bool   `cli:""        env:"-"                         help:"Show version."`
	Help           bool   `cli:""        env:"-"                         help:"Show help."`
}

func defaultConfig() config {
	return config{
		Output:         "output.csv",
		StartBoxes:     100,
		StepBoxes:      100,
		MaxBoxes:       100000,
		FramesPerStep:  100,
		MinFPS:         10,
		ViewHalfExtent: 16,
		Script:         camera.DefaultScript.String(),
		Capacity:       quadtree.DefaultCapacity,
		MaxDepth:       quadtree.DefaultMaxDepth,
		LogLevel:       logs.InfoLevel.String(),
	}
}

func main() {
	conf := defaultConfig()

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Runs the headless quadtree culling benchmark.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	runID := uuid.NewString()
	logs.WithTag("version", version).
		WithTag("run_id", runID).
		WithTag("flatc", flat.Version.Flatc).
		WithTag("max_boxes", conf.MaxBoxes).
		WithTag("strict", conf.Strict).
		Info("starting quadcull benchmark")

	if err := run(ctx, conf, runID); err != nil && !interrupted(err) {
		logs.Fatal(err)
	}
}

// interrupted reports whether err stems from the run being cancelled,
// which happens when the process receives a signal.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func run(ctx context.Context, conf config, runID string) error {
	script, err := camera.ParseScript(conf.Script)
	if err != nil {
		return errors.New("invalid camera script").Wrap(err)
	}

	if conf.Trace {
		shutdown, err := initTracing(ctx, os.Stderr, runID)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logs.Warn(errors.New("flushing trace spans failed").Wrap(err))
			}
		}()
	}

	metrics, err := cull.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return errors.New("registering metrics failed").Wrap(err)
	}

	out, err := os.Create(conf.Output)
	if err != nil {
		return errors.New("creating output file failed").
			WithTag("path", conf.Output).
			Wrap(err)
	}
	defer out.Close()

	sink := cull.Discard
	if conf.Packets != "" {
		f, err := os.Create(conf.Packets)
		if err != nil {
			return errors.New("creating packet file failed").
				WithTag("path", conf.Packets).
				Wrap(err)
		}
		w := packet.NewWriter(&bufferedFile{bufio.NewWriter(f), f})
		defer func() {
			if err := w.Close(); err != nil {
				logs.Warn(errors.New("closing packet file failed").
					WithTag("path", conf.Packets).
					Wrap(err))
			}
		}()
		sink = w
	}

	half := float64(conf.ViewHalfExtent)
	b := &benchmark{
		culler: cull.New(cull.Config{
			Region:   gridRegion(conf.MaxBoxes),
			Capacity: conf.Capacity,
			MaxDepth: conf.MaxDepth,
			Strict:   conf.Strict,
		}, sink, metrics),
		camera:        camera.New(cull.Vec3{Z: 7}),
		script:        script,
		half:          quadtree.Point{X: half, Y: half},
		startBoxes:    conf.StartBoxes,
		stepBoxes:     conf.StepBoxes,
		maxBoxes:      conf.MaxBoxes,
		framesPerStep: conf.FramesPerStep,
		minFPS:        float64(conf.MinFPS),
		out:           out,
		now:           time.Now,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if conf.AdminAddr != "" {
		var admin http.ServeMux
		admin.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: conf.AdminAddr, Handler: &admin}

		g.Go(func() error {
			logs.WithTag("addr", srv.Addr).Info("starting admin server")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return errors.New("admin server stopped").
					WithTag("addr", srv.Addr).
					Wrap(err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			if err := srv.Shutdown(context.Background()); err != nil {
				logs.Warn(errors.New("shutting down the admin server failed").
					WithTag("addr", srv.Addr).
					Wrap(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		results, err := b.run(ctx)
		if len(results) > 0 {
			last := results[len(results)-1]
			logs.WithTag("run_id", runID).
				WithTag("steps", len(results)).
				WithTag("boxes", last.Boxes).
				WithTag("fps", last.FPS).
				WithTag("frames", b.culler.Seq()).
				Info("benchmark finished")
		}
		return err
	})

	return g.Wait()
}

// bufferedFile flushes its buffer before closing the file.
type bufferedFile struct {
	*bufio.Writer
	f *os.File
}

func (b *bufferedFile) Close() error {
	if err := b.Flush(); err != nil {
		_ = b.f.Close()
		return err
	}
	return b.f.Close()
}

var _ io.WriteCloser = (*bufferedFile)(nil)

func validateConfig(conf config) error {
	if conf.Output == "" {
		return errors.New("output file is required")
	}

	if conf.StartBoxes <= 0 || conf.StepBoxes <= 0 || conf.MaxBoxes <= 0 {
		return errors.New("box counts must be positive").
			WithTag("start_boxes", conf.StartBoxes).
			WithTag("step_boxes", conf.StepBoxes).
			WithTag("max_boxes", conf.MaxBoxes)
	}

	if conf.StartBoxes > conf.MaxBoxes {
		return errors.New("start boxes must not exceed max boxes").
			WithTag("start_boxes", conf.StartBoxes).
			WithTag("max_boxes", conf.MaxBoxes)
	}

	if conf.FramesPerStep <= 0 {
		return errors.New("frames per step must be positive").
			WithTag("frames_per_step", conf.FramesPerStep)
	}

	if conf.ViewHalfExtent <= 0 {
		return errors.New("view half-extent must be positive").
			WithTag("view_half_extent", conf.ViewHalfExtent)
	}

	if conf.Capacity < 0 || conf.MaxDepth < 0 {
		return errors.New("index capacity and max depth must not be negative").
			WithTag("capacity", conf.Capacity).
			WithTag("max_depth", conf.MaxDepth)
	}

	return nil
}
