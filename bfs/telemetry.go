// SPDX-License-Identifier: MIT
// Package: bedrock/bfs
//
// telemetry.go - OpenTelemetry spans and instruments for the parallel traversal.

package bfs

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/katalvlaran/bedrock/bfs"

type telemetry struct {
	tracer     trace.Tracer
	duration   metric.Float64Histogram
	levelWidth metric.Int64Histogram
	total      metric.Int64Counter
}

// newTelemetry creates the instruments once per Parallel. An instrument that
// fails to register is replaced by a no-op so traversals never fail on it.
func newTelemetry(o Options) *telemetry {
	meter := o.MeterProvider.Meter(instrumentationName)
	fallback := noop.NewMeterProvider().Meter(instrumentationName)
	t := &telemetry{tracer: o.TracerProvider.Tracer(instrumentationName)}

	var err error
	if t.duration, err = meter.Float64Histogram(
		"bfs_traversal_duration_seconds",
		metric.WithDescription("Duration of parallel BFS traversals"),
		metric.WithUnit("s"),
	); err != nil {
		o.Logger.Warn("bfs: duration histogram unavailable", slog.Any("error", err))
		t.duration, _ = fallback.Float64Histogram("bfs_traversal_duration_seconds")
	}
	if t.levelWidth, err = meter.Int64Histogram(
		"bfs_level_width",
		metric.WithDescription("Number of vertices in each expanded BFS level"),
	); err != nil {
		o.Logger.Warn("bfs: level width histogram unavailable", slog.Any("error", err))
		t.levelWidth, _ = fallback.Int64Histogram("bfs_level_width")
	}
	if t.total, err = meter.Int64Counter(
		"bfs_traversals_total",
		metric.WithDescription("Total number of parallel BFS traversals"),
	); err != nil {
		o.Logger.Warn("bfs: traversal counter unavailable", slog.Any("error", err))
		t.total, _ = fallback.Int64Counter("bfs_traversals_total")
	}
	return t
}

func (t *telemetry) startTraversal(ctx context.Context, start, vertices, workers int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "bfs.Traverse",
		trace.WithAttributes(
			attribute.Int("bfs.start", start),
			attribute.Int("bfs.vertex_count", vertices),
			attribute.Int("bfs.workers", workers),
		),
	)
}

func (t *telemetry) recordLevel(ctx context.Context, width int) {
	t.levelWidth.Record(ctx, int64(width))
}

// finish closes out span and records the traversal metrics.
func (t *telemetry) finish(ctx context.Context, span trace.Span, began time.Time, res *Result, err error) {
	success := err == nil
	t.duration.Record(ctx, time.Since(began).Seconds(),
		metric.WithAttributes(attribute.Bool("success", success)))
	t.total.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(
		attribute.Int("bfs.levels", len(res.Levels)),
		attribute.Int("bfs.visited", res.Count()),
	)
	span.SetStatus(codes.Ok, "")
}
