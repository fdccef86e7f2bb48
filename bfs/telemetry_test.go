package bfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/bedrock/bfs"
)

func spanAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

// TestParallel_Tracing records one span per traversal with its outcome.
func TestParallel_Tracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	par := bfs.NewParallel(newPool(t, 2), bfs.WithTracerProvider(tp), bfs.WithLogger(quietLogger()))
	g := sixVertex(t)

	_, err := par.Traverse(context.Background(), g, 0)
	require.NoError(t, err)
	_, err = par.Traverse(context.Background(), g, 42)
	require.ErrorIs(t, err, bfs.ErrStartOutOfRange)

	spans := sr.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	require.Equal(t, "bfs.Traverse", ok.Name())
	require.Equal(t, codes.Ok, ok.Status().Code)
	visited, found := spanAttr(ok.Attributes(), "bfs.visited")
	require.True(t, found)
	require.EqualValues(t, 5, visited.AsInt64())
	levels, found := spanAttr(ok.Attributes(), "bfs.levels")
	require.True(t, found)
	require.EqualValues(t, 4, levels.AsInt64())

	failed := spans[1]
	require.Equal(t, codes.Error, failed.Status().Code)
	start, found := spanAttr(failed.Attributes(), "bfs.start")
	require.True(t, found)
	require.EqualValues(t, 42, start.AsInt64())
}

// TestParallel_Metrics checks the traversal counter and level-width histogram.
func TestParallel_Metrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	par := bfs.NewParallel(newPool(t, 2), bfs.WithMeterProvider(mp), bfs.WithLogger(quietLogger()))
	g := sixVertex(t)
	for i := 0; i < 3; i++ {
		_, err := par.Traverse(ctx, g, 0)
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	got := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			got[m.Name] = m
		}
	}

	total, ok := got["bfs_traversals_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok, "traversal counter missing")
	require.Len(t, total.DataPoints, 1)
	require.EqualValues(t, 3, total.DataPoints[0].Value)

	widths, ok := got["bfs_level_width"].Data.(metricdata.Histogram[int64])
	require.True(t, ok, "level width histogram missing")
	require.Len(t, widths.DataPoints, 1)
	require.EqualValues(t, 12, widths.DataPoints[0].Count, "four levels per traversal")
	require.EqualValues(t, 15, widths.DataPoints[0].Sum)

	duration, ok := got["bfs_traversal_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok, "duration histogram missing")
	require.EqualValues(t, 3, duration.DataPoints[0].Count)
}
