package metrics_test

import (
	"context"
	"testing"
	"time"

	"fiber/wof/app/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNew_NoopMeter(t *testing.T) {
	m, err := metrics.New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordSubmission(ctx, "AWARDS")
		m.RecordStatusChange(ctx, "approved")
		m.RecordReorder(ctx, "top10", 3)
		m.RecordSyncFailure(ctx, "batch")
		m.RecordSyncDuration(ctx, time.Millisecond)
		m.RecordNotificationFailure(ctx)
	})
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordSubmission(context.Background(), "AWARDS")
		m.RecordReorder(context.Background(), "top10", 1)
	})
}

func TestGlobal(t *testing.T) {
	assert.NotNil(t, metrics.Global())
}
