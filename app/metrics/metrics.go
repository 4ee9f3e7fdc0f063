package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "fiber/wof"

type Metrics struct {
	submissionsCreated  metric.Int64Counter
	statusChanges       metric.Int64Counter
	reorders            metric.Int64Counter
	syncFailures        metric.Int64Counter
	notificationsFailed metric.Int64Counter
	syncDuration        metric.Float64Histogram
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.submissionsCreated, err = meter.Int64Counter(
		"wof.submissions.created",
		metric.WithDescription("Total number of achievements submitted"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.statusChanges, err = meter.Int64Counter(
		"wof.review.status_changes",
		metric.WithDescription("Total number of approval status changes"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	m.reorders, err = meter.Int64Counter(
		"wof.board.reorders",
		metric.WithDescription("Total number of records whose order changed"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	m.syncFailures, err = meter.Int64Counter(
		"wof.board.sync_failures",
		metric.WithDescription("Write-behind jobs that failed after every retry"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, err
	}

	m.notificationsFailed, err = meter.Int64Counter(
		"wof.notify.failed",
		metric.WithDescription("Total number of mails that could not be sent"),
		metric.WithUnit("{mail}"),
	)
	if err != nil {
		return nil, err
	}

	m.syncDuration, err = meter.Float64Histogram(
		"wof.board.sync_duration",
		metric.WithDescription("Time spent persisting one write-behind job"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Global uses the process-wide meter provider; it is a no-op until an SDK is installed.
func Global() *Metrics {
	m, err := New(otel.Meter(meterName))
	if err != nil {
		return nil
	}
	return m
}

func (m *Metrics) RecordSubmission(ctx context.Context, category string) {
	if m != nil && m.submissionsCreated != nil {
		m.submissionsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
	}
}

func (m *Metrics) RecordStatusChange(ctx context.Context, status string) {
	if m != nil && m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func (m *Metrics) RecordReorder(ctx context.Context, section string, changed int) {
	if m != nil && m.reorders != nil && changed > 0 {
		m.reorders.Add(ctx, int64(changed), metric.WithAttributes(attribute.String("section", section)))
	}
}

func (m *Metrics) RecordSyncFailure(ctx context.Context, kind string) {
	if m != nil && m.syncFailures != nil {
		m.syncFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}

func (m *Metrics) RecordSyncDuration(ctx context.Context, d time.Duration) {
	if m != nil && m.syncDuration != nil {
		m.syncDuration.Record(ctx, d.Seconds())
	}
}

func (m *Metrics) RecordNotificationFailure(ctx context.Context) {
	if m != nil && m.notificationsFailed != nil {
		m.notificationsFailed.Add(ctx, 1)
	}
}
