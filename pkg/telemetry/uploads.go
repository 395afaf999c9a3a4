package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentationName scopes every tracer and meter created by this service.
const InstrumentationName = "github.com/ghuser/moviebox"

// Upload outcomes recorded on movie_uploads_total.
const (
	ResultOK         = "ok"
	ResultInvalid    = "invalid"
	ResultIncomplete = "incomplete"
	ResultError      = "error"
)

// UploadMetrics holds the instruments the intake pipeline records into.
type UploadMetrics struct {
	uploads metric.Int64Counter
	bytes   metric.Int64Histogram
}

// NewUploadMetrics creates the upload instruments on the global MeterProvider.
// Call after Setup so the instruments are exported; before that they are no-ops.
func NewUploadMetrics() (*UploadMetrics, error) {
	return NewUploadMetricsFrom(otel.Meter(InstrumentationName))
}

// NewUploadMetricsFrom creates the upload instruments on meter.
func NewUploadMetricsFrom(meter metric.Meter) (*UploadMetrics, error) {
	uploads, err := meter.Int64Counter("movie_uploads",
		metric.WithDescription("Upload submissions by outcome"),
		metric.WithUnit("{upload}"),
	)
	if err != nil {
		return nil, fmt.Errorf("uploads counter: %w", err)
	}
	bytes, err := meter.Int64Histogram("movie_upload_file_bytes",
		metric.WithDescription("Size of files stored per upload slot"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("upload bytes histogram: %w", err)
	}
	return &UploadMetrics{uploads: uploads, bytes: bytes}, nil
}

// RecordUpload counts one submission with the given result label.
func (m *UploadMetrics) RecordUpload(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.uploads.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordFile records the size of a file stored into slot.
func (m *UploadMetrics) RecordFile(ctx context.Context, slot string, size int64) {
	if m == nil {
		return
	}
	m.bytes.Record(ctx, size, metric.WithAttributes(attribute.String("slot", slot)))
}
