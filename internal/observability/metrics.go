package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OTel metric instruments for the conformance verifier.
type Metrics struct {
	ComparisonRuns  metric.Int64Counter
	MismatchedPaths metric.Int64Counter
	FramesAnalyzed  metric.Int64Counter
	ChecksFailed    metric.Int64Counter
}

// NewMetrics creates the conformance metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("conformance")

	comparisonRuns, err := meter.Int64Counter("conformance.comparison.runs",
		metric.WithDescription("Number of structural comparisons performed"),
	)
	if err != nil {
		return nil, err
	}

	mismatchedPaths, err := meter.Int64Counter("conformance.comparison.mismatched_paths",
		metric.WithDescription("Number of paths whose kinds diverged"),
	)
	if err != nil {
		return nil, err
	}

	framesAnalyzed, err := meter.Int64Counter("conformance.stream.frames",
		metric.WithDescription("Number of decoded stream frames analyzed"),
	)
	if err != nil {
		return nil, err
	}

	checksFailed, err := meter.Int64Counter("conformance.verdict.checks_failed",
		metric.WithDescription("Number of failed conformance checks"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ComparisonRuns:  comparisonRuns,
		MismatchedPaths: mismatchedPaths,
		FramesAnalyzed:  framesAnalyzed,
		ChecksFailed:    checksFailed,
	}, nil
}

// RecordComparison records one structural comparison and its mismatch count.
func (m *Metrics) RecordComparison(ctx context.Context, name string, mismatched int) {
	attrs := metric.WithAttributes(attribute.String("sample", name))
	m.ComparisonRuns.Add(ctx, 1, attrs)
	m.MismatchedPaths.Add(ctx, int64(mismatched), attrs)
}

// RecordStream records the decoded frame count of one analyzed stream.
func (m *Metrics) RecordStream(ctx context.Context, name string, frames int) {
	m.FramesAnalyzed.Add(ctx, int64(frames),
		metric.WithAttributes(attribute.String("sample", name)),
	)
}

// RecordVerdict records the failed-check count of one finished run.
func (m *Metrics) RecordVerdict(ctx context.Context, failed int) {
	m.ChecksFailed.Add(ctx, int64(failed))
}
