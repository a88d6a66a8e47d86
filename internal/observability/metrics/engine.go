package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	engineMeterName = "dnd.engine"
)

type EngineMetrics struct {
	evaluations        metric.Int64Counter
	stateFlips         metric.Int64Counter
	triggersCoalesced  metric.Int64Counter
	applySkipped       metric.Int64Counter
	evaluationDuration metric.Float64Histogram
	boundaryLead       metric.Float64Histogram
}

func NewEngineMetrics() (*EngineMetrics, error) {
	meter := otel.Meter(engineMeterName)

	evaluations, err := meter.Int64Counter(
		"dnd_evaluations_total",
		metric.WithDescription("Total number of evaluation passes"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, err
	}

	stateFlips, err := meter.Int64Counter(
		"dnd_state_flips_total",
		metric.WithDescription("Total number of applied DND state changes"),
		metric.WithUnit("{flip}"),
	)
	if err != nil {
		return nil, err
	}

	triggersCoalesced, err := meter.Int64Counter(
		"dnd_triggers_coalesced_total",
		metric.WithDescription("Triggers folded into an already running evaluation pass"),
		metric.WithUnit("{trigger}"),
	)
	if err != nil {
		return nil, err
	}

	applySkipped, err := meter.Int64Counter(
		"dnd_apply_skipped_total",
		metric.WithDescription("Apply steps skipped because policy access is missing"),
		metric.WithUnit("{apply}"),
	)
	if err != nil {
		return nil, err
	}

	evaluationDuration, err := meter.Float64Histogram(
		"dnd_evaluation_duration_seconds",
		metric.WithDescription("Duration of one evaluation pass"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	boundaryLead, err := meter.Float64Histogram(
		"dnd_boundary_lead_seconds",
		metric.WithDescription("Distance from evaluation time to the armed boundary"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			1, 10, 60, 300, 900, 3600, 14400, 86400,
		),
	)
	if err != nil {
		return nil, err
	}

	return &EngineMetrics{
		evaluations:        evaluations,
		stateFlips:         stateFlips,
		triggersCoalesced:  triggersCoalesced,
		applySkipped:       applySkipped,
		evaluationDuration: evaluationDuration,
		boundaryLead:       boundaryLead,
	}, nil
}

func (m *EngineMetrics) RecordEvaluation(ctx context.Context, trigger, outcome string, duration time.Duration) {
	m.evaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("trigger", trigger),
		attribute.String("outcome", outcome),
	))
	m.evaluationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("trigger", trigger),
	))
}

func (m *EngineMetrics) RecordStateFlip(ctx context.Context, active bool) {
	m.stateFlips.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("dnd_active", active),
	))
}

func (m *EngineMetrics) RecordTriggerCoalesced(ctx context.Context, trigger string) {
	m.triggersCoalesced.Add(ctx, 1, metric.WithAttributes(
		attribute.String("trigger", trigger),
	))
}

func (m *EngineMetrics) RecordApplySkipped(ctx context.Context, reason string) {
	m.applySkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *EngineMetrics) RecordBoundaryLead(ctx context.Context, lead time.Duration) {
	m.boundaryLead.Record(ctx, lead.Seconds())
}
