//go:build gcloud

package decisionrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/hushd/hushd/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt        time.Time              `bigquery:"recorded_at"`
	RunID             string                 `bigquery:"run_id"`
	Trigger           string                 `bigquery:"trigger"`
	EvaluatedAt       time.Time              `bigquery:"evaluated_at"`
	DNDActive         bool                   `bigquery:"dnd_active"`
	Applied           bool                   `bigquery:"applied"`
	PendingPermission bool                   `bigquery:"pending_permission"`
	NextBoundary      bigquery.NullTimestamp `bigquery:"next_boundary"`
	EventCount        int64                  `bigquery:"event_count"`
	FilteredCount     int64                  `bigquery:"filtered_count"`
	OverrideActive    bool                   `bigquery:"override_active"`
	DurationMillis    int64                  `bigquery:"duration_ms"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DecisionRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "decision recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, decision recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, decision recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "decision recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordEvaluation(ctx context.Context, record domain.EvaluationRecord) error {
	row := &bigQueryRecord{
		RecordedAt:        time.Now(),
		RunID:             record.RunID,
		Trigger:           record.Trigger.String(),
		EvaluatedAt:       record.EvaluatedAt,
		DNDActive:         record.DNDActive,
		Applied:           record.Applied,
		PendingPermission: record.PendingPermission,
		EventCount:        int64(record.EventCount),
		FilteredCount:     int64(record.FilteredCount),
		OverrideActive:    record.OverrideActive,
		DurationMillis:    record.Duration.Milliseconds(),
	}
	if record.NextBoundary != nil {
		row.NextBoundary = bigquery.NullTimestamp{Timestamp: *record.NextBoundary, Valid: true}
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert evaluation record to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
