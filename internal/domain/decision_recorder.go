package domain

import "context"

//go:generate mockgen -source=decision_recorder.go -destination=decision_recorder_mock.go -package=domain

// DecisionRecorder persists evaluation telemetry for offline analysis.
// Recording failures are logged and never fail the evaluation pass.
type DecisionRecorder interface {
	RecordEvaluation(ctx context.Context, record EvaluationRecord) error
	Close() error
}
