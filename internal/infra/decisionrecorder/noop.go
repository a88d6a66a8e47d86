package decisionrecorder

import (
	"context"

	"github.com/hushd/hushd/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DecisionRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordEvaluation(_ context.Context, _ domain.EvaluationRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
