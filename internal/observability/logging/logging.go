package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Environment selects the log output shape.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module tags every log line of a component so multi-service log streams can
// be filtered by origin.
type Module string

// ServiceInfo identifies the running binary in logs and traces.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID stores a request id on the context for downstream log lines
// and outgoing adapter calls.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the stored request id, or empty.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ValidateAndExtractRequestID returns the given id when usable, otherwise a
// fresh one, so outgoing requests always carry a correlation id.
func ValidateAndExtractRequestID(requestID string) string {
	if requestID == "" || len(requestID) > 128 {
		return uuid.NewString()
	}
	return requestID
}

// NewHandler builds the slog handler for the given environment: human
// readable text in dev, JSON elsewhere. projectID is used for GCP trace
// correlation attributes when the gcloud build is in use.
func NewHandler(env Environment, level slog.Level, module Module, projectID string) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var base slog.Handler
	if env == EnvDev {
		base = slog.NewTextHandler(os.Stdout, opts)
	} else {
		base = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &contextHandler{
		Handler:   base.WithAttrs([]slog.Attr{slog.String("module", string(module))}),
		projectID: projectID,
	}
}

// contextHandler enriches records with context-carried attributes: the
// request id and, on GCP, trace correlation fields.
type contextHandler struct {
	slog.Handler
	projectID string
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		record.AddAttrs(slog.String("request_id", requestID))
	}
	if attrs := gcpTraceAttrs(ctx, h.projectID); len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), projectID: h.projectID}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), projectID: h.projectID}
}
