package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/hushd/hushd/internal/domain"
	"github.com/hushd/hushd/internal/observability/metrics"
	"github.com/hushd/hushd/internal/observability/tracing"
	"github.com/hushd/hushd/internal/service/dayfilter"
	"github.com/hushd/hushd/internal/service/decision"
	"github.com/hushd/hushd/internal/service/scope"
)

// State is the scheduler's lifecycle position, surfaced via Status.
type State string

const (
	StateIdle       State = "idle"
	StateEvaluating State = "evaluating"
	StateArmed      State = "armed"
)

// Config bounds one evaluation pass and the fallback cadence.
type Config struct {
	// Horizon is how far ahead the event source is queried. Capped so a
	// runaway configuration cannot make passes unbounded.
	Horizon time.Duration
	// FallbackInterval is used to arm the waker when a pass yields no
	// boundary.
	FallbackInterval time.Duration
	// PeriodicSpec is the cron expression for the safety-net periodic alarm.
	PeriodicSpec string
	// Now is the clock; tests inject a fake one. Defaults to time.Now.
	Now func() time.Time
}

const (
	defaultHorizon  = 24 * time.Hour
	maxHorizon      = 7 * 24 * time.Hour
	defaultFallback = 15 * time.Minute
)

// Scheduler owns the re-evaluation cadence. Triggers are coalesced through a
// single-flight gate: at most one evaluation pass runs at a time, a trigger
// arriving mid-pass schedules exactly one follow-up pass, and every pass
// reads fresh state. The trigger path never blocks the caller.
type Scheduler struct {
	settings   domain.SettingsRepository
	source     domain.EventSource
	controller domain.DNDController
	waker      domain.Waker
	recorder   domain.DecisionRecorder
	metrics    *metrics.EngineMetrics

	resolver  *scope.Resolver
	dayFilter *dayfilter.Filter
	engine    *decision.Engine

	horizon  time.Duration
	fallback time.Duration
	periodic string
	now      func() time.Time

	runCtx context.Context
	cancel context.CancelFunc
	cron   *cron.Cron
	wg     sync.WaitGroup

	mu                sync.Mutex
	state             State
	closed            bool
	pending           bool
	pendingTrigger    domain.Trigger
	lastApplied       *bool
	lastDecision      *domain.Decision
	lastTrigger       domain.Trigger
	lastRunID         string
	lastEvaluatedAt   time.Time
	pendingPermission bool
	lastError         string
}

func New(
	settings domain.SettingsRepository,
	source domain.EventSource,
	controller domain.DNDController,
	waker domain.Waker,
	recorder domain.DecisionRecorder,
	engineMetrics *metrics.EngineMetrics,
	resolver *scope.Resolver,
	dayFilter *dayfilter.Filter,
	engine *decision.Engine,
	cfg Config,
) *Scheduler {
	if cfg.Horizon <= 0 {
		cfg.Horizon = defaultHorizon
	}
	if cfg.Horizon > maxHorizon {
		cfg.Horizon = maxHorizon
	}
	if cfg.FallbackInterval <= 0 {
		cfg.FallbackInterval = defaultFallback
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Scheduler{
		settings:   settings,
		source:     source,
		controller: controller,
		waker:      waker,
		recorder:   recorder,
		metrics:    engineMetrics,
		resolver:   resolver,
		dayFilter:  dayFilter,
		engine:     engine,
		horizon:    cfg.Horizon,
		fallback:   cfg.FallbackInterval,
		periodic:   cfg.PeriodicSpec,
		now:        cfg.Now,
		state:      StateIdle,
	}
}

// Start subscribes to settings change notifications, starts the periodic
// safety-net alarm, and fires the boot trigger. It returns once the
// background loops are running.
func (s *Scheduler) Start(ctx context.Context) error {
	s.runCtx, s.cancel = context.WithCancel(ctx)

	changes, err := s.settings.Watch(s.runCtx)
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for change := range changes {
			s.Trigger(triggerForChange(change.Kind))
		}
	}()

	if s.periodic != "" {
		s.cron = cron.New()
		if _, err := s.cron.AddFunc(s.periodic, func() {
			s.Trigger(domain.TriggerPeriodicAlarm)
		}); err != nil {
			return err
		}
		s.cron.Start()
	}

	s.Trigger(domain.TriggerBoot)
	return nil
}

// Stop cancels background work and waits for an in-flight pass to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.waker.Stop()
	s.wg.Wait()
}

// Trigger requests a re-evaluation. It returns immediately; the pass runs
// asynchronously. A trigger during an in-progress pass is coalesced into
// exactly one follow-up pass (last trigger wins for logging, evaluation
// always reads fresh data).
func (s *Scheduler) Trigger(trigger domain.Trigger) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.state == StateEvaluating {
		s.pending = true
		s.pendingTrigger = trigger
		s.mu.Unlock()

		if s.metrics != nil {
			s.metrics.RecordTriggerCoalesced(context.Background(), trigger.String())
		}
		slog.Debug("trigger coalesced into running pass",
			slog.String("trigger", trigger.String()),
		)
		return
	}
	s.state = StateEvaluating
	s.mu.Unlock()

	s.wg.Add(1)
	go s.runPasses(trigger)
}

func (s *Scheduler) runPasses(trigger domain.Trigger) {
	defer s.wg.Done()

	ctx := s.runCtx
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		s.evaluateOnce(ctx, trigger)

		s.mu.Lock()
		if s.pending {
			s.pending = false
			trigger = s.pendingTrigger
			s.mu.Unlock()
			continue
		}
		s.state = StateArmed
		s.mu.Unlock()
		return
	}
}

// Status is a snapshot of the scheduler for the status API.
type Status struct {
	State             State          `json:"state"`
	DNDActive         bool           `json:"dnd_active"`
	PendingPermission bool           `json:"pending_permission"`
	NextBoundary      *time.Time     `json:"next_boundary,omitempty"`
	LastTrigger       domain.Trigger `json:"last_trigger,omitempty"`
	LastRunID         string         `json:"last_run_id,omitempty"`
	LastEvaluatedAt   time.Time      `json:"last_evaluated_at"`
	LastError         string         `json:"last_error,omitempty"`
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		State:             s.state,
		PendingPermission: s.pendingPermission,
		LastTrigger:       s.lastTrigger,
		LastRunID:         s.lastRunID,
		LastEvaluatedAt:   s.lastEvaluatedAt,
		LastError:         s.lastError,
	}
	if s.lastDecision != nil {
		status.DNDActive = s.lastDecision.DNDActive
		status.NextBoundary = s.lastDecision.NextBoundary
	}
	return status
}

// evaluateOnce runs one full pass: snapshot settings, query events, filter,
// decide, apply, clean up an expired override, and re-arm the waker. Every
// failure degrades to "leave DND unchanged and retry later".
func (s *Scheduler) evaluateOnce(ctx context.Context, trigger domain.Trigger) {
	runID := uuid.NewString()
	now := s.now()
	started := time.Now()

	ctx, span := tracing.StartEvaluationSpan(ctx, runID, trigger.String(), now)
	defer span.End()

	slog.DebugContext(ctx, "evaluation pass started",
		slog.String("run_id", runID),
		slog.String("trigger", trigger.String()),
		slog.Time("now", now),
	)

	snapshot, ok := s.readSettings(ctx, runID)
	if !ok {
		s.finishPass(ctx, trigger, runID, now, "settings_error", started)
		return
	}

	events, outcome := s.queryEvents(ctx, runID, now)
	if outcome == outcomeSourceUnavailable {
		// Keep the previous applied state; the re-armed fallback retries.
		s.finishPass(ctx, trigger, runID, now, "source_unavailable", started)
		return
	}

	inScope := s.resolver.Resolve(events, snapshot.scope)
	filtered := s.dayFilter.Apply(inScope, snapshot.weekdays)
	d := s.engine.Evaluate(now, filtered, snapshot.override)

	applied, pendingPermission := s.applyDecision(ctx, d)

	if snapshot.override.ExpiredAt(now) {
		if err := s.settings.ClearOverride(ctx); err != nil {
			slog.WarnContext(ctx, "failed to clear expired override",
				slog.String("run_id", runID),
				slog.String("error", err.Error()),
			)
		} else {
			slog.DebugContext(ctx, "expired override cleared",
				slog.String("run_id", runID),
				slog.String("event_id", snapshot.override.EventID),
			)
		}
	}

	s.rearm(ctx, now, d)

	s.mu.Lock()
	decisionCopy := d
	s.lastDecision = &decisionCopy
	s.lastTrigger = trigger
	s.lastRunID = runID
	s.lastEvaluatedAt = now
	s.pendingPermission = pendingPermission
	s.lastError = ""
	s.mu.Unlock()

	slog.InfoContext(ctx, "evaluation pass completed",
		slog.String("run_id", runID),
		slog.String("trigger", trigger.String()),
		slog.Bool("dnd_active", d.DNDActive),
		slog.Bool("applied", applied),
		slog.Bool("pending_permission", pendingPermission),
		slog.Int("event_count", len(events)),
		slog.Int("filtered_count", len(filtered)),
	)

	tracing.RecordEvaluationResult(span, d.DNDActive, applied, pendingPermission, d.NextBoundary, nil)

	record := domain.EvaluationRecord{
		RunID:             runID,
		Trigger:           trigger,
		EvaluatedAt:       now,
		DNDActive:         d.DNDActive,
		Applied:           applied,
		PendingPermission: pendingPermission,
		NextBoundary:      d.NextBoundary,
		EventCount:        len(events),
		FilteredCount:     len(filtered),
		OverrideActive:    snapshot.override.ActiveAt(now),
		Duration:          time.Since(started),
	}
	if s.recorder != nil {
		if err := s.recorder.RecordEvaluation(ctx, record); err != nil {
			slog.WarnContext(ctx, "failed to record evaluation",
				slog.String("run_id", runID),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordEvaluation(ctx, trigger.String(), "ok", time.Since(started))
	}
}

type settingsSnapshot struct {
	scope    domain.CalendarScope
	weekdays domain.WeekdaySetting
	override *domain.OneTimeOverride
}

// readSettings takes the immutable snapshot one pass evaluates against. The
// engine never reads live mutable state mid-computation.
func (s *Scheduler) readSettings(ctx context.Context, runID string) (settingsSnapshot, bool) {
	var snapshot settingsSnapshot
	var err error

	if snapshot.scope, err = s.settings.GetScope(ctx); err != nil {
		s.logSettingsError(ctx, runID, "scope", err)
		return snapshot, false
	}
	if snapshot.weekdays, err = s.settings.GetWeekdaySetting(ctx); err != nil {
		s.logSettingsError(ctx, runID, "weekdays", err)
		return snapshot, false
	}

	snapshot.override, err = s.settings.GetOverride(ctx)
	if err != nil && !errors.Is(err, domain.ErrOverrideNotFound) {
		s.logSettingsError(ctx, runID, "override", err)
		return snapshot, false
	}

	return snapshot, true
}

func (s *Scheduler) logSettingsError(ctx context.Context, runID, field string, err error) {
	slog.ErrorContext(ctx, "failed to read settings, skipping pass",
		slog.String("run_id", runID),
		slog.String("field", field),
		slog.String("error", err.Error()),
	)
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

type queryOutcome int

const (
	outcomeOK queryOutcome = iota
	outcomePermissionDenied
	outcomeSourceUnavailable
)

func (s *Scheduler) queryEvents(ctx context.Context, runID string, now time.Time) ([]domain.EventInstance, queryOutcome) {
	windowEnd := now.Add(s.horizon)

	queryCtx, querySpan := tracing.StartSourceQuerySpan(ctx, now, windowEnd)
	events, err := s.source.Query(queryCtx, now, windowEnd)
	querySpan.End()

	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		// No calendar access: decide with zero events, defaulting OFF.
		slog.WarnContext(ctx, "calendar access denied, deciding with no events",
			slog.String("run_id", runID),
		)
		return nil, outcomePermissionDenied
	case err != nil:
		slog.WarnContext(ctx, "event source unavailable, skipping pass",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil, outcomeSourceUnavailable
	default:
		return events, outcomeOK
	}
}

// applyDecision pushes the decision to the platform controller when it
// differs from the last applied value. Re-applying an unchanged value is
// skipped; missing permission defers the apply without tight-loop retries.
func (s *Scheduler) applyDecision(ctx context.Context, d domain.Decision) (applied, pendingPermission bool) {
	s.mu.Lock()
	last := s.lastApplied
	s.mu.Unlock()

	if last != nil && *last == d.DNDActive {
		return false, false
	}

	hasPermission, err := s.controller.HasPermission(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to check policy permission",
			slog.String("error", err.Error()),
		)
		hasPermission = false
	}
	if !hasPermission {
		if s.metrics != nil {
			s.metrics.RecordApplySkipped(ctx, "no_permission")
		}
		return false, true
	}

	applyCtx, applySpan := tracing.StartApplySpan(ctx, d.DNDActive)
	err = s.controller.Apply(applyCtx, d.DNDActive)
	applySpan.End()

	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		if s.metrics != nil {
			s.metrics.RecordApplySkipped(ctx, "no_permission")
		}
		return false, true
	case err != nil:
		slog.ErrorContext(ctx, "failed to apply interruption state",
			slog.Bool("dnd_active", d.DNDActive),
			slog.String("error", err.Error()),
		)
		if s.metrics != nil {
			s.metrics.RecordApplySkipped(ctx, "apply_error")
		}
		return false, false
	}

	active := d.DNDActive
	s.mu.Lock()
	s.lastApplied = &active
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordStateFlip(ctx, active)
	}
	slog.InfoContext(ctx, "interruption state applied",
		slog.Bool("dnd_active", active),
	)
	return true, false
}

// rearm replaces the armed wake-up with the decision boundary, or the
// periodic fallback when the pass found no boundary.
func (s *Scheduler) rearm(ctx context.Context, now time.Time, d domain.Decision) {
	at := now.Add(s.fallback)
	if d.NextBoundary != nil {
		at = *d.NextBoundary
	}

	if err := s.waker.Arm(ctx, at); err != nil {
		slog.ErrorContext(ctx, "failed to arm wake-up",
			slog.Time("at", at),
			slog.String("error", err.Error()),
		)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordBoundaryLead(ctx, at.Sub(now))
	}
	slog.DebugContext(ctx, "wake-up armed",
		slog.Time("at", at),
		slog.Bool("boundary", d.NextBoundary != nil),
	)
}

// finishPass records a skipped pass and re-arms the fallback timer so a
// degraded adapter is retried without waiting for an external trigger.
func (s *Scheduler) finishPass(ctx context.Context, trigger domain.Trigger, runID string, now time.Time, outcome string, started time.Time) {
	s.rearm(ctx, now, domain.Decision{})

	s.mu.Lock()
	s.lastTrigger = trigger
	s.lastRunID = runID
	s.lastEvaluatedAt = now
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordEvaluation(ctx, trigger.String(), outcome, time.Since(started))
	}
}

func triggerForChange(kind domain.SettingsChangeKind) domain.Trigger {
	if kind == domain.SettingsChangeOverride {
		return domain.TriggerOverrideChanged
	}
	return domain.TriggerSettingsChanged
}
