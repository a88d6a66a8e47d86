package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hushd/hushd/internal/domain"
	"github.com/hushd/hushd/internal/service/scheduler"
)

// EvaluateHandler accepts re-evaluation requests: manual ones from users or
// tooling, and scheduled wake-up callbacks from the managed queue backend.
type EvaluateHandler struct {
	scheduler *scheduler.Scheduler
}

func NewEvaluateHandler(s *scheduler.Scheduler) *EvaluateHandler {
	return &EvaluateHandler{scheduler: s}
}

// HandleEvaluate requests an evaluation pass and returns immediately; the
// pass runs asynchronously.
func (h *EvaluateHandler) HandleEvaluate(c *gin.Context) {
	ctx := c.Request.Context()

	trigger := domain.TriggerManual
	if raw := c.Query("trigger"); raw != "" {
		parsed, ok := parseTrigger(raw)
		if !ok {
			respondError(c, http.StatusBadRequest, "unknown trigger")
			return
		}
		trigger = parsed
	}

	h.scheduler.Trigger(trigger)

	slog.InfoContext(ctx, "evaluation requested",
		slog.String("trigger", trigger.String()),
	)

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "trigger": trigger.String()})
}

func parseTrigger(raw string) (domain.Trigger, bool) {
	switch domain.Trigger(raw) {
	case domain.TriggerManual,
		domain.TriggerBoot,
		domain.TriggerCalendarChanged,
		domain.TriggerPeriodicAlarm:
		return domain.Trigger(raw), true
	default:
		return "", false
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
