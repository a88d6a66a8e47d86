package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hushd/hushd/internal/domain"
)

type OverrideHandler struct {
	settings domain.SettingsRepository
}

func NewOverrideHandler(settings domain.SettingsRepository) *OverrideHandler {
	return &OverrideHandler{settings: settings}
}

type overrideRequest struct {
	Kind       string    `json:"kind" binding:"required"`
	CalendarID string    `json:"calendar_id"`
	EventID    string    `json:"event_id" binding:"required"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
}

type overrideResponse struct {
	Kind       string    `json:"kind"`
	CalendarID string    `json:"calendar_id,omitempty"`
	EventID    string    `json:"event_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	CreatedAt  time.Time `json:"created_at"`
}

// HandleSetOverride stores a one-time override, replacing any prior one.
func (h *OverrideHandler) HandleSetOverride(c *gin.Context) {
	ctx := c.Request.Context()

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	kind := domain.OverrideKind(req.Kind)
	if !kind.Valid() {
		respondError(c, http.StatusBadRequest, "kind must be enable_for_event or skip_event")
		return
	}
	if !req.Start.Before(req.End) {
		respondError(c, http.StatusBadRequest, "start must be before end")
		return
	}

	override := &domain.OneTimeOverride{
		Kind:       kind,
		CalendarID: req.CalendarID,
		EventID:    req.EventID,
		Start:      req.Start,
		End:        req.End,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.settings.SaveOverride(ctx, override); err != nil {
		if errors.Is(err, domain.ErrInvalidOverride) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to save override",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to save override")
		return
	}

	slog.InfoContext(ctx, "override saved",
		slog.String("kind", kind.String()),
		slog.String("event_id", override.EventID),
		slog.Time("start", override.Start),
		slog.Time("end", override.End),
	)

	c.JSON(http.StatusCreated, toOverrideResponse(override))
}

func (h *OverrideHandler) HandleGetOverride(c *gin.Context) {
	ctx := c.Request.Context()

	override, err := h.settings.GetOverride(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrOverrideNotFound) {
			respondError(c, http.StatusNotFound, "no override set")
			return
		}
		slog.ErrorContext(ctx, "failed to read override",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to read override")
		return
	}

	c.JSON(http.StatusOK, toOverrideResponse(override))
}

// HandleClearOverride removes the stored override. Clearing when none is set
// still succeeds.
func (h *OverrideHandler) HandleClearOverride(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.settings.ClearOverride(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to clear override",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to clear override")
		return
	}

	c.Status(http.StatusNoContent)
}

func toOverrideResponse(o *domain.OneTimeOverride) overrideResponse {
	return overrideResponse{
		Kind:       o.Kind.String(),
		CalendarID: o.CalendarID,
		EventID:    o.EventID,
		Start:      o.Start,
		End:        o.End,
		CreatedAt:  o.CreatedAt,
	}
}
