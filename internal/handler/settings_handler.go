package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hushd/hushd/internal/domain"
	"github.com/hushd/hushd/internal/infra/eventsource"
)

type SettingsHandler struct {
	settings  domain.SettingsRepository
	calendars []eventsource.Calendar
}

func NewSettingsHandler(settings domain.SettingsRepository, calendars []eventsource.Calendar) *SettingsHandler {
	return &SettingsHandler{
		settings:  settings,
		calendars: calendars,
	}
}

type scopeRequest struct {
	All         bool     `json:"all"`
	CalendarIDs []string `json:"calendar_ids"`
}

type weekdaysRequest struct {
	Enabled bool     `json:"enabled"`
	Days    []string `json:"days"`
}

type settingsResponse struct {
	Scope     scopeRequest       `json:"scope"`
	Weekdays  weekdaysResponse   `json:"weekdays"`
	Calendars []calendarResponse `json:"calendars"`
}

type weekdaysResponse struct {
	Enabled bool     `json:"enabled"`
	Days    []string `json:"days"`
}

type calendarResponse struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

func (h *SettingsHandler) HandleGetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	scope, err := h.settings.GetScope(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read scope",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to read settings")
		return
	}

	weekdays, err := h.settings.GetWeekdaySetting(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read weekday setting",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to read settings")
		return
	}

	calendars := make([]calendarResponse, 0, len(h.calendars))
	for _, cal := range h.calendars {
		calendars = append(calendars, calendarResponse{ID: cal.ID, Name: cal.Name})
	}

	c.JSON(http.StatusOK, settingsResponse{
		Scope: scopeRequest{
			All:         scope.All,
			CalendarIDs: scope.CalendarIDs,
		},
		Weekdays: weekdaysResponse{
			Enabled: weekdays.Enabled,
			Days:    dayNames(weekdays.Mask),
		},
		Calendars: calendars,
	})
}

// HandleSetScope updates which calendars the engine considers. An explicit
// empty selection is allowed and matches no events.
func (h *SettingsHandler) HandleSetScope(c *gin.Context) {
	ctx := c.Request.Context()

	var req scopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	known := make(map[string]struct{}, len(h.calendars))
	for _, cal := range h.calendars {
		known[cal.ID] = struct{}{}
	}
	for _, id := range req.CalendarIDs {
		if _, ok := known[id]; !ok {
			respondError(c, http.StatusBadRequest, "unknown calendar id: "+id)
			return
		}
	}

	scope := domain.CalendarScope{
		All:         req.All,
		CalendarIDs: req.CalendarIDs,
	}
	if err := h.settings.SaveScope(ctx, scope); err != nil {
		slog.ErrorContext(ctx, "failed to save scope",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to save scope")
		return
	}

	slog.InfoContext(ctx, "calendar scope updated",
		slog.Bool("all", scope.All),
		slog.Int("selected", len(scope.CalendarIDs)),
	)

	c.JSON(http.StatusOK, req)
}

// HandleSetWeekdays updates the weekday filter. An enabled filter must name
// at least one day; disabling the filter ignores the day list entirely.
func (h *SettingsHandler) HandleSetWeekdays(c *gin.Context) {
	ctx := c.Request.Context()

	var req weekdaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	mask := domain.WeekdayMask(0)
	for _, name := range req.Days {
		day, ok := parseWeekday(name)
		if !ok {
			respondError(c, http.StatusBadRequest, "unknown weekday: "+name)
			return
		}
		mask = mask.With(day)
	}

	if req.Enabled && mask == 0 {
		respondError(c, http.StatusBadRequest, "an enabled weekday filter needs at least one day")
		return
	}
	if !req.Enabled && mask == 0 {
		mask = domain.AllWeekdays
	}

	setting := domain.WeekdaySetting{
		Enabled: req.Enabled,
		Mask:    mask,
	}
	if err := h.settings.SaveWeekdaySetting(ctx, setting); err != nil {
		slog.ErrorContext(ctx, "failed to save weekday setting",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to save weekday setting")
		return
	}

	slog.InfoContext(ctx, "weekday filter updated",
		slog.Bool("enabled", setting.Enabled),
		slog.Int("days", setting.Mask.Count()),
	)

	c.JSON(http.StatusOK, weekdaysResponse{
		Enabled: setting.Enabled,
		Days:    dayNames(setting.Mask),
	})
}

func parseWeekday(name string) (time.Weekday, bool) {
	switch strings.ToLower(name) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	default:
		return time.Sunday, false
	}
}

func dayNames(mask domain.WeekdayMask) []string {
	names := make([]string, 0, mask.Count())
	for _, day := range mask.Days() {
		names = append(names, strings.ToLower(day.String()))
	}
	return names
}
