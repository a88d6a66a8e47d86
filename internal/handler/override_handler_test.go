package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/hushd/hushd/internal/domain"
)

func overrideRouter(h *OverrideHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/override", h.HandleSetOverride)
	r.GET("/api/v1/override", h.HandleGetOverride)
	r.DELETE("/api/v1/override", h.HandleClearOverride)
	return r
}

func TestHandleSetOverrideSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := domain.NewMockSettingsRepository(ctrl)

	var saved *domain.OneTimeOverride
	settings.EXPECT().SaveOverride(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, o *domain.OneTimeOverride) error {
			saved = o
			return nil
		},
	)

	router := overrideRouter(NewOverrideHandler(settings))

	body := `{
		"kind": "skip_event",
		"calendar_id": "work",
		"event_id": "standup",
		"start": "2024-03-04T09:00:00Z",
		"end": "2024-03-04T09:30:00Z"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/override", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if saved == nil {
		t.Fatal("expected override to be saved")
	}
	if saved.Kind != domain.OverrideSkipEvent {
		t.Errorf("expected skip_event, got %s", saved.Kind)
	}
	if saved.EventID != "standup" {
		t.Errorf("expected event standup, got %s", saved.EventID)
	}
	if !saved.End.Equal(time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected end: %v", saved.End)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestHandleSetOverrideValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "unknown kind",
			body: `{"kind":"mute_forever","event_id":"e1","start":"2024-03-04T09:00:00Z","end":"2024-03-04T10:00:00Z"}`,
		},
		{
			name: "end before start",
			body: `{"kind":"skip_event","event_id":"e1","start":"2024-03-04T10:00:00Z","end":"2024-03-04T09:00:00Z"}`,
		},
		{
			name: "zero-length window",
			body: `{"kind":"skip_event","event_id":"e1","start":"2024-03-04T09:00:00Z","end":"2024-03-04T09:00:00Z"}`,
		},
		{
			name: "missing event id",
			body: `{"kind":"skip_event","start":"2024-03-04T09:00:00Z","end":"2024-03-04T10:00:00Z"}`,
		},
		{
			name: "not json",
			body: `hello`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			settings := domain.NewMockSettingsRepository(ctrl)
			router := overrideRouter(NewOverrideHandler(settings))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/override", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHandleGetOverrideNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := domain.NewMockSettingsRepository(ctrl)
	settings.EXPECT().GetOverride(gomock.Any()).Return(nil, domain.ErrOverrideNotFound)

	router := overrideRouter(NewOverrideHandler(settings))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/override", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHandleClearOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := domain.NewMockSettingsRepository(ctrl)
	settings.EXPECT().ClearOverride(gomock.Any()).Return(nil)

	router := overrideRouter(NewOverrideHandler(settings))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/override", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}
