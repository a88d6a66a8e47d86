package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hushd/hushd/internal/service/scheduler"
)

type StatusHandler struct {
	scheduler *scheduler.Scheduler
}

func NewStatusHandler(s *scheduler.Scheduler) *StatusHandler {
	return &StatusHandler{scheduler: s}
}

func (h *StatusHandler) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Status())
}
