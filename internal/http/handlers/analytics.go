package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mealdash/mealdash-backend/internal/http/response"
	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/services"
)

type AnalyticsHandler struct {
	log              *logger.Logger
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(log *logger.Logger, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:              log.With("handler", "AnalyticsHandler"),
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	snap, err := h.analyticsService.Snapshot(c.Request.Context(), time.Now())
	if err != nil {
		h.log.Error("GetAnalytics failed", "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, snap)
}
