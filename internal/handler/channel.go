package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/TRrajputDEV/Pixels-sub000/internal/middleware"
	"github.com/TRrajputDEV/Pixels-sub000/internal/service"
)

type ChannelHandler struct {
	stats *service.ChannelStatsService
	now   func() time.Time
}

func NewChannelHandler(stats *service.ChannelStatsService) *ChannelHandler {
	return &ChannelHandler{stats: stats, now: time.Now}
}

// Stats handles GET /api/channels/:ownerId/stats
func (h *ChannelHandler) Stats(c fiber.Ctx) error {
	ownerID, errMsg := middleware.ValidateOwnerID(c.Params("ownerId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	stats, err := h.stats.ComputeStats(c.Context(), ownerID, h.now())
	if err != nil {
		return serviceError(c, err, "compute channel stats")
	}
	return c.JSON(stats)
}
