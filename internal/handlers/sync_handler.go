package handlers

import (
	"corpus-backend/internal/services"
	"corpus-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	service services.CorpusService
}

func NewSyncHandler(service services.CorpusService) *SyncHandler {
	return &SyncHandler{service: service}
}

// GetSyncStatus godoc
// @Summary Get sync status
// @Description Report which backend serves the corpus, how fresh it is and the last import
// @Tags sync
// @Produce json
// @Success 200 {object} utils.StandardResponse{data=models.SyncStatus} "Sync status"
// @Failure 503 {object} utils.StandardResponse "Corpus unavailable"
// @Router /sync/status [get]
func (h *SyncHandler) GetSyncStatus(c *fiber.Ctx) error {
	status, err := h.service.GetSyncStatus(c.UserContext())
	if err != nil {
		return utils.CorpusErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Sync status retrieved successfully", status)
}
