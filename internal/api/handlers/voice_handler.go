package handlers

import (
	"dojoflow/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type VoiceHandler struct {
	callConfig *service.CallConfigService
	logger     *zap.Logger
}

func NewVoiceHandler(callConfig *service.CallConfigService, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		callConfig: callConfig,
		logger:     logger,
	}
}

// GetCallConfig hands the voice agent its per-caller persona and voice
// settings.
func (h *VoiceHandler) GetCallConfig(c *fiber.Ctx) error {
	from := c.Query("from")
	if from == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "from query parameter is required",
		})
	}

	purpose := service.CallPurpose(c.Query("purpose", string(service.PurposeGeneral)))

	cfg, err := h.callConfig.GenerateCallConfig(c.Context(), from, purpose)
	if err != nil {
		h.logger.Error("call config generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate call configuration",
		})
	}

	return c.JSON(cfg)
}
