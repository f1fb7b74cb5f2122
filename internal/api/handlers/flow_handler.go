package handlers

import (
	"dojoflow/internal/dto"
	"dojoflow/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FlowHandler exposes the batch campaigns and knowledge indexing.
type FlowHandler struct {
	campaigns *service.CampaignService
	rag       *service.RAGService
	logger    *zap.Logger
}

func NewFlowHandler(campaigns *service.CampaignService, rag *service.RAGService, logger *zap.Logger) *FlowHandler {
	return &FlowHandler{
		campaigns: campaigns,
		rag:       rag,
		logger:    logger,
	}
}

func (h *FlowHandler) RetentionSweep(c *fiber.Ctx) error {
	var req dto.RetentionSweepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.campaigns.RetentionSweep(c.Context(), &req)
	if err != nil {
		h.logger.Error("retention sweep failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Retention sweep failed",
		})
	}

	return c.JSON(result)
}

func (h *FlowHandler) CollectionSweep(c *fiber.Ctx) error {
	var req dto.CollectionSweepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.campaigns.CollectionSweep(c.Context(), &req)
	if err != nil {
		h.logger.Error("collection sweep failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Collection sweep failed",
		})
	}

	return c.JSON(result)
}

func (h *FlowHandler) AppointmentReminders(c *fiber.Ctx) error {
	var req dto.ReminderSweepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.campaigns.AppointmentReminders(c.Context(), &req)
	if err != nil {
		h.logger.Error("reminder sweep failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Reminder sweep failed",
		})
	}

	return c.JSON(result)
}

// IndexDocuments ingests a batch of knowledge documents.
func (h *FlowHandler) IndexDocuments(c *fiber.Ctx) error {
	var req struct {
		Documents []*dto.IndexDocumentRequest `json:"documents"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.Documents) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "documents is required",
		})
	}

	result := h.rag.IndexDocuments(c.Context(), req.Documents)

	return c.JSON(fiber.Map{
		"totalDocuments": len(req.Documents),
		"indexed":        result.Indexed,
		"failed":         result.Failed,
		"documentIds":    result.DocumentIDs,
		"failures":       result.Failures,
	})
}
