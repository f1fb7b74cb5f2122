package handlers

import (
	"dojoflow/internal/dto"
	"dojoflow/internal/tools"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ToolHandler struct {
	registry *tools.Registry
	logger   *zap.Logger
}

func NewToolHandler(registry *tools.Registry, logger *zap.Logger) *ToolHandler {
	return &ToolHandler{
		registry: registry,
		logger:   logger,
	}
}

// Invoke dispatches one tool call by name. The name is checked before
// anything executes so an unknown tool is a clean 404.
func (h *ToolHandler) Invoke(c *fiber.Ctx) error {
	var req dto.ToolInvocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Tool == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "tool name is required",
		})
	}

	if _, ok := h.registry.Get(req.Tool); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown tool: " + req.Tool,
		})
	}

	result := h.registry.Execute(c.Context(), req.Tool, req.Parameters)
	return c.JSON(dto.ToolInvocationResponse{
		Tool:   req.Tool,
		Result: result,
	})
}

// List returns the tool catalog.
func (h *ToolHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tools": h.registry.List(),
	})
}
