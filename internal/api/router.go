package api

import (
	"dojoflow/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func SetupRouter(
	webhookHandler *handlers.WebhookHandler,
	voiceHandler *handlers.VoiceHandler,
	toolHandler *handlers.ToolHandler,
	flowHandler *handlers.FlowHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Telephony provider callbacks
	webhooks := app.Group("/webhooks/telephony")
	webhooks.Post("/sms", webhookHandler.IncomingSMS)
	webhooks.Post("/whatsapp", webhookHandler.IncomingWhatsApp)
	webhooks.Post("/voice", webhookHandler.IncomingVoice)
	webhooks.Post("/status", webhookHandler.StatusCallback)

	// API routes
	api := app.Group("/api")
	api.Get("/call-config", voiceHandler.GetCallConfig)
	api.Post("/tools", toolHandler.Invoke)
	api.Get("/tools/list", toolHandler.List)

	flows := api.Group("/flows")
	flows.Post("/retention-sweep", flowHandler.RetentionSweep)
	flows.Post("/collection-sweep", flowHandler.CollectionSweep)
	flows.Post("/appointment-reminders", flowHandler.AppointmentReminders)

	api.Post("/rag/index", flowHandler.IndexDocuments)

	return app
}
