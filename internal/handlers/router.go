package handlers

import (
	"bytes"
	"encoding/json"

	"offerdesk/internal/app"
	"offerdesk/internal/handlers/middleware"
	"offerdesk/internal/logger"
	. "offerdesk/internal/models"
	"offerdesk/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	TemplateImageRoute = "/offerletter-acme.png"
	NotificationHeader = "X-Notification"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
	views      *views.Registry
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.RequestLogger())
	setupWebSocketRoute(router, app)

	router.Get(TemplateImageRoute, func(c *fiber.Ctx) error {
		return c.SendFile(app.Config.TemplateImagePath)
	})

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewFormsHandler(app, api).Register()
	NewLetterHandler(app, router, api).Register()
	NewContactHandler(app, router, api).Register()
	NewPageHandler(app, router).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws/:formID", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

// render writes a full page. A failure to render is logged and answered
// with a bare 500.
func (h *Handler) render(c *fiber.Ctx, status int, name views.Name, data views.Data) error {
	var buf bytes.Buffer
	if _, err := h.views.Render(&buf, name, data); err != nil {
		h.log.Function("render").Er("failed to render view", err, "view", name)
		return c.Status(fiber.StatusInternalServerError).SendString("internal server error")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// sendDocument answers with a PDF attachment and carries the toast in a
// header since the page itself is not replaced.
func sendDocument(c *fiber.Ctx, filename string, content []byte, n *Notification) error {
	if n != nil {
		if encoded, err := json.Marshal(n); err == nil {
			c.Set(NotificationHeader, string(encoded))
		}
	}
	c.Attachment(filename)
	c.Type("pdf")
	return c.Status(fiber.StatusOK).Send(content)
}
