package handlers

import (
	"offerdesk/internal/app"
	"offerdesk/internal/logger"
	"offerdesk/internal/views"

	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	Handler
}

func NewPageHandler(app *app.App, router fiber.Router) *PageHandler {
	log := logger.New("handlers").File("page_handler")
	return &PageHandler{
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
			views:      app.Views,
		},
	}
}

// Register adds the landing page and the catch-all 404. It must run after
// every other route.
func (h *PageHandler) Register() {
	h.router.Get("/", h.home)
	h.router.Use(h.notFound)
}

func (h *PageHandler) home(c *fiber.Ctx) error {
	intro, err := views.Intro()
	if err != nil {
		h.log.Function("home").Er("failed to render landing copy", err)
	}
	return h.render(c, fiber.StatusOK, views.Home, views.Data{
		Title:  "Home",
		Intro:  intro,
		Routes: views.Routes,
	})
}

func (h *PageHandler) notFound(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusNotFound, views.NotFound, views.Data{
		Title: "Not Found",
		Path:  c.Path(),
	})
}
