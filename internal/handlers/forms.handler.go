package handlers

import (
	"errors"

	"offerdesk/internal/app"
	"offerdesk/internal/forms"
	"offerdesk/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type formReader interface {
	Get(id string) (forms.Instance, bool)
}

func formValues(store formReader, formID string) map[string]string {
	inst, ok := store.Get(formID)
	if !ok {
		return nil
	}
	return inst.Values
}

type FormsHandler struct {
	Handler
	forms *forms.Store
}

type FieldUpdateRequest struct {
	Value string `json:"value"`
}

func NewFormsHandler(app *app.App, router fiber.Router) *FormsHandler {
	log := logger.New("handlers").File("forms_handler")
	return &FormsHandler{
		forms: app.Forms,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
			views:      app.Views,
		},
	}
}

func (h *FormsHandler) Register() {
	group := h.router.Group("/forms")
	group.Get("/:id", h.getForm)
	group.Put("/:id/fields/:name", h.setField)
}

func (h *FormsHandler) getForm(c *fiber.Ctx) error {
	inst, ok := h.forms.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "form not found"})
	}
	return c.JSON(fiber.Map{"message": "success", "kind": inst.Kind, "values": inst.Values})
}

func (h *FormsHandler) setField(c *fiber.Ctx) error {
	log := h.log.Function("setField")
	id, name := c.Params("id"), c.Params("name")

	var request FieldUpdateRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse field update", err, "formID", id, "field", name)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse field update"})
	}

	switch err := h.forms.Set(id, name, request.Value); {
	case errors.Is(err, forms.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "form not found"})
	case errors.Is(err, forms.ErrUnknownField):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown field"})
	case err != nil:
		log.Er("failed to update field", err, "formID", id, "field", name)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to update field"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
