package handlers

import (
	"errors"

	"offerdesk/internal/app"
	letterController "offerdesk/internal/controllers/letter"
	"offerdesk/internal/handlers/middleware"
	"offerdesk/internal/logger"
	. "offerdesk/internal/models"
	"offerdesk/internal/services"
	"offerdesk/internal/views"

	"github.com/gofiber/fiber/v2"
)

const (
	offerLetterPath  = "/download-offer-letter"
	offerLetterTitle = "Generate Offer Letter"
)

type LetterHandler struct {
	Handler
	api        fiber.Router
	forms      formReader
	controller *letterController.LetterController
}

// OfferLetterRequest is the JSON body of the API variant. FormID is
// optional; without it nothing is pushed over the socket.
type OfferLetterRequest struct {
	OfferLetterFields
	FormID string `json:"formId"`
}

func NewLetterHandler(app *app.App, router, api fiber.Router) *LetterHandler {
	log := logger.New("handlers").File("letter_handler")
	return &LetterHandler{
		controller: app.LetterController,
		forms:      app.Forms,
		api:        api,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
			views:      app.Views,
		},
	}
}

func (h *LetterHandler) Register() {
	page := h.router.Group(offerLetterPath, h.middleware.RequireForm(FormOfferLetter))
	page.Get("/", h.show)
	page.Post("/", h.generate)
	page.Post("/reset", h.reset)

	h.api.Post("/offer-letters", h.generateJSON)
}

func (h *LetterHandler) show(c *fiber.Ctx) error {
	formID := middleware.FormID(c)
	fields := OfferLetterFieldsFromValues(formValues(h.forms, formID))
	return h.renderForm(c, fiber.StatusOK, formID, fields, nil)
}

func (h *LetterHandler) generate(c *fiber.Ctx) error {
	log := h.log.Function("generate")
	formID := middleware.FormID(c)

	var fields OfferLetterFields
	if err := c.BodyParser(&fields); err != nil {
		log.Er("failed to parse offer letter form", err, "formID", formID)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse offer letter form"})
	}

	result, err := h.controller.Generate(c.UserContext(), formID, fields)
	switch {
	case errors.Is(err, letterController.ErrMissingFields):
		return h.renderForm(c, fiber.StatusUnprocessableEntity, formID, fields, result.Notification)
	case errors.Is(err, services.ErrBusy):
		return h.renderForm(c, fiber.StatusConflict, formID, fields, nil)
	case err != nil:
		return h.renderForm(c, fiber.StatusInternalServerError, formID, fields, result.Notification)
	}

	return sendDocument(c, result.Document.Filename, result.Document.Content, result.Notification)
}

func (h *LetterHandler) reset(c *fiber.Ctx) error {
	formID := middleware.FormID(c)
	if err := h.controller.Reset(formID); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to reset form"})
	}
	return c.Redirect(middleware.FormURL(offerLetterPath, formID), fiber.StatusSeeOther)
}

func (h *LetterHandler) generateJSON(c *fiber.Ctx) error {
	log := h.log.Function("generateJSON")

	var request OfferLetterRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse offer letter request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse offer letter request"})
	}

	result, err := h.controller.Generate(c.UserContext(), request.FormID, request.OfferLetterFields)
	switch {
	case errors.Is(err, letterController.ErrMissingFields):
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": result.Notification.Message, "missing": result.Missing})
	case errors.Is(err, services.ErrBusy):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"message": "offer letter is already being generated"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": result.Notification.Message})
	}

	return sendDocument(c, result.Document.Filename, result.Document.Content, result.Notification)
}

func (h *LetterHandler) renderForm(
	c *fiber.Ctx,
	status int,
	formID string,
	fields OfferLetterFields,
	n *Notification,
) error {
	return h.render(c, status, views.OfferLetter, views.Data{
		Title:        offerLetterTitle,
		FormID:       formID,
		Notification: n,
		Inputs:       views.OfferLetterInputs(fields),
	})
}
