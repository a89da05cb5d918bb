package handlers

import (
	"errors"

	"offerdesk/internal/app"
	contactController "offerdesk/internal/controllers/contact"
	"offerdesk/internal/handlers/middleware"
	"offerdesk/internal/logger"
	. "offerdesk/internal/models"
	"offerdesk/internal/services"
	"offerdesk/internal/views"

	"github.com/gofiber/fiber/v2"
)

const (
	contactPath  = "/submit-form"
	contactTitle = "Submit Form"
)

type ContactHandler struct {
	Handler
	api        fiber.Router
	forms      formReader
	controller *contactController.ContactController
}

type ContactRequest struct {
	ContactFields
	FormID string `json:"formId"`
}

func NewContactHandler(app *app.App, router, api fiber.Router) *ContactHandler {
	log := logger.New("handlers").File("contact_handler")
	return &ContactHandler{
		controller: app.ContactController,
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

func (h *ContactHandler) Register() {
	page := h.router.Group(contactPath, h.middleware.RequireForm(FormContact))
	page.Get("/", h.show)
	page.Post("/", h.submit)

	h.api.Post("/contact", h.submitJSON)
}

func (h *ContactHandler) show(c *fiber.Ctx) error {
	formID := middleware.FormID(c)
	fields := ContactFieldsFromValues(formValues(h.forms, formID))
	return h.renderForm(c, fiber.StatusOK, formID, contactController.SubmitResult{Fields: fields})
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	log := h.log.Function("submit")
	formID := middleware.FormID(c)

	var fields ContactFields
	if err := c.BodyParser(&fields); err != nil {
		log.Er("failed to parse contact form", err, "formID", formID)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse contact form"})
	}

	result, err := h.controller.Submit(c.UserContext(), formID, fields)
	return h.renderForm(c, contactStatus(err), formID, result)
}

func (h *ContactHandler) submitJSON(c *fiber.Ctx) error {
	log := h.log.Function("submitJSON")

	var request ContactRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse contact request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse contact request"})
	}

	result, err := h.controller.Submit(c.UserContext(), request.FormID, request.ContactFields)
	body := fiber.Map{"success": err == nil}
	switch {
	case errors.Is(err, contactController.ErrInvalidFields):
		body["message"] = "Please correct the highlighted fields"
		body["errors"] = result.Errors
	case errors.Is(err, services.ErrBusy):
		body["message"] = "submission already in progress"
	case result.Result != nil:
		body["message"] = result.Result.Message
	}
	return c.Status(contactStatus(err)).JSON(body)
}

func contactStatus(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, contactController.ErrInvalidFields):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrBusy):
		return fiber.StatusConflict
	case errors.Is(err, contactController.ErrSubmissionFailed):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func (h *ContactHandler) renderForm(c *fiber.Ctx, status int, formID string, result contactController.SubmitResult) error {
	return h.render(c, status, views.Contact, views.Data{
		Title:        contactTitle,
		FormID:       formID,
		Notification: result.Notification,
		Inputs:       views.ContactInputs(result.Fields, result.Errors),
	})
}
