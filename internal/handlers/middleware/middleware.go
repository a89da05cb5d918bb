package middleware

import (
	"net/url"
	"time"

	"offerdesk/internal/forms"
	"offerdesk/internal/logger"
	. "offerdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	FormQuery     = "form"
	FormIDLocal   = "formID"
	requestLogKey = "request"
)

type Middleware struct {
	forms *forms.Store
	log   logger.Logger
}

func New(store *forms.Store) Middleware {
	return Middleware{
		forms: store,
		log:   logger.New("middleware"),
	}
}

// RequestLogger logs one line per request once the handler chain returns.
func (m Middleware) RequestLogger() fiber.Handler {
	log := m.log.Function("RequestLogger")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug(requestLogKey,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}

// RequireForm binds the request to a form instance of kind. A page visit
// without a live form id gets a fresh instance and is redirected to carry
// it; other methods continue with the fresh id.
func (m Middleware) RequireForm(kind FormKind) fiber.Handler {
	log := m.log.Function("RequireForm")
	return func(c *fiber.Ctx) error {
		requested := c.Query(FormQuery)
		formID, created := m.forms.Ensure(requested, kind)
		if created {
			log.Debug("allocated form", "kind", kind, "formID", formID, "requested", requested)
			if c.Method() == fiber.MethodGet {
				return c.Redirect(FormURL(c.Path(), formID), fiber.StatusSeeOther)
			}
		}
		c.Locals(FormIDLocal, formID)
		return c.Next()
	}
}

// FormID returns the id bound by RequireForm.
func FormID(c *fiber.Ctx) string {
	id, _ := c.Locals(FormIDLocal).(string)
	return id
}

func FormURL(path, formID string) string {
	return path + "?" + url.Values{FormQuery: {formID}}.Encode()
}
