package letterController

import (
	"context"
	"errors"
	"time"

	"offerdesk/internal/composer"
	"offerdesk/internal/forms"
	"offerdesk/internal/logger"
	. "offerdesk/internal/models"
	"offerdesk/internal/services"
	"offerdesk/internal/validation"
)

const (
	SuccessMessage = "Offer letter PDF generated and downloaded successfully!"
	FailureMessage = "Failed to generate PDF. Please try again."
)

var ErrMissingFields = errors.New("required offer letter fields are missing")

// Notifier interface for pushing toasts to the browser; defined here to
// avoid an import cycle with the websocket manager.
type Notifier interface {
	Notify(formID string, n Notification) int
}

type DocumentComposer interface {
	Compose(ctx context.Context, fields OfferLetterFields) (composer.Document, error)
}

type LetterController struct {
	composer DocumentComposer
	guard    services.InFlightGuard
	forms    *forms.Store
	notifier Notifier
	log      logger.Logger
}

type GenerateResult struct {
	Document     *composer.Document
	Missing      []string
	Notification *Notification
}

func New(
	composer DocumentComposer,
	guard services.InFlightGuard,
	forms *forms.Store,
	notifier Notifier,
) *LetterController {
	return &LetterController{
		composer: composer,
		guard:    guard,
		forms:    forms,
		notifier: notifier,
		log:      logger.New("LetterController"),
	}
}

// Generate validates, composes and reports. It returns ErrMissingFields when
// validation blocks composition, services.ErrBusy when a composition for the
// same form is still running, and composer.ErrComposition when drawing
// failed. Every outcome except busy carries exactly one notification.
func (lc *LetterController) Generate(
	ctx context.Context,
	formID string,
	fields OfferLetterFields,
) (GenerateResult, error) {
	log := lc.log.Function("Generate")

	if formID != "" {
		if err := lc.forms.Merge(formID, fields.Values()); err != nil && !errors.Is(err, forms.ErrNotFound) {
			log.Warn("failed to record form state", "formID", formID, "error", err)
		}
	}

	if missing := validation.MissingOfferLetterFields(fields); len(missing) > 0 {
		log.Info("offer letter blocked by missing fields", "formID", formID, "missing", missing)
		n := lc.notify(formID, NotificationError, validation.MissingFieldsMessage)
		return GenerateResult{Missing: missing, Notification: &n}, ErrMissingFields
	}

	var doc composer.Document
	err := services.Run(ctx, lc.guard, services.OperationGenerate, formID, func() error {
		var composeErr error
		doc, composeErr = lc.composer.Compose(ctx, fields)
		return composeErr
	})

	switch {
	case errors.Is(err, services.ErrBusy):
		log.Info("offer letter already generating", "formID", formID)
		return GenerateResult{}, err
	case err != nil:
		log.Er("PDF generation failed", err, "formID", formID)
		n := lc.notify(formID, NotificationError, FailureMessage)
		return GenerateResult{Notification: &n}, err
	}

	n := lc.notify(formID, NotificationSuccess, SuccessMessage)
	return GenerateResult{Document: &doc, Notification: &n}, nil
}

func (lc *LetterController) Reset(formID string) error {
	if err := lc.forms.Reset(formID); err != nil {
		return lc.log.Function("Reset").Err("failed to reset offer letter form", err, "formID", formID)
	}
	return nil
}

func (lc *LetterController) notify(formID string, kind NotificationKind, message string) Notification {
	n := Notification{Kind: kind, Message: message, FormID: formID, Timestamp: time.Now()}
	if formID != "" && lc.notifier != nil {
		lc.notifier.Notify(formID, n)
	}
	return n
}
