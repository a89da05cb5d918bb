package contactController

import (
	"context"
	"errors"
	"time"

	"offerdesk/internal/contact"
	"offerdesk/internal/forms"
	"offerdesk/internal/logger"
	. "offerdesk/internal/models"
	"offerdesk/internal/services"
	"offerdesk/internal/validation"
)

var (
	ErrInvalidFields    = errors.New("contact form has invalid fields")
	ErrSubmissionFailed = errors.New("contact submission failed")
)

type Notifier interface {
	Notify(formID string, n Notification) int
}

type ContactController struct {
	client   contact.Submitter
	guard    services.InFlightGuard
	forms    *forms.Store
	notifier Notifier
	log      logger.Logger
}

// SubmitResult carries what the view needs to re-render: the field values
// after the attempt (cleared only on success), inline errors and the toast.
type SubmitResult struct {
	Fields       ContactFields
	Errors       FieldErrors
	Result       *SubmissionResult
	Notification *Notification
}

func New(
	client contact.Submitter,
	guard services.InFlightGuard,
	forms *forms.Store,
	notifier Notifier,
) *ContactController {
	return &ContactController{
		client:   client,
		guard:    guard,
		forms:    forms,
		notifier: notifier,
		log:      logger.New("ContactController"),
	}
}

// Submit validates and relays one contact submission. Errors:
// ErrInvalidFields (inline messages, nothing sent), services.ErrBusy (a
// submission for this form is in flight) and ErrSubmissionFailed (remote or
// network failure, fields kept).
func (cc *ContactController) Submit(
	ctx context.Context,
	formID string,
	fields ContactFields,
) (SubmitResult, error) {
	log := cc.log.Function("Submit")

	if formID != "" {
		if err := cc.forms.Merge(formID, fields.Values()); err != nil && !errors.Is(err, forms.ErrNotFound) {
			log.Warn("failed to record form state", "formID", formID, "error", err)
		}
	}

	if errs := validation.ValidateContact(fields); errs.HasErrors() {
		return SubmitResult{Fields: fields, Errors: errs}, ErrInvalidFields
	}

	var (
		result    SubmissionResult
		submitErr error
	)
	err := services.Run(ctx, cc.guard, services.OperationSubmit, formID, func() error {
		result, submitErr = cc.client.Submit(ctx, fields)
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrBusy) {
			log.Info("contact submission already in flight", "formID", formID)
		}
		return SubmitResult{Fields: fields}, err
	}

	if submitErr != nil || !result.Success {
		if result.Message == "" {
			result.Message = contact.DefaultFailureMessage
		}
		log.Warn("contact submission failed", "formID", formID, "message", result.Message, "error", submitErr)
		n := cc.notify(formID, NotificationError, result.Message)
		return SubmitResult{Fields: fields, Result: &result, Notification: &n},
			errors.Join(ErrSubmissionFailed, submitErr)
	}

	if formID != "" {
		if err := cc.forms.Reset(formID); err != nil && !errors.Is(err, forms.ErrNotFound) {
			log.Warn("failed to reset contact form", "formID", formID, "error", err)
		}
	}

	n := cc.notify(formID, NotificationSuccess, result.Message)
	return SubmitResult{Fields: ContactFields{}, Result: &result, Notification: &n}, nil
}

func (cc *ContactController) notify(formID string, kind NotificationKind, message string) Notification {
	n := Notification{Kind: kind, Message: message, FormID: formID, Timestamp: time.Now()}
	if formID != "" && cc.notifier != nil {
		cc.notifier.Notify(formID, n)
	}
	return n
}
