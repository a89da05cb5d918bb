package models

import "time"

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient toast shown to the owner of a form instance.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	FormID    string           `json:"formId,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

type FormKind string

const (
	FormOfferLetter FormKind = "offer-letter"
	FormContact     FormKind = "contact"
)

// FieldNames returns the fields a form of this kind accepts.
func (k FormKind) FieldNames() []string {
	switch k {
	case FormOfferLetter:
		return OfferLetterFieldNames
	case FormContact:
		return ContactFieldNames
	}
	return nil
}
