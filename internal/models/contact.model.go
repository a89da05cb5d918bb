package models

import "strings"

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldMessage = "message"

	ContactSource = "contact-form"
)

var ContactFieldNames = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldMessage,
}

type ContactFields struct {
	Name    string `json:"name"    form:"name"`
	Email   string `json:"email"   form:"email"`
	Phone   string `json:"phone"   form:"phone"`
	Message string `json:"message" form:"message"`
}

func (f ContactFields) Trimmed() ContactFields {
	return ContactFields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Message: strings.TrimSpace(f.Message),
	}
}

func (f ContactFields) Get(name string) (string, bool) {
	switch name {
	case FieldName:
		return f.Name, true
	case FieldEmail:
		return f.Email, true
	case FieldPhone:
		return f.Phone, true
	case FieldMessage:
		return f.Message, true
	}
	return "", false
}

func (f ContactFields) Values() map[string]string {
	values := make(map[string]string, len(ContactFieldNames))
	for _, name := range ContactFieldNames {
		values[name], _ = f.Get(name)
	}
	return values
}

func ContactFieldsFromValues(values map[string]string) ContactFields {
	return ContactFields{
		Name:    values[FieldName],
		Email:   values[FieldEmail],
		Phone:   values[FieldPhone],
		Message: values[FieldMessage],
	}
}

// FieldErrors maps a field name to its inline validation message.
type FieldErrors map[string]string

func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// SubmissionResult is derived from the remote endpoint's acknowledgment.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
