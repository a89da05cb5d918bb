package views

import (
	. "offerdesk/internal/models"
)

type inputSpec struct {
	label       string
	kind        string
	placeholder string
}

var offerLetterInputs = map[string]inputSpec{
	FieldEmployeeName:  {"Employee Name", "text", "Enter employee name"},
	FieldPositionTitle: {"Position Title", "text", "e.g., Software Engineer"},
	FieldDepartment:    {"Department", "text", "e.g., Engineering"},
	FieldCompanyName:   {"Company Name", "text", "Enter company name"},
	FieldJoiningDate:   {"Joining Date", "date", ""},
	FieldSalary:        {"Salary", "text", "e.g., $50,000 per annum"},
}

var contactInputs = map[string]inputSpec{
	FieldName:    {"Name", "text", "Your full name"},
	FieldEmail:   {"Email", "email", "you@example.com"},
	FieldPhone:   {"Phone", "tel", "+91 98765 43210"},
	FieldMessage: {"Message", "textarea", "How can we help?"},
}

// OfferLetterInputs lays out the letter form in canonical field order.
func OfferLetterInputs(fields OfferLetterFields) []Input {
	inputs := make([]Input, 0, len(OfferLetterFieldNames))
	for _, name := range OfferLetterFieldNames {
		value, _ := fields.Get(name)
		inputs = append(inputs, newInput(name, offerLetterInputs[name], value, ""))
	}
	return inputs
}

// ContactInputs lays out the contact form with any inline field errors.
func ContactInputs(fields ContactFields, errs FieldErrors) []Input {
	inputs := make([]Input, 0, len(ContactFieldNames))
	for _, name := range ContactFieldNames {
		value, _ := fields.Get(name)
		inputs = append(inputs, newInput(name, contactInputs[name], value, errs[name]))
	}
	return inputs
}

func newInput(name string, spec inputSpec, value, err string) Input {
	return Input{
		Name:        name,
		Label:       spec.label,
		Type:        spec.kind,
		Placeholder: spec.placeholder,
		Value:       value,
		Error:       err,
	}
}
