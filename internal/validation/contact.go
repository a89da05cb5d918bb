package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	. "offerdesk/internal/models"
)

const (
	minNameLength    = 2
	minMessageLength = 10
)

var (
	// WHATWG "valid e-mail address" production.
	emailPattern = regexp.MustCompile(
		"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
			"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
	)
	phonePattern = regexp.MustCompile(`^\+?[0-9()\-\s]{7,15}$`)
)

type rule struct {
	required string
	invalid  string
	valid    func(string) bool
}

var contactRules = map[string]rule{
	FieldName: {
		required: "Name is required",
		invalid:  "Enter your full name",
		valid:    func(v string) bool { return utf8.RuneCountInString(v) >= minNameLength },
	},
	FieldEmail: {
		required: "Email is required",
		invalid:  "Enter a valid email",
		valid:    emailPattern.MatchString,
	},
	FieldPhone: {
		required: "Phone is required",
		invalid:  "Enter a valid phone number",
		valid:    phonePattern.MatchString,
	},
	FieldMessage: {
		required: "Message is required",
		invalid:  "Message must be at least 10 characters",
		valid:    func(v string) bool { return utf8.RuneCountInString(v) >= minMessageLength },
	},
}

// ValidateContactField checks one contact field. The value is trimmed before
// any rule runs. An empty string means the value is valid; unknown field names
// are never valid.
func ValidateContactField(name, value string) string {
	r, ok := contactRules[name]
	if !ok {
		return "Unknown field"
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return r.required
	}
	if !r.valid(value) {
		return r.invalid
	}
	return ""
}

func ValidateContact(fields ContactFields) FieldErrors {
	errs := FieldErrors{}
	for _, name := range ContactFieldNames {
		value, _ := fields.Get(name)
		if msg := ValidateContactField(name, value); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}
