package validation

import (
	. "offerdesk/internal/models"
)

const MissingFieldsMessage = "Please fill in all required fields before generating the offer letter"

// MissingOfferLetterFields returns the names of every blank field in
// canonical order. An empty result means the letter can be composed.
func MissingOfferLetterFields(fields OfferLetterFields) []string {
	var missing []string
	for _, name := range OfferLetterFieldNames {
		value, _ := fields.Get(name)
		if IsBlank(value) {
			missing = append(missing, name)
		}
	}
	return missing
}
