package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatUSDate      DateFormat = "01/02/2006"
	FormatUSNumeric   DateFormat = "1/2/2006"
	FormatDashDate    DateFormat = "02-01-2006"
	FormatDotDate     DateFormat = "02.01.2006"
	FormatRFC3339     DateFormat = "2006-01-02T15:04:05Z07:00"
	FormatMonthDay    DateFormat = "January 2, 2006"
	FormatShortMonth  DateFormat = "Jan 2, 2006"
)

// LongDate renders t the way an en-US locale spells out a date, e.g.
// "October 16, 2026".
func LongDate(t time.Time) string {
	return t.Format(string(FormatMonthDay))
}

// NumericDate renders t as an en-US numeric date without padding, e.g.
// "10/16/2026".
func NumericDate(t time.Time) string {
	return t.Format(string(FormatUSNumeric))
}

func ISODate(t time.Time) string {
	return t.Format(string(FormatISO8601Date))
}

type DateValidator struct {
	supportedFormats []DateFormat
	standardFormat   DateFormat
}

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	StandardFormat string
	OriginalValue  string
}

// NewDateValidator normalises loosely typed dates to the ISO form a browser
// date input submits.
func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601Date,
			FormatRFC3339,
			FormatUSDate,
			FormatUSNumeric,
			FormatDashDate,
			FormatDotDate,
			FormatMonthDay,
			FormatShortMonth,
		},
		standardFormat: FormatISO8601Date,
	}
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{OriginalValue: input}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	for _, format := range dv.supportedFormats {
		parsedTime, err := time.Parse(string(format), input)
		if err != nil || !dv.isValidForFormat(input, format) {
			continue
		}
		result.IsValid = true
		result.DetectedFormat = format
		result.ParsedTime = parsedTime
		result.StandardFormat = parsedTime.Format(string(dv.standardFormat))
		return result
	}

	return result
}

var slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

func (dv *DateValidator) isValidForFormat(input string, format DateFormat) bool {
	switch format {
	case FormatUSDate, FormatUSNumeric:
		matches := slashDatePattern.FindStringSubmatch(input)
		if len(matches) < 4 {
			return false
		}
		month, _ := strconv.Atoi(matches[1])
		day, _ := strconv.Atoi(matches[2])
		return month >= 1 && month <= 12 && day >= 1 && day <= 31
	default:
		return true
	}
}
