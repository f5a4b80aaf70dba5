package validator

import (
	"regexp"
	"strings"

	xmlparser "github.com/rezonia/xrechnung-processor/internal/parser/xml"
)

// Rule is one entry of the required-field table: where to look, what to
// call the location in findings, and an optional format check applied only
// when the field is present
type Rule struct {
	Field  string
	Label  string
	Format func(value string) bool
}

// Issue dates come in exactly two shapes: ISO calendar dates and the
// compact 8-digit form used by CII date/time strings. Nothing else passes.
var issueDatePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{8})$`)

// ValidIssueDate accepts YYYY-MM-DD and compact YYYYMMDD
func ValidIssueDate(value string) bool {
	return issueDatePattern.MatchString(value)
}

// ValidCurrencyCode accepts exactly three characters
func ValidCurrencyCode(value string) bool {
	return len(value) == 3
}

// DefaultRules returns the required-field table. Every entry runs on every
// document; findings accumulate instead of short-circuiting.
func DefaultRules() []Rule {
	return []Rule{
		{
			Field: xmlparser.FieldID,
			Label: "ID",
			Format: func(v string) bool {
				return strings.TrimSpace(v) != ""
			},
		},
		{
			Field:  xmlparser.FieldIssueDate,
			Label:  "IssueDate",
			Format: ValidIssueDate,
		},
		{
			Field:  xmlparser.FieldCurrencyCode,
			Label:  "CurrencyCode",
			Format: ValidCurrencyCode,
		},
	}
}
