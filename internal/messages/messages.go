// Package messages holds the localized texts for validation findings.
// The validator never hardcodes user-facing strings; it asks a Formatter,
// and the presentation boundary picks the locale.
package messages

import (
	"golang.org/x/text/language"

	"github.com/rezonia/xrechnung-processor/internal/model"
)

// Message is the localized text pair for one finding code
type Message struct {
	Text       string
	Suggestion string
}

// Formatter resolves a finding code to its localized message
type Formatter func(code model.ErrorCode, locale string) Message

// DefaultLocale is used when negotiation fails; the original viewer is a
// German-language application
const DefaultLocale = "de"

var catalog = map[string]map[model.ErrorCode]Message{
	"de": {
		model.CodeParseError: {
			Text:       "XML-Parsing fehlgeschlagen",
			Suggestion: "Bitte überprüfen Sie, ob die Datei wohlgeformtes XML enthält",
		},
		model.CodeInvalidRoot: {
			Text:       "Die Datei entspricht nicht dem XRechnung-Format",
			Suggestion: "Bitte stellen Sie sicher, dass die Datei eine gültige XRechnung ist",
		},
		model.CodeMissingRequired: {
			Text:       "Pflichtfeld fehlt",
			Suggestion: "Bitte füllen Sie alle Pflichtfelder aus",
		},
		model.CodeInvalidFormat: {
			Text:       "Ungültiges Format",
			Suggestion: "Bitte überprüfen Sie den eingegebenen Wert",
		},
		model.CodeValidationError: {
			Text:       "Validierungsfehler",
			Suggestion: "Bitte überprüfen Sie das Dokument und versuchen Sie es erneut",
		},
	},
	"en": {
		model.CodeParseError: {
			Text:       "XML parsing failed",
			Suggestion: "Please check that the file contains well-formed XML",
		},
		model.CodeInvalidRoot: {
			Text:       "The file does not conform to the XRechnung format",
			Suggestion: "Please make sure the file is a valid XRechnung document",
		},
		model.CodeMissingRequired: {
			Text:       "Required field is missing",
			Suggestion: "Please fill in all required fields",
		},
		model.CodeInvalidFormat: {
			Text:       "Invalid format",
			Suggestion: "Please check the entered value",
		},
		model.CodeValidationError: {
			Text:       "Error during validation",
			Suggestion: "Please check the document and try again",
		},
	},
}

var supported = []language.Tag{
	language.German, // first entry is the fallback
	language.English,
}

var matcher = language.NewMatcher(supported)

// Lookup resolves a finding code for a locale, falling back to German for
// unknown locales and to the bare code for unknown codes
func Lookup(code model.ErrorCode, locale string) Message {
	msgs, ok := catalog[locale]
	if !ok {
		msgs = catalog[DefaultLocale]
	}
	if m, ok := msgs[code]; ok {
		return m
	}
	return Message{Text: string(code)}
}

// Default returns the catalog-backed formatter
func Default() Formatter {
	return Lookup
}

// Negotiate picks the best supported locale for an Accept-Language header
func Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, _ := matcher.Match(tags...)
	base, _ := supported[idx].Base()
	return base.String()
}

// Localize rewrites finding messages and suggestions for the given locale.
// The input findings are not modified.
func Localize(findings []model.Finding, locale string) []model.Finding {
	out := make([]model.Finding, len(findings))
	for i, f := range findings {
		m := Lookup(f.Code, locale)
		f.Message = m.Text
		if f.Suggestion != "" {
			f.Suggestion = m.Suggestion
		}
		out[i] = f
	}
	return out
}

// LocalizeResult returns a copy of the validation result with all finding
// texts rewritten for the given locale
func LocalizeResult(r *model.ValidationResult, locale string) *model.ValidationResult {
	if r == nil {
		return nil
	}
	return &model.ValidationResult{
		Errors:   Localize(r.Errors, locale),
		Warnings: Localize(r.Warnings, locale),
	}
}
