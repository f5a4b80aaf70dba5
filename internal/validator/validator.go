// Package validator runs the rule-based checks against a classified
// document tree. It operates on the same parsed tree as the extractor but
// independently of it; neither depends on the other's outcome.
package validator

import (
	"github.com/beevik/etree"

	"github.com/rezonia/xrechnung-processor/internal/messages"
	"github.com/rezonia/xrechnung-processor/internal/model"
	xmlparser "github.com/rezonia/xrechnung-processor/internal/parser/xml"
)

// Validator evaluates the required-field table against a parsed tree
type Validator struct {
	rules  []Rule
	format messages.Formatter
	locale string
}

// Option configures the validator
type Option func(*Validator)

// WithRules replaces the required-field table
func WithRules(rules []Rule) Option {
	return func(v *Validator) {
		v.rules = rules
	}
}

// WithFormatter replaces the message formatter
func WithFormatter(f messages.Formatter) Option {
	return func(v *Validator) {
		v.format = f
	}
}

// WithLocale sets the locale findings are formatted in
func WithLocale(locale string) Option {
	return func(v *Validator) {
		v.locale = locale
	}
}

// New creates a validator with the default rule table and German messages
func New(opts ...Option) *Validator {
	v := &Validator{
		rules:  DefaultRules(),
		format: messages.Default(),
		locale: messages.DefaultLocale,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns the ordered findings for a document. It always returns
// a result and never panics outward; an unexpected failure inside a rule
// degrades to a single VALIDATION_ERROR finding.
//
// Stages: a nil tree reports PARSE_ERROR and stops; an unknown dialect
// reports INVALID_ROOT and stops; otherwise the full required-field table
// runs and findings accumulate.
func (v *Validator) Validate(doc *etree.Document, dialect model.Dialect) (findings []model.Finding) {
	defer func() {
		if r := recover(); r != nil {
			findings = []model.Finding{v.finding(model.CodeValidationError, "document")}
		}
	}()

	if doc == nil || doc.Root() == nil {
		return []model.Finding{v.finding(model.CodeParseError, "document")}
	}

	if dialect.Syntax() == model.SyntaxUnknown {
		return []model.Finding{v.finding(model.CodeInvalidRoot, "document")}
	}

	loc := xmlparser.NewLocator(dialect)
	root := doc.Root()

	for _, rule := range v.rules {
		value := loc.Field(root, rule.Field)
		if value == "" {
			findings = append(findings, v.finding(model.CodeMissingRequired, rule.Label))
			continue
		}
		if rule.Format != nil && !rule.Format(value) {
			findings = append(findings, v.finding(model.CodeInvalidFormat, rule.Label))
		}
	}

	return findings
}

func (v *Validator) finding(code model.ErrorCode, location string) model.Finding {
	m := v.format(code, v.locale)
	return model.Finding{
		Code:       code,
		Message:    m.Text,
		Location:   location,
		Severity:   model.SeverityCritical,
		Suggestion: m.Suggestion,
	}
}
