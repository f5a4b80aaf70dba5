// Package processor wires classification, extraction and validation into
// one pass over an uploaded document and assembles the combined result for
// the presentation boundary.
package processor

import (
	"context"
	"io"
	"sync"

	"github.com/rezonia/xrechnung-processor/internal/model"
	xmlparser "github.com/rezonia/xrechnung-processor/internal/parser/xml"
	"github.com/rezonia/xrechnung-processor/internal/validator"
)

// Result is the combined outcome of one processing run. Extraction always
// produces a record when the document classified, even if validation
// failed, so a partially valid document can still be inspected. Error is
// set only for hard failures (unparseable input, unrecognized document
// type); those carry no invoice record.
type Result struct {
	Invoice    *model.Invoice
	Validation *model.ValidationResult
	Dialect    model.Dialect
	RawXML     []byte
	Error      error
}

// Pipeline processes invoice documents. It holds no per-request state and
// is safe for concurrent use.
type Pipeline struct {
	validator *validator.Validator
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithValidator replaces the default validator
func WithValidator(v *validator.Validator) Option {
	return func(p *Pipeline) {
		p.validator = v
	}
}

// NewPipeline creates a pipeline with the default validator
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		validator: validator.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the full pass over raw document bytes: strip any trailing
// embedded PDF payload, classify, then extract and validate concurrently
// on the same tree. Neither stage mutates the tree, so their order is
// unobservable. Deterministic: the same bytes always produce the same
// result, and nothing is retried.
func (p *Pipeline) Process(ctx context.Context, data []byte) *Result {
	data = xmlparser.StripTrailingPDF(data)

	result := &Result{
		Dialect: model.DialectUnknown,
		RawXML:  data,
	}

	doc, dialect, err := xmlparser.Classify(data)
	if err != nil {
		// Hard stop: the single classifier finding is the whole
		// validation result, and no invoice record is produced.
		result.Error = err
		result.Validation = model.NewValidationResult(p.validator.Validate(doc, dialect))
		return result
	}
	result.Dialect = dialect

	var (
		wg       sync.WaitGroup
		inv      *model.Invoice
		invErr   error
		findings []model.Finding
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		inv, invErr = xmlparser.Extract(doc, dialect)
	}()
	go func() {
		defer wg.Done()
		findings = p.validator.Validate(doc, dialect)
	}()
	wg.Wait()

	if invErr != nil {
		result.Error = invErr
	}
	result.Invoice = inv
	result.Validation = model.NewValidationResult(findings)
	return result
}

// ProcessReader reads all input and processes it
func (p *Pipeline) ProcessReader(ctx context.Context, r io.Reader) *Result {
	data, err := io.ReadAll(r)
	if err != nil {
		return &Result{
			Dialect: model.DialectUnknown,
			Error:   model.NewParseError(model.DialectUnknown, "input", "failed to read input", err),
			Validation: model.NewValidationResult([]model.Finding{{
				Code:     model.CodeParseError,
				Message:  "failed to read input",
				Location: "document",
				Severity: model.SeverityCritical,
			}}),
		}
	}
	return p.Process(ctx, data)
}

// Validate runs only the validation half of the pipeline
func (p *Pipeline) Validate(ctx context.Context, data []byte) *model.ValidationResult {
	data = xmlparser.StripTrailingPDF(data)
	doc, dialect, _ := xmlparser.Classify(data)
	return model.NewValidationResult(p.validator.Validate(doc, dialect))
}
