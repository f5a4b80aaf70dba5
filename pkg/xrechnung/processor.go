package xrechnung

import (
	"context"
	"io"
	"os"

	"github.com/rezonia/xrechnung-processor/internal/messages"
	"github.com/rezonia/xrechnung-processor/internal/processor"
)

// Result is the public shape of one processing run
type Result struct {
	Invoice    *Invoice
	Validation *ValidationResult
	Dialect    Dialect
}

// Options configures a Processor
type Options struct {
	// Locale selects the language for finding messages ("de" or "en").
	// Empty means German.
	Locale string
}

// Processor wraps the internal pipeline for library consumers. It is
// stateless and safe for concurrent use.
type Processor struct {
	pipeline *processor.Pipeline
	locale   string
}

// NewProcessor creates a processor with default options
func NewProcessor() *Processor {
	return NewProcessorWithOptions(Options{})
}

// NewProcessorWithOptions creates a processor with the given options
func NewProcessorWithOptions(opts Options) *Processor {
	locale := opts.Locale
	if locale == "" {
		locale = messages.DefaultLocale
	}
	return &Processor{
		pipeline: processor.NewPipeline(),
		locale:   locale,
	}
}

// Process extracts and validates a document from raw bytes. The returned
// error is set only for hard failures; a document that merely fails
// validation still yields a Result with findings.
func (p *Processor) Process(ctx context.Context, data []byte) (*Result, error) {
	result := p.pipeline.Process(ctx, data)
	if result.Error != nil {
		return nil, result.Error
	}
	return &Result{
		Invoice:    result.Invoice,
		Validation: messages.LocalizeResult(result.Validation, p.locale),
		Dialect:    result.Dialect,
	}, nil
}

// ProcessReader extracts and validates a document from a reader
func (p *Processor) ProcessReader(ctx context.Context, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Message: "failed to read input", Cause: err}
	}
	return p.Process(ctx, data)
}

// ProcessFile extracts and validates a document from a file on disk
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Message: "failed to read file", Cause: err}
	}
	return p.Process(ctx, data)
}

// Validate runs only the validation half over raw bytes. It never returns
// an error; hard failures surface as critical findings.
func (p *Processor) Validate(ctx context.Context, data []byte) *ValidationResult {
	return messages.LocalizeResult(p.pipeline.Validate(ctx, data), p.locale)
}
