package model

import "fmt"

// ParseError represents XML parsing failures with dialect context
type ParseError struct {
	Dialect Dialect
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Dialect, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Dialect, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(dialect Dialect, field, message string, cause error) *ParseError {
	return &ParseError{
		Dialect: dialect,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// InvalidDocumentTypeError is returned when a well-formed document carries
// none of the recognized root markers
type InvalidDocumentTypeError struct {
	Root string
}

func (e *InvalidDocumentTypeError) Error() string {
	if e.Root != "" {
		return fmt.Sprintf("unrecognized document type: root element <%s>", e.Root)
	}
	return "unrecognized document type: no Invoice, CreditNote or CrossIndustryInvoice element"
}

// ExtractionError represents extraction failures. Only an untraversable
// tree raises one; field-level problems never do.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError creates a new extraction error
func NewExtractionError(message string, cause error) *ExtractionError {
	return &ExtractionError{
		Message: message,
		Cause:   cause,
	}
}
