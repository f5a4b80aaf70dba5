// Package xrechnung provides a public API for processing XRechnung
// e-invoices.
//
// This package exposes the core types for extracting and validating
// German e-invoices in the UBL and UN/CEFACT CII syntaxes.
//
// Example usage:
//
//	p := xrechnung.NewProcessor()
//	result, err := p.ProcessFile(ctx, "invoice.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Invoice.Totals.PayableAmount)
package xrechnung

import "github.com/rezonia/xrechnung-processor/internal/model"

// Re-export core types for public API
type (
	Invoice          = model.Invoice
	LineItem         = model.LineItem
	Party            = model.Party
	Address          = model.Address
	Contact          = model.Contact
	PaymentMeans     = model.PaymentMeans
	BankAccount      = model.BankAccount
	Totals           = model.Totals
	Delivery         = model.Delivery
	Attachment       = model.Attachment
	Numeric          = model.Numeric
	Dialect          = model.Dialect
	Syntax           = model.Syntax
	Finding          = model.Finding
	ValidationResult = model.ValidationResult
	ErrorCode        = model.ErrorCode
	Severity         = model.Severity
)

// Re-export dialect constants
const (
	DialectUBLInvoice    = model.DialectUBLInvoice
	DialectUBLCreditNote = model.DialectUBLCreditNote
	DialectCII           = model.DialectCII
	DialectUnknown       = model.DialectUnknown
)

// Re-export finding codes
const (
	CodeParseError      = model.CodeParseError
	CodeInvalidRoot     = model.CodeInvalidRoot
	CodeMissingRequired = model.CodeMissingRequired
	CodeInvalidFormat   = model.CodeInvalidFormat
	CodeValidationError = model.CodeValidationError
)

// Re-export severities
const (
	SeverityCritical = model.SeverityCritical
	SeverityError    = model.SeverityError
	SeverityWarning  = model.SeverityWarning
	SeverityInfo     = model.SeverityInfo
)

// Re-export error types
type (
	ParseError               = model.ParseError
	InvalidDocumentTypeError = model.InvalidDocumentTypeError
	ExtractionError          = model.ExtractionError
)
