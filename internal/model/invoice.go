package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Dialect identifies the XML syntax an invoice document was written in
type Dialect string

const (
	DialectUBLInvoice    Dialect = "ubl-invoice"
	DialectUBLCreditNote Dialect = "ubl-creditnote"
	DialectCII           Dialect = "cii"
	DialectUnknown       Dialect = "unknown"
)

// Syntax is the dialect family: UBL and CII share no tag vocabulary
type Syntax string

const (
	SyntaxUBL     Syntax = "ubl"
	SyntaxCII     Syntax = "cii"
	SyntaxUnknown Syntax = "unknown"
)

// Syntax collapses the dialect to its syntax family
func (d Dialect) Syntax() Syntax {
	switch d {
	case DialectUBLInvoice, DialectUBLCreditNote:
		return SyntaxUBL
	case DialectCII:
		return SyntaxCII
	default:
		return SyntaxUnknown
	}
}

// Numeric is a decimal invoice amount that remembers whether it was
// actually stated in the document. Defaulted is true when the source field
// was absent or unparsable and the value degraded to zero.
type Numeric struct {
	decimal.Decimal
	Defaulted bool `json:"-"`
}

// ParseNumeric parses a decimal field value. Absent or unparsable input
// yields zero with the Defaulted flag set; it never fails.
func ParseNumeric(s string) Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return Numeric{Decimal: decimal.Zero, Defaulted: true}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Numeric{Decimal: decimal.Zero, Defaulted: true}
	}
	return Numeric{Decimal: d}
}

// Invoice is the canonical invoice record, independent of source dialect
type Invoice struct {
	ID            string  `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	TypeCode      string  `json:"type_code"`
	IssueDate     string  `json:"issue_date"`
	DueDate       string  `json:"due_date"`
	CurrencyCode  string  `json:"currency_code"`
	Notes         string  `json:"notes,omitempty"`
	PaymentTerms  string  `json:"payment_terms,omitempty"`
	Dialect       Dialect `json:"dialect"`

	PaymentMeans *PaymentMeans `json:"payment_means,omitempty"`
	Seller       Party         `json:"seller"`
	Buyer        Party         `json:"buyer"`
	Items        []LineItem    `json:"items"`
	Totals       Totals        `json:"totals"`
	Delivery     *Delivery     `json:"delivery,omitempty"`
	Attachments  []Attachment  `json:"attachments,omitempty"`

	PrecedingInvoiceRef string `json:"preceding_invoice_ref,omitempty"`
	ContractRef         string `json:"contract_ref,omitempty"`
	ProjectRef          string `json:"project_ref,omitempty"`
}

// PaymentMeans describes how the invoice is to be paid
type PaymentMeans struct {
	TypeCode    string       `json:"type_code"`
	PaymentID   string       `json:"payment_id,omitempty"`
	BankAccount *BankAccount `json:"bank_account,omitempty"`
}

// BankAccount holds the creditor account details
type BankAccount struct {
	IBAN     string `json:"iban"`
	BIC      string `json:"bic,omitempty"`
	BankName string `json:"bank_name,omitempty"`
}

// Party represents seller or buyer
type Party struct {
	Name      string   `json:"name"`
	Address   Address  `json:"address"`
	TaxID     string   `json:"tax_id"`
	VATNumber string   `json:"vat_number,omitempty"`
	Contact   *Contact `json:"contact,omitempty"`
	// Reference is the buyer reference (Leitweg-ID); empty for sellers
	Reference string `json:"reference,omitempty"`
}

// Address is a postal address
type Address struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// Contact holds contact details for a party
type Contact struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// LineItem is one invoice position in document order.
// LineTotal is not required to equal Quantity x UnitPrice; documents may
// legitimately round.
type LineItem struct {
	ID                 string  `json:"id"`
	Description        string  `json:"description"`
	Quantity           Numeric `json:"quantity"`
	UnitCode           string  `json:"unit_code"`
	UnitPrice          Numeric `json:"unit_price"`
	VATRate            Numeric `json:"vat_rate"`
	LineTotal          Numeric `json:"line_total"`
	VATCategory        string  `json:"vat_category"`
	VATExemptionReason string  `json:"vat_exemption_reason,omitempty"`
}

// Totals holds the document-level monetary totals
type Totals struct {
	LineExtensionAmount Numeric `json:"line_extension_amount"`
	TaxExclusiveAmount  Numeric `json:"tax_exclusive_amount"`
	TaxInclusiveAmount  Numeric `json:"tax_inclusive_amount"`
	VATTotal            Numeric `json:"vat_total"`
	PayableAmount       Numeric `json:"payable_amount"`
}

// Delivery holds the optional delivery block
type Delivery struct {
	Date     string   `json:"date,omitempty"`
	Location *Address `json:"location,omitempty"`
}

// Attachment is an embedded document reference. Content is the opaque
// base64 payload as it appeared in the source; it is never interpreted
// here, only round-tripped for download.
type Attachment struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Content  string `json:"content"`
}
