package validator_test

import (
	"fmt"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/xrechnung-processor/internal/messages"
	"github.com/rezonia/xrechnung-processor/internal/model"
	"github.com/rezonia/xrechnung-processor/internal/validator"
)

func parseDoc(t *testing.T, content string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(content))
	return doc
}

func TestValidate_ValidDocument(t *testing.T) {
	doc := parseDoc(t, `<Invoice>
		<cbc:ID>RE-2024-0815</cbc:ID>
		<cbc:IssueDate>2024-06-15</cbc:IssueDate>
		<cbc:DocumentCurrencyCode>EUR</cbc:DocumentCurrencyCode>
	</Invoice>`)

	v := validator.New()
	findings := v.Validate(doc, model.DialectUBLInvoice)
	assert.Empty(t, findings)
}

func TestValidate_NilDocument(t *testing.T) {
	v := validator.New()

	findings := v.Validate(nil, model.DialectUBLInvoice)
	require.Len(t, findings, 1)
	assert.Equal(t, model.CodeParseError, findings[0].Code)
	assert.Equal(t, "document", findings[0].Location)
	assert.Equal(t, model.SeverityCritical, findings[0].Severity)
}

func TestValidate_UnknownDialect(t *testing.T) {
	doc := parseDoc(t, `<Order><ID>1</ID></Order>`)

	v := validator.New()
	findings := v.Validate(doc, model.DialectUnknown)
	require.Len(t, findings, 1)
	assert.Equal(t, model.CodeInvalidRoot, findings[0].Code)

	// The rule table must not have run; the single root finding stands
	// alone even though ID, date and currency are all missing.
	assert.Equal(t, "document", findings[0].Location)
}

func TestValidate_MissingFields(t *testing.T) {
	doc := parseDoc(t, `<Invoice><cbc:Note>leer</cbc:Note></Invoice>`)

	v := validator.New()
	findings := v.Validate(doc, model.DialectUBLInvoice)
	require.Len(t, findings, 3)

	locations := make([]string, 0, len(findings))
	for _, f := range findings {
		assert.Equal(t, model.CodeMissingRequired, f.Code)
		assert.Equal(t, model.SeverityCritical, f.Severity)
		locations = append(locations, f.Location)
	}
	assert.Equal(t, []string{"ID", "IssueDate", "CurrencyCode"}, locations)
}

func TestValidate_InvalidFormats(t *testing.T) {
	doc := parseDoc(t, `<Invoice>
		<cbc:ID>RE-1</cbc:ID>
		<cbc:IssueDate>15.06.2024</cbc:IssueDate>
		<cbc:DocumentCurrencyCode>EURO</cbc:DocumentCurrencyCode>
	</Invoice>`)

	v := validator.New()
	findings := v.Validate(doc, model.DialectUBLInvoice)
	require.Len(t, findings, 2)

	assert.Equal(t, model.CodeInvalidFormat, findings[0].Code)
	assert.Equal(t, "IssueDate", findings[0].Location)
	assert.Equal(t, model.CodeInvalidFormat, findings[1].Code)
	assert.Equal(t, "CurrencyCode", findings[1].Location)
}

func TestValidate_MixedFindingsAccumulate(t *testing.T) {
	doc := parseDoc(t, `<Invoice>
		<cbc:IssueDate>irgendwann</cbc:IssueDate>
		<cbc:DocumentCurrencyCode>EUR</cbc:DocumentCurrencyCode>
	</Invoice>`)

	v := validator.New()
	findings := v.Validate(doc, model.DialectUBLInvoice)
	require.Len(t, findings, 2)

	assert.Equal(t, model.CodeMissingRequired, findings[0].Code)
	assert.Equal(t, "ID", findings[0].Location)
	assert.Equal(t, model.CodeInvalidFormat, findings[1].Code)
	assert.Equal(t, "IssueDate", findings[1].Location)
}

func TestValidate_CIIDocument(t *testing.T) {
	doc := parseDoc(t, `<rsm:CrossIndustryInvoice>
		<rsm:ExchangedDocument>
			<ram:ID>RE-2024-0816</ram:ID>
			<ram:IssueDateTime><udt:DateTimeString format="102">20240615</udt:DateTimeString></ram:IssueDateTime>
		</rsm:ExchangedDocument>
		<ram:InvoiceCurrencyCode>EUR</ram:InvoiceCurrencyCode>
	</rsm:CrossIndustryInvoice>`)

	v := validator.New()
	findings := v.Validate(doc, model.DialectCII)
	assert.Empty(t, findings)
}

func TestValidIssueDate(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"2024-01-15", true},
		{"20240115", true},
		{"15-01-2024", false},
		{"2024/01/15", false},
		{"15.06.2024", false},
		{"2024-6-15", false},
		{"2024061", false},
		{"202406155", false},
		{"2024-06-15T00:00:00", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, validator.ValidIssueDate(tt.value), "value %q", tt.value)
	}
}

func TestValidCurrencyCode(t *testing.T) {
	assert.True(t, validator.ValidCurrencyCode("EUR"))
	assert.True(t, validator.ValidCurrencyCode("USD"))
	assert.False(t, validator.ValidCurrencyCode("EURO"))
	assert.False(t, validator.ValidCurrencyCode("EU"))
	assert.False(t, validator.ValidCurrencyCode(""))
}

func TestValidate_GermanMessagesByDefault(t *testing.T) {
	doc := parseDoc(t, `<Invoice/>`)

	v := validator.New()
	findings := v.Validate(doc, model.DialectUBLInvoice)
	require.NotEmpty(t, findings)
	assert.Equal(t, "Pflichtfeld fehlt", findings[0].Message)
	assert.NotEmpty(t, findings[0].Suggestion)
}

func TestValidate_WithLocale(t *testing.T) {
	doc := parseDoc(t, `<Invoice/>`)

	v := validator.New(validator.WithLocale("en"))
	findings := v.Validate(doc, model.DialectUBLInvoice)
	require.NotEmpty(t, findings)
	assert.Equal(t, "Required field is missing", findings[0].Message)
}

func TestValidate_WithCustomRules(t *testing.T) {
	doc := parseDoc(t, `<Invoice><cbc:ID>RE-1</cbc:ID></Invoice>`)

	rules := []validator.Rule{
		{Field: "ID", Label: "ID"},
		{Field: "Note", Label: "Note"},
	}

	v := validator.New(validator.WithRules(rules))
	findings := v.Validate(doc, model.DialectUBLInvoice)
	require.Len(t, findings, 1)
	assert.Equal(t, "Note", findings[0].Location)
}

func TestValidate_RecoversFromPanic(t *testing.T) {
	doc := parseDoc(t, `<Invoice><cbc:ID>RE-1</cbc:ID></Invoice>`)

	rules := []validator.Rule{
		{
			Field: "ID",
			Label: "ID",
			Format: func(string) bool {
				panic("rule blew up")
			},
		},
	}

	v := validator.New(validator.WithRules(rules))
	findings := v.Validate(doc, model.DialectUBLInvoice)
	require.Len(t, findings, 1)
	assert.Equal(t, model.CodeValidationError, findings[0].Code)
	assert.Equal(t, "document", findings[0].Location)
	assert.Equal(t, model.SeverityCritical, findings[0].Severity)
}

func TestValidate_WithCustomFormatter(t *testing.T) {
	doc := parseDoc(t, `<Invoice/>`)

	formatter := func(code model.ErrorCode, locale string) messages.Message {
		return messages.Message{Text: fmt.Sprintf("%s/%s", code, locale)}
	}

	v := validator.New(validator.WithFormatter(formatter), validator.WithLocale("en"))
	findings := v.Validate(doc, model.DialectUBLInvoice)
	require.NotEmpty(t, findings)
	assert.Equal(t, "MISSING_REQUIRED/en", findings[0].Message)
}

func BenchmarkValidate(b *testing.B) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<Invoice>
		<cbc:ID>RE-2024-0815</cbc:ID>
		<cbc:IssueDate>2024-06-15</cbc:IssueDate>
		<cbc:DocumentCurrencyCode>EUR</cbc:DocumentCurrencyCode>
	</Invoice>`); err != nil {
		b.Fatal(err)
	}

	v := validator.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.Validate(doc, model.DialectUBLInvoice)
	}
}
