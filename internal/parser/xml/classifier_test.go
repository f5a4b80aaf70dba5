package xml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/xrechnung-processor/internal/model"
	xmlparser "github.com/rezonia/xrechnung-processor/internal/parser/xml"
)

func readTestFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		expected model.Dialect
	}{
		{
			name:     "UBL invoice",
			file:     "ubl_invoice.xml",
			expected: model.DialectUBLInvoice,
		},
		{
			name:     "UBL credit note",
			file:     "ubl_creditnote.xml",
			expected: model.DialectUBLCreditNote,
		},
		{
			name:     "CII invoice",
			file:     "cii_invoice.xml",
			expected: model.DialectCII,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, dialect, err := xmlparser.Classify(readTestFile(t, tt.file))
			require.NoError(t, err)
			require.NotNil(t, doc)
			assert.Equal(t, tt.expected, dialect)
		})
	}
}

func TestClassify_MalformedXML(t *testing.T) {
	doc, dialect, err := xmlparser.Classify([]byte(`<Invoice><unclosed`))
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Equal(t, model.DialectUnknown, dialect)

	var parseErr *model.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestClassify_UnknownRoot(t *testing.T) {
	doc, dialect, err := xmlparser.Classify([]byte(`<Order><ID>1</ID></Order>`))
	require.Error(t, err)
	assert.Equal(t, model.DialectUnknown, dialect)

	// The tree survives so the validator can tell a bad root apart from a
	// parse failure.
	require.NotNil(t, doc)

	var typeErr *model.InvalidDocumentTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "Order", typeErr.Root)
}

func TestClassify_MarkerBelowRoot(t *testing.T) {
	content := `<Envelope><Body><Invoice><ID>1</ID></Invoice></Body></Envelope>`
	_, dialect, err := xmlparser.Classify([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, model.DialectUBLInvoice, dialect)
}

func TestClassify_CreditNoteBeforeInvoice(t *testing.T) {
	// CreditNote wins over Invoice when both markers occur; the invoice
	// marker here is only a reference inside the credit note.
	content := `<CreditNote><InvoiceDocumentReference><Invoice>x</Invoice></InvoiceDocumentReference></CreditNote>`
	_, dialect, err := xmlparser.Classify([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, model.DialectUBLCreditNote, dialect)
}

func TestStripTrailingPDF(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no marker",
			input:    `<Invoice/>`,
			expected: `<Invoice/>`,
		},
		{
			name:     "appended payload",
			input:    `<Invoice/>JVBERi0xLjQKJcOkw7zDtg==`,
			expected: `<Invoice/>`,
		},
		{
			name:     "embedded attachment is kept",
			input:    `<Invoice><Object>JVBERi0xLjQ=</Object></Invoice>`,
			expected: `<Invoice><Object>JVBERi0xLjQ=</Object></Invoice>`,
		},
		{
			name:     "embedded attachment plus appended payload",
			input:    `<Invoice><Object>JVBERi0xLjQ=</Object></Invoice>JVBERi0xLjQK`,
			expected: `<Invoice><Object>JVBERi0xLjQ=</Object></Invoice>`,
		},
		{
			name:     "empty input",
			input:    ``,
			expected: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := xmlparser.StripTrailingPDF([]byte(tt.input))
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestClassify_StrippedUpload(t *testing.T) {
	data := append(readTestFile(t, "ubl_invoice.xml"), []byte("JVBERi0xLjQKJcOkw7zDtg==")...)

	_, dialect, err := xmlparser.Classify(xmlparser.StripTrailingPDF(data))
	require.NoError(t, err)
	assert.Equal(t, model.DialectUBLInvoice, dialect)
}
