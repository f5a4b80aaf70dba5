package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/xrechnung-processor/internal/model"
	"github.com/rezonia/xrechnung-processor/internal/render"
)

func TestStylesheet(t *testing.T) {
	tests := []struct {
		name     string
		dialect  model.Dialect
		format   render.Format
		expected string
	}{
		{
			name:     "UBL invoice html",
			dialect:  model.DialectUBLInvoice,
			format:   render.FormatHTML,
			expected: "ubl-invoice-xr.xsl",
		},
		{
			name:     "UBL credit note html shares the UBL stylesheet",
			dialect:  model.DialectUBLCreditNote,
			format:   render.FormatHTML,
			expected: "ubl-invoice-xr.xsl",
		},
		{
			name:     "UBL invoice pdf",
			dialect:  model.DialectUBLInvoice,
			format:   render.FormatPDF,
			expected: "ubl-invoice-pdf.xsl",
		},
		{
			name:     "CII html",
			dialect:  model.DialectCII,
			format:   render.FormatHTML,
			expected: "uncefact-invoice-xr.xsl",
		},
		{
			name:     "CII pdf",
			dialect:  model.DialectCII,
			format:   render.FormatPDF,
			expected: "uncefact-invoice-pdf.xsl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := render.Stylesheet(tt.dialect, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestStylesheet_UnknownDialect(t *testing.T) {
	_, err := render.Stylesheet(model.DialectUnknown, render.FormatHTML)
	require.Error(t, err)
}

func TestStylesheet_UnknownFormat(t *testing.T) {
	_, err := render.Stylesheet(model.DialectUBLInvoice, render.Format("docx"))
	require.Error(t, err)
}

func TestPrepare(t *testing.T) {
	content := `<Invoice><cbc:ID>RE-1</cbc:ID></Invoice>`

	input, err := render.Prepare([]byte(content), render.FormatHTML)
	require.NoError(t, err)

	assert.Equal(t, model.DialectUBLInvoice, input.Dialect)
	assert.Equal(t, "ubl-invoice-xr.xsl", input.Stylesheet)
	assert.Equal(t, content, string(input.XML))
}

func TestPrepare_StripsAppendedPDF(t *testing.T) {
	content := `<Invoice><cbc:ID>RE-1</cbc:ID></Invoice>`
	data := append([]byte(content), []byte("JVBERi0xLjQK")...)

	input, err := render.Prepare(data, render.FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, content, string(input.XML))
}

func TestPrepare_UnclassifiableDocument(t *testing.T) {
	_, err := render.Prepare([]byte(`<Order/>`), render.FormatHTML)
	require.Error(t, err)

	var typeErr *model.InvalidDocumentTypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestPrepare_MalformedDocument(t *testing.T) {
	_, err := render.Prepare([]byte(`no markup at all`), render.FormatHTML)
	require.Error(t, err)
}
