package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/xrechnung-processor/internal/model"
)

func TestDialect_Syntax(t *testing.T) {
	tests := []struct {
		dialect  model.Dialect
		expected model.Syntax
	}{
		{model.DialectUBLInvoice, model.SyntaxUBL},
		{model.DialectUBLCreditNote, model.SyntaxUBL},
		{model.DialectCII, model.SyntaxCII},
		{model.DialectUnknown, model.SyntaxUnknown},
		{model.Dialect("something-else"), model.SyntaxUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.dialect.Syntax(), "dialect %s", tt.dialect)
	}
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  decimal.Decimal
		defaulted bool
	}{
		{
			name:     "integer",
			input:    "3",
			expected: decimal.NewFromInt(3),
		},
		{
			name:     "decimal with fraction",
			input:    "10.50",
			expected: decimal.RequireFromString("10.50"),
		},
		{
			name:     "negative amount",
			input:    "-12.49",
			expected: decimal.RequireFromString("-12.49"),
		},
		{
			name:     "surrounding whitespace",
			input:    "  19 \n",
			expected: decimal.NewFromInt(19),
		},
		{
			name:      "empty",
			input:     "",
			expected:  decimal.Zero,
			defaulted: true,
		},
		{
			name:      "whitespace only",
			input:     "   ",
			expected:  decimal.Zero,
			defaulted: true,
		},
		{
			name:      "unparsable",
			input:     "1.234,56",
			expected:  decimal.Zero,
			defaulted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := model.ParseNumeric(tt.input)
			assert.True(t, n.Equal(tt.expected), "got %s, want %s", n, tt.expected)
			assert.Equal(t, tt.defaulted, n.Defaulted)
		})
	}
}

func TestParseNumeric_PreservesExactValue(t *testing.T) {
	// 10.50 has no exact float64 representation; the decimal value must
	// round-trip exactly.
	n := model.ParseNumeric("10.50")
	assert.Equal(t, "10.5", n.String())

	total := n.Mul(decimal.NewFromInt(3))
	assert.True(t, total.Equal(decimal.RequireFromString("31.50")))
}

func TestNumeric_JSONOmitsDefaultedFlag(t *testing.T) {
	data, err := json.Marshal(model.ParseNumeric(""))
	require.NoError(t, err)
	assert.Equal(t, `"0"`, string(data))
}

func TestNewValidationResult(t *testing.T) {
	findings := []model.Finding{
		{Code: model.CodeMissingRequired, Location: "ID", Severity: model.SeverityCritical},
		{Code: model.CodeInvalidFormat, Location: "IssueDate", Severity: model.SeverityError},
		{Code: model.CodeInvalidFormat, Location: "Notes", Severity: model.SeverityWarning},
		{Code: model.CodeInvalidFormat, Location: "Items", Severity: model.SeverityInfo},
	}

	result := model.NewValidationResult(findings)

	require.Len(t, result.Errors, 2)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "ID", result.Errors[0].Location)
	assert.Equal(t, "IssueDate", result.Errors[1].Location)
	assert.Equal(t, "Notes", result.Warnings[0].Location)

	assert.False(t, result.IsValid())
	assert.True(t, result.HasCriticalErrors())
}

func TestNewValidationResult_Empty(t *testing.T) {
	result := model.NewValidationResult(nil)

	assert.True(t, result.IsValid())
	assert.False(t, result.HasCriticalErrors())

	// The lists marshal as [], not null
	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":[],"warnings":[]}`, string(data))
}

func TestNewValidationResult_ErrorWithoutCritical(t *testing.T) {
	result := model.NewValidationResult([]model.Finding{
		{Code: model.CodeInvalidFormat, Severity: model.SeverityError},
	})

	assert.False(t, result.IsValid())
	assert.False(t, result.HasCriticalErrors())
}

func TestParseError(t *testing.T) {
	err := model.NewParseError(model.DialectUnknown, "document", "failed to parse XML", nil)
	assert.Contains(t, err.Error(), "failed to parse XML")
}

func TestParseError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := model.NewParseError(model.DialectUnknown, "document", "failed to parse XML", cause)

	assert.ErrorIs(t, err, cause)
}

func TestInvalidDocumentTypeError(t *testing.T) {
	err := &model.InvalidDocumentTypeError{Root: "Order"}
	assert.Contains(t, err.Error(), "Order")
}

func TestExtractionError_Unwrap(t *testing.T) {
	cause := errors.New("broken tree")
	err := model.NewExtractionError("extraction failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "extraction failed")
}
