package model

// ErrorCode is the closed taxonomy of validation finding codes
type ErrorCode string

const (
	CodeParseError      ErrorCode = "PARSE_ERROR"
	CodeInvalidRoot     ErrorCode = "INVALID_ROOT"
	CodeMissingRequired ErrorCode = "MISSING_REQUIRED"
	CodeInvalidFormat   ErrorCode = "INVALID_FORMAT"
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
)

// Severity classifies a finding; only CRITICAL findings count towards
// HasCriticalErrors
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityError    Severity = "ERROR"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// IsError reports whether the severity belongs on the error list
func (s Severity) IsError() bool {
	return s == SeverityCritical || s == SeverityError
}

// Finding is one validation outcome. Location names the logical field the
// finding refers to, or "document" for document-level findings.
type Finding struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Location   string    `json:"location"`
	Severity   Severity  `json:"severity"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// ValidationResult splits findings into errors and warnings, preserving
// the order in which the validator emitted them
type ValidationResult struct {
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// NewValidationResult splits findings by severity
func NewValidationResult(findings []Finding) *ValidationResult {
	result := &ValidationResult{
		Errors:   []Finding{},
		Warnings: []Finding{},
	}
	for _, f := range findings {
		if f.Severity.IsError() {
			result.Errors = append(result.Errors, f)
		} else {
			result.Warnings = append(result.Warnings, f)
		}
	}
	return result
}

// IsValid reports whether the document passed validation
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// HasCriticalErrors reports whether any finding is CRITICAL
func (r *ValidationResult) HasCriticalErrors() bool {
	for _, f := range r.Errors {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
