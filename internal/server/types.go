package server

import (
	"github.com/rezonia/xrechnung-processor/internal/attachment"
	"github.com/rezonia/xrechnung-processor/internal/model"
)

// ValidationOutput is the wire shape of a validation result
type ValidationOutput struct {
	Valid             bool            `json:"valid"`
	HasCriticalErrors bool            `json:"has_critical_errors"`
	Errors            []model.Finding `json:"errors"`
	Warnings          []model.Finding `json:"warnings"`
}

func newValidationOutput(r *model.ValidationResult) *ValidationOutput {
	if r == nil {
		return nil
	}
	return &ValidationOutput{
		Valid:             r.IsValid(),
		HasCriticalErrors: r.HasCriticalErrors(),
		Errors:            r.Errors,
		Warnings:          r.Warnings,
	}
}

// ProcessResponse is the response for the upload endpoint
type ProcessResponse struct {
	Invoice    *model.Invoice    `json:"invoice"`
	Validation *ValidationOutput `json:"validation"`
	Dialect    string            `json:"dialect"`
}

// RenderResponse hands raw XML plus the selected stylesheet to the
// external XSLT transformation service
type RenderResponse struct {
	Dialect    string `json:"dialect"`
	Stylesheet string `json:"stylesheet"`
	XML        string `json:"xml"`
}

// AttachmentOutput is one extracted attachment with decoded metadata
type AttachmentOutput struct {
	attachment.Info
	Content string `json:"content"`
}

// AttachmentsResponse lists the embedded attachments of a document
type AttachmentsResponse struct {
	Attachments []AttachmentOutput `json:"attachments"`
}

// ErrorBody describes one hard failure
type ErrorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Severity   string `json:"severity"`
	Location   string `json:"location"`
}

// ErrorResponse is the standard hard-failure response: no invoice record,
// exactly one error object
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
