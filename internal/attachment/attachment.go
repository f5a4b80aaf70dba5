// Package attachment decodes embedded document payloads for download and
// export. The extractor round-trips attachment content untouched; decoding
// happens here, at the edge, only when a caller asks for the bytes.
package attachment

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/rezonia/xrechnung-processor/internal/model"
)

// Info is the decoded metadata for one attachment
type Info struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int    `json:"size"`
}

// Decode returns the binary payload of an attachment. Embedded objects are
// base64; whitespace inside the payload is tolerated.
func Decode(a model.Attachment) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, a.Content)

	data, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("attachment %s: decode payload: %w", a.Filename, err)
	}
	return data, nil
}

// Inspect decodes the payload and reports its metadata
func Inspect(a model.Attachment) (Info, error) {
	data, err := Decode(a)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Filename: a.Filename,
		MimeType: a.MimeType,
		Size:     len(data),
	}, nil
}

// IsPDF reports whether the attachment claims to be a PDF, by MIME type or
// filename extension
func IsPDF(a model.Attachment) bool {
	if strings.EqualFold(a.MimeType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(a.Filename), ".pdf")
}

// CheckPDF decodes an attachment that claims to be a PDF and validates the
// payload structure. A failure here never blocks extraction; callers
// surface it as a warning.
func CheckPDF(a model.Attachment) error {
	if !IsPDF(a) {
		return fmt.Errorf("attachment %s: not a PDF", a.Filename)
	}
	data, err := Decode(a)
	if err != nil {
		return err
	}
	if err := api.Validate(bytes.NewReader(data), nil); err != nil {
		return fmt.Errorf("attachment %s: invalid PDF payload: %w", a.Filename, err)
	}
	return nil
}
