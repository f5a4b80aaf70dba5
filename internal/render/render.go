// Package render prepares the hand-off to the external XSLT pipeline. The
// transformation itself happens outside this engine; here we only pick the
// stylesheet matching the detected dialect and pass the raw XML through.
package render

import (
	"fmt"

	"github.com/rezonia/xrechnung-processor/internal/model"
	xmlparser "github.com/rezonia/xrechnung-processor/internal/parser/xml"
)

// Format is the rendering target
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// stylesheets maps syntax family and target format to the XSL template
// shipped with the XRechnung visualization distribution
var stylesheets = map[model.Syntax]map[Format]string{
	model.SyntaxUBL: {
		FormatHTML: "ubl-invoice-xr.xsl",
		FormatPDF:  "ubl-invoice-pdf.xsl",
	},
	model.SyntaxCII: {
		FormatHTML: "uncefact-invoice-xr.xsl",
		FormatPDF:  "uncefact-invoice-pdf.xsl",
	},
}

// Stylesheet returns the template name for a dialect and target format
func Stylesheet(d model.Dialect, f Format) (string, error) {
	byFormat, ok := stylesheets[d.Syntax()]
	if !ok {
		return "", fmt.Errorf("no stylesheet for dialect %s", d)
	}
	name, ok := byFormat[f]
	if !ok {
		return "", fmt.Errorf("no %s stylesheet for dialect %s", f, d)
	}
	return name, nil
}

// Input is everything the external transformation service needs
type Input struct {
	XML        []byte        `json:"-"`
	Dialect    model.Dialect `json:"dialect"`
	Stylesheet string        `json:"stylesheet"`
}

// Prepare classifies raw document bytes and selects the stylesheet. It
// fails when the document cannot be classified; rendering an unrecognized
// document is meaningless.
func Prepare(data []byte, format Format) (*Input, error) {
	data = xmlparser.StripTrailingPDF(data)
	_, dialect, err := xmlparser.Classify(data)
	if err != nil {
		return nil, err
	}
	name, err := Stylesheet(dialect, format)
	if err != nil {
		return nil, err
	}
	return &Input{
		XML:        data,
		Dialect:    dialect,
		Stylesheet: name,
	}, nil
}
