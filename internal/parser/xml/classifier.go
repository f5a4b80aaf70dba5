package xml

import (
	"bytes"

	"github.com/beevik/etree"

	"github.com/rezonia/xrechnung-processor/internal/model"
)

// pdfMarker is the base64 encoding of "%PDF". Some upload tools append the
// embedded PDF payload after the closing XML tag; everything from the
// marker on must be dropped before parsing.
var pdfMarker = []byte("JVBERi")

// StripTrailingPDF truncates the input at a base64 PDF header appearing
// after the XML body. A marker inside the body, such as an embedded PDF
// attachment, is still followed by markup and is left alone; only a marker
// with no further markup after it starts an appended payload.
func StripTrailingPDF(data []byte) []byte {
	search := data
	offset := 0
	for {
		idx := bytes.Index(search, pdfMarker)
		if idx < 0 {
			return data
		}
		rest := search[idx+len(pdfMarker):]
		if bytes.IndexByte(rest, '<') < 0 {
			return data[:offset+idx]
		}
		offset += idx + len(pdfMarker)
		search = rest
	}
}

// Classify parses raw XML and decides the source dialect. Parsing failure
// returns a ParseError; a well-formed document without a recognized root
// marker returns an InvalidDocumentTypeError. Downstream stages must not
// run on either failure.
func Classify(data []byte) (*etree.Document, model.Dialect, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, model.DialectUnknown, model.NewParseError(model.DialectUnknown, "document", "failed to parse XML", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, model.DialectUnknown, model.NewParseError(model.DialectUnknown, "document", "no root element", nil)
	}

	// The marker element may sit anywhere in the tree, not only at the
	// root; namespace prefixes are ignored.
	switch {
	case containsLocalName(root, "CrossIndustryInvoice"):
		return doc, model.DialectCII, nil
	case containsLocalName(root, "CreditNote"):
		return doc, model.DialectUBLCreditNote, nil
	case containsLocalName(root, "Invoice"):
		return doc, model.DialectUBLInvoice, nil
	}

	return doc, model.DialectUnknown, &model.InvalidDocumentTypeError{Root: root.Tag}
}

// containsLocalName reports whether elem or any descendant has the given
// local tag name, ignoring namespace prefixes
func containsLocalName(elem *etree.Element, local string) bool {
	if elem.Tag == local {
		return true
	}
	for _, child := range elem.ChildElements() {
		if containsLocalName(child, local) {
			return true
		}
	}
	return false
}
