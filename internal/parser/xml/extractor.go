package xml

import (
	"github.com/beevik/etree"

	"github.com/rezonia/xrechnung-processor/internal/model"
)

// Extract maps a classified tree into the canonical invoice record. It
// fails only when the tree itself cannot be traversed; missing fields
// degrade to their zero values and are the validator's business, not an
// extraction failure. The tree is never mutated, so extracting twice from
// the same document yields structurally identical records.
func Extract(doc *etree.Document, dialect model.Dialect) (*model.Invoice, error) {
	if doc == nil || doc.Root() == nil {
		return nil, model.NewExtractionError("document tree is nil or empty", nil)
	}

	loc := NewLocator(dialect)
	root := doc.Root()

	inv := &model.Invoice{
		ID:                  loc.Field(root, FieldID),
		TypeCode:            loc.Field(root, FieldTypeCode),
		IssueDate:           loc.Field(root, FieldIssueDate),
		DueDate:             loc.Field(root, FieldDueDate),
		CurrencyCode:        loc.Field(root, FieldCurrencyCode),
		Notes:               loc.Field(root, FieldNote),
		PaymentTerms:        loc.Field(root, FieldPaymentTerms),
		Dialect:             dialect,
		Items:               []model.LineItem{},
		PrecedingInvoiceRef: loc.Field(root, FieldPrecedingInvoiceRef),
		ContractRef:         loc.Field(root, FieldContractRef),
		ProjectRef:          loc.Field(root, FieldProjectRef),
	}
	inv.InvoiceNumber = inv.ID

	inv.PaymentMeans = extractPaymentMeans(loc, root)
	inv.Seller = extractParty(loc, root, FieldSeller, "")
	inv.Buyer = extractParty(loc, root, FieldBuyer, loc.Field(root, FieldBuyerReference))
	inv.Items = extractLineItems(loc, root)
	inv.Totals = extractTotals(loc, root)
	inv.Delivery = extractDelivery(loc, root)
	inv.Attachments = extractAttachments(loc, root)

	return inv, nil
}

// extractPaymentMeans returns nil when the anchoring element is absent;
// callers must be able to tell "not provided" from "provided but blank"
func extractPaymentMeans(loc *Locator, root *etree.Element) *model.PaymentMeans {
	anchor := loc.Element(root, FieldPaymentMeans)
	if anchor == nil {
		return nil
	}

	pm := &model.PaymentMeans{
		TypeCode:  loc.Field(anchor, FieldPaymentMeansTypeCode),
		PaymentID: loc.Field(anchor, FieldPaymentID),
	}

	if account := loc.Element(anchor, FieldBankAccount); account != nil {
		pm.BankAccount = &model.BankAccount{
			IBAN:     loc.Field(account, FieldIBAN),
			BIC:      loc.Field(account, FieldBIC),
			BankName: loc.Field(account, FieldBankName),
		}
	}

	return pm
}

func extractParty(loc *Locator, root *etree.Element, anchorField, reference string) model.Party {
	party := model.Party{Reference: reference}

	anchor := loc.Element(root, anchorField)
	if anchor == nil {
		return party
	}

	party.Name = loc.Field(anchor, FieldPartyName)
	party.TaxID = loc.Field(anchor, FieldTaxID)
	party.VATNumber = loc.Field(anchor, FieldVATNumber)
	party.Address = extractAddress(loc, anchor)

	if contact := loc.Element(anchor, FieldContact); contact != nil {
		party.Contact = &model.Contact{
			Name:  loc.Field(contact, FieldContactName),
			Phone: loc.Field(contact, FieldContactPhone),
			Email: loc.Field(contact, FieldContactEmail),
		}
	}

	return party
}

func extractAddress(loc *Locator, scope *etree.Element) model.Address {
	return model.Address{
		Street:      loc.Field(scope, FieldStreet),
		City:        loc.Field(scope, FieldCity),
		Postcode:    loc.Field(scope, FieldPostcode),
		Country:     loc.Field(scope, FieldCountry),
		CountryCode: loc.Field(scope, FieldCountryCode),
	}
}

// extractLineItems keeps document order; each line element becomes the
// locator scope for its own field lookups
func extractLineItems(loc *Locator, root *etree.Element) []model.LineItem {
	lines := loc.Elements(root, FieldLines)
	items := make([]model.LineItem, 0, len(lines))

	for _, line := range lines {
		items = append(items, model.LineItem{
			ID:                 loc.Field(line, FieldLineID),
			Description:        loc.Field(line, FieldLineDescription),
			Quantity:           model.ParseNumeric(loc.Field(line, FieldLineQuantity)),
			UnitCode:           loc.Field(line, FieldLineUnitCode),
			UnitPrice:          model.ParseNumeric(loc.Field(line, FieldLineUnitPrice)),
			VATRate:            model.ParseNumeric(loc.Field(line, FieldLineVATRate)),
			LineTotal:          model.ParseNumeric(loc.Field(line, FieldLineTotal)),
			VATCategory:        loc.Field(line, FieldLineVATCategory),
			VATExemptionReason: loc.Field(line, FieldLineVATExemption),
		})
	}

	return items
}

func extractTotals(loc *Locator, root *etree.Element) model.Totals {
	return model.Totals{
		LineExtensionAmount: model.ParseNumeric(loc.Field(root, FieldLineExtensionTotal)),
		TaxExclusiveAmount:  model.ParseNumeric(loc.Field(root, FieldTaxExclusiveTotal)),
		TaxInclusiveAmount:  model.ParseNumeric(loc.Field(root, FieldTaxInclusiveTotal)),
		VATTotal:            model.ParseNumeric(loc.Field(root, FieldVATTotal)),
		PayableAmount:       model.ParseNumeric(loc.Field(root, FieldPayableTotal)),
	}
}

func extractDelivery(loc *Locator, root *etree.Element) *model.Delivery {
	anchor := loc.Element(root, FieldDelivery)
	if anchor == nil {
		return nil
	}

	delivery := &model.Delivery{
		Date: loc.Field(anchor, FieldDeliveryDate),
	}

	location := extractAddress(loc, anchor)
	if location != (model.Address{}) {
		delivery.Location = &location
	}

	return delivery
}

// extractAttachments drops references that lack a filename or a payload;
// a dangling attachment reference must not appear in the output list
func extractAttachments(loc *Locator, root *etree.Element) []model.Attachment {
	refs := loc.Elements(root, FieldAttachments)
	var attachments []model.Attachment

	for _, ref := range refs {
		filename := loc.Field(ref, FieldAttachmentFilename)
		content := loc.Field(ref, FieldAttachmentContent)
		if filename == "" || content == "" {
			continue
		}
		attachments = append(attachments, model.Attachment{
			Filename: filename,
			MimeType: loc.Field(ref, FieldAttachmentMimeType),
			Content:  content,
		})
	}

	return attachments
}
