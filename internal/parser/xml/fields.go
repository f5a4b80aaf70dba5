package xml

import "github.com/rezonia/xrechnung-processor/internal/model"

// Logical field names shared by the extractor and the validator. Each maps
// to dialect-specific candidate paths through the fieldPaths table.
const (
	FieldID             = "ID"
	FieldTypeCode       = "InvoiceTypeCode"
	FieldIssueDate      = "IssueDate"
	FieldDueDate        = "DueDate"
	FieldCurrencyCode   = "CurrencyCode"
	FieldNote           = "Note"
	FieldBuyerReference = "BuyerReference"
	FieldPaymentTerms   = "PaymentTerms"

	FieldPaymentMeans         = "PaymentMeans"
	FieldPaymentMeansTypeCode = "PaymentMeansTypeCode"
	FieldPaymentID            = "PaymentID"
	FieldBankAccount          = "BankAccount"
	FieldIBAN                 = "IBAN"
	FieldBIC                  = "BIC"
	FieldBankName             = "BankName"

	FieldSeller       = "Seller"
	FieldBuyer        = "Buyer"
	FieldPartyName    = "PartyName"
	FieldStreet       = "Street"
	FieldCity         = "City"
	FieldPostcode     = "Postcode"
	FieldCountry      = "Country"
	FieldCountryCode  = "CountryCode"
	FieldTaxID        = "TaxID"
	FieldVATNumber    = "VATNumber"
	FieldContact      = "Contact"
	FieldContactName  = "ContactName"
	FieldContactPhone = "ContactPhone"
	FieldContactEmail = "ContactEmail"

	FieldLines            = "Lines"
	FieldLineID           = "LineID"
	FieldLineDescription  = "LineDescription"
	FieldLineQuantity     = "LineQuantity"
	FieldLineUnitCode     = "LineUnitCode"
	FieldLineUnitPrice    = "LineUnitPrice"
	FieldLineVATRate      = "LineVATRate"
	FieldLineTotal        = "LineTotal"
	FieldLineVATCategory  = "LineVATCategory"
	FieldLineVATExemption = "LineVATExemption"

	FieldLineExtensionTotal = "LineExtensionTotal"
	FieldTaxExclusiveTotal  = "TaxExclusiveTotal"
	FieldTaxInclusiveTotal  = "TaxInclusiveTotal"
	FieldVATTotal           = "VATTotal"
	FieldPayableTotal       = "PayableTotal"

	FieldDelivery     = "Delivery"
	FieldDeliveryDate = "DeliveryDate"

	FieldAttachments        = "Attachments"
	FieldAttachmentFilename = "AttachmentFilename"
	FieldAttachmentMimeType = "AttachmentMimeType"
	FieldAttachmentContent  = "AttachmentContent"

	FieldPrecedingInvoiceRef = "PrecedingInvoiceRef"
	FieldContractRef         = "ContractRef"
	FieldProjectRef          = "ProjectRef"
)

// prefixCandidates lists the namespace prefixes tried per syntax family, in
// order, before the unqualified fallback. One explicit table instead of
// string literals scattered through the lookup code.
var prefixCandidates = map[model.Syntax][]string{
	model.SyntaxUBL: {"cbc", "cac", "ubl", "cn", "xr"},
	model.SyntaxCII: {"ram", "rsm", "udt", "qdt", "xr"},
}

// FieldPath holds the candidate lookup paths for one logical field, per
// syntax family. Candidates are tried in order; the first path that
// resolves wins. A path segment of the form "@attr" selects an attribute.
type FieldPath struct {
	UBL []string
	CII []string
}

// Candidates returns the paths to try for the given syntax
func (p FieldPath) Candidates(s model.Syntax) []string {
	if s == model.SyntaxCII {
		return p.CII
	}
	return p.UBL
}

var fieldPaths = map[string]FieldPath{
	FieldID: {
		UBL: []string{"ID"},
		CII: []string{"ExchangedDocument/ID"},
	},
	FieldTypeCode: {
		UBL: []string{"InvoiceTypeCode", "CreditNoteTypeCode"},
		CII: []string{"ExchangedDocument/TypeCode"},
	},
	FieldIssueDate: {
		UBL: []string{"IssueDate"},
		CII: []string{"ExchangedDocument/IssueDateTime/DateTimeString"},
	},
	FieldDueDate: {
		UBL: []string{"DueDate"},
		CII: []string{"SpecifiedTradePaymentTerms/DueDateDateTime/DateTimeString"},
	},
	FieldCurrencyCode: {
		UBL: []string{"DocumentCurrencyCode"},
		CII: []string{"InvoiceCurrencyCode"},
	},
	FieldNote: {
		UBL: []string{"Note"},
		CII: []string{"ExchangedDocument/IncludedNote/Content"},
	},
	FieldBuyerReference: {
		UBL: []string{"BuyerReference"},
		CII: []string{"BuyerReference"},
	},
	FieldPaymentTerms: {
		UBL: []string{"PaymentTerms/Note"},
		CII: []string{"SpecifiedTradePaymentTerms/Description"},
	},

	FieldPaymentMeans: {
		UBL: []string{"PaymentMeans"},
		CII: []string{"SpecifiedTradeSettlementPaymentMeans"},
	},
	FieldPaymentMeansTypeCode: {
		UBL: []string{"PaymentMeansCode"},
		CII: []string{"TypeCode"},
	},
	FieldPaymentID: {
		UBL: []string{"PaymentID"},
		CII: []string{"PaymentReference"},
	},
	FieldBankAccount: {
		UBL: []string{"PayeeFinancialAccount", "FinancialAccount"},
		CII: []string{"PayeePartyCreditorFinancialAccount"},
	},
	FieldIBAN: {
		UBL: []string{"ID"},
		CII: []string{"IBANID"},
	},
	FieldBIC: {
		UBL: []string{"FinancialInstitutionBranch/ID"},
		CII: []string{"BICID"},
	},
	FieldBankName: {
		UBL: []string{"FinancialInstitution/Name", "Name"},
		CII: []string{"PayeeSpecifiedCreditorFinancialInstitution/Name"},
	},

	FieldSeller: {
		UBL: []string{"AccountingSupplierParty"},
		CII: []string{"SellerTradeParty"},
	},
	FieldBuyer: {
		UBL: []string{"AccountingCustomerParty"},
		CII: []string{"BuyerTradeParty"},
	},
	FieldPartyName: {
		UBL: []string{"PartyName/Name", "RegistrationName"},
		CII: []string{"Name"},
	},
	// The "Address/..." fallbacks cover UBL delivery locations, which nest
	// the address under cac:Address instead of cac:PostalAddress.
	FieldStreet: {
		UBL: []string{"PostalAddress/StreetName", "Address/StreetName"},
		CII: []string{"PostalTradeAddress/LineOne"},
	},
	FieldCity: {
		UBL: []string{"PostalAddress/CityName", "Address/CityName"},
		CII: []string{"PostalTradeAddress/CityName"},
	},
	FieldPostcode: {
		UBL: []string{"PostalAddress/PostalZone", "Address/PostalZone"},
		CII: []string{"PostalTradeAddress/PostcodeCode"},
	},
	FieldCountry: {
		UBL: []string{"Country/Name"},
		CII: []string{"PostalTradeAddress/CountryName"},
	},
	FieldCountryCode: {
		UBL: []string{"Country/IdentificationCode"},
		CII: []string{"PostalTradeAddress/CountryID"},
	},
	FieldTaxID: {
		UBL: []string{"PartyTaxScheme/CompanyID"},
		CII: []string{"SpecifiedTaxRegistration/ID"},
	},
	FieldVATNumber: {
		UBL: []string{"PartyTaxScheme/CompanyID"},
		CII: []string{"SpecifiedTaxRegistration/ID"},
	},
	FieldContact: {
		UBL: []string{"Contact"},
		CII: []string{"DefinedTradeContact"},
	},
	FieldContactName: {
		UBL: []string{"Name"},
		CII: []string{"PersonName"},
	},
	FieldContactPhone: {
		UBL: []string{"Telephone"},
		CII: []string{"TelephoneUniversalCommunication/CompleteNumber"},
	},
	FieldContactEmail: {
		UBL: []string{"ElectronicMail"},
		CII: []string{"EmailURIUniversalCommunication/URIID"},
	},

	FieldLines: {
		UBL: []string{"InvoiceLine", "CreditNoteLine"},
		CII: []string{"IncludedSupplyChainTradeLineItem"},
	},
	FieldLineID: {
		UBL: []string{"ID"},
		CII: []string{"AssociatedDocumentLineDocument/LineID"},
	},
	FieldLineDescription: {
		UBL: []string{"Item/Description", "Item/Name"},
		CII: []string{"SpecifiedTradeProduct/Description", "SpecifiedTradeProduct/Name"},
	},
	FieldLineQuantity: {
		UBL: []string{"InvoicedQuantity", "CreditedQuantity"},
		CII: []string{"BilledQuantity"},
	},
	FieldLineUnitCode: {
		UBL: []string{"InvoicedQuantity/@unitCode", "CreditedQuantity/@unitCode"},
		CII: []string{"BilledQuantity/@unitCode"},
	},
	FieldLineUnitPrice: {
		UBL: []string{"Price/PriceAmount"},
		CII: []string{"NetPriceProductTradePrice/ChargeAmount"},
	},
	FieldLineVATRate: {
		UBL: []string{"ClassifiedTaxCategory/Percent"},
		CII: []string{"ApplicableTradeTax/RateApplicablePercent"},
	},
	FieldLineTotal: {
		UBL: []string{"LineExtensionAmount"},
		CII: []string{"SpecifiedTradeSettlementLineMonetarySummation/LineTotalAmount"},
	},
	FieldLineVATCategory: {
		UBL: []string{"ClassifiedTaxCategory/ID"},
		CII: []string{"ApplicableTradeTax/CategoryCode"},
	},
	FieldLineVATExemption: {
		UBL: []string{"ClassifiedTaxCategory/TaxExemptionReason"},
		CII: []string{"ApplicableTradeTax/ExemptionReason"},
	},

	FieldLineExtensionTotal: {
		UBL: []string{"LegalMonetaryTotal/LineExtensionAmount"},
		CII: []string{"SpecifiedTradeSettlementHeaderMonetarySummation/LineTotalAmount"},
	},
	FieldTaxExclusiveTotal: {
		UBL: []string{"LegalMonetaryTotal/TaxExclusiveAmount"},
		CII: []string{"SpecifiedTradeSettlementHeaderMonetarySummation/TaxBasisTotalAmount"},
	},
	FieldTaxInclusiveTotal: {
		UBL: []string{"LegalMonetaryTotal/TaxInclusiveAmount"},
		CII: []string{"SpecifiedTradeSettlementHeaderMonetarySummation/GrandTotalAmount"},
	},
	FieldVATTotal: {
		UBL: []string{"TaxTotal/TaxAmount"},
		CII: []string{"SpecifiedTradeSettlementHeaderMonetarySummation/TaxTotalAmount"},
	},
	FieldPayableTotal: {
		UBL: []string{"LegalMonetaryTotal/PayableAmount"},
		CII: []string{"SpecifiedTradeSettlementHeaderMonetarySummation/DuePayableAmount"},
	},

	FieldDelivery: {
		UBL: []string{"Delivery"},
		CII: []string{"ApplicableHeaderTradeDelivery"},
	},
	FieldDeliveryDate: {
		UBL: []string{"ActualDeliveryDate"},
		CII: []string{"OccurrenceDateTime/DateTimeString"},
	},

	FieldAttachments: {
		UBL: []string{"AdditionalDocumentReference"},
		CII: []string{"AdditionalReferencedDocument"},
	},
	FieldAttachmentFilename: {
		UBL: []string{"EmbeddedDocumentBinaryObject/@filename"},
		CII: []string{"AttachmentBinaryObject/@filename"},
	},
	FieldAttachmentMimeType: {
		UBL: []string{"EmbeddedDocumentBinaryObject/@mimeCode"},
		CII: []string{"AttachmentBinaryObject/@mimeCode"},
	},
	FieldAttachmentContent: {
		UBL: []string{"EmbeddedDocumentBinaryObject"},
		CII: []string{"AttachmentBinaryObject"},
	},

	FieldPrecedingInvoiceRef: {
		UBL: []string{"BillingReference/InvoiceDocumentReference/ID", "PrecedingInvoiceReference"},
		CII: []string{"InvoiceReferencedDocument/IssuerAssignedID"},
	},
	FieldContractRef: {
		UBL: []string{"ContractDocumentReference/ID"},
		CII: []string{"ContractReferencedDocument/IssuerAssignedID"},
	},
	FieldProjectRef: {
		UBL: []string{"ProjectReference/ID"},
		CII: []string{"SpecifiedProcuringProject/ID"},
	},
}

// PathsFor returns the candidate paths for a logical field under the given
// syntax family. Unknown names resolve to the name itself so ad hoc paths
// keep working.
func PathsFor(name string, s model.Syntax) []string {
	if fp, ok := fieldPaths[name]; ok {
		return fp.Candidates(s)
	}
	return []string{name}
}
