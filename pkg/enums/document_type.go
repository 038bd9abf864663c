package enums

import "fmt"

// DocumentType identifies the kind of commercial document a quotation renders as.
type DocumentType string

const (
	DocumentTypeQuotation       DocumentType = "quotation"
	DocumentTypePurchaseOrder   DocumentType = "purchase_order"
	DocumentTypeProformaInvoice DocumentType = "proforma_invoice"
)

var validDocumentTypes = map[DocumentType]struct{}{
	DocumentTypeQuotation:       {},
	DocumentTypePurchaseOrder:   {},
	DocumentTypeProformaInvoice: {},
}

// ParseDocumentType validates the raw value and returns the typed constant.
func ParseDocumentType(value string) (DocumentType, error) {
	dt := DocumentType(value)
	if _, ok := validDocumentTypes[dt]; !ok {
		return "", fmt.Errorf("invalid document type %q", value)
	}
	return dt, nil
}

// Title returns the heading printed on the rendered document.
func (d DocumentType) Title() string {
	switch d {
	case DocumentTypePurchaseOrder:
		return "Purchase Order"
	case DocumentTypeProformaInvoice:
		return "Proforma Invoice"
	default:
		return "Quotation"
	}
}
