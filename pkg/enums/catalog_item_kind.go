package enums

// CatalogItemKind distinguishes primary products from accessories. Accessories
// may be bundled under a product but never carry bundles of their own.
type CatalogItemKind string

const (
	CatalogItemKindProduct   CatalogItemKind = "product"
	CatalogItemKindAccessory CatalogItemKind = "accessory"
)

// IsAccessory reports whether the kind refers to an accessory row.
func (k CatalogItemKind) IsAccessory() bool {
	return k == CatalogItemKindAccessory
}
