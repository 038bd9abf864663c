// Package quotation prices, persists and loads quotations.
//
// Line selection is owned by the builder screens: the client picks products,
// removes rows and reorders before submitting, and Save receives the final
// line set. Expand and Remove are the server-side counterparts of that
// lifecycle — Expand produces the lines a catalog pick adds (product plus
// bundled accessories) and Remove drops a row and renumbers — kept here so
// the selection rules live next to Merge and the aggregation they feed.
package quotation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
)

// LineItem is one priced row of an in-progress quotation. It is a plain
// value: every mutation helper in this package returns a new slice and leaves
// its inputs untouched.
type LineItem struct {
	SN                 int             `json:"sn"`
	ProductID          uuid.UUID       `json:"productId"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Make               string          `json:"make,omitempty"`
	Model              string          `json:"model,omitempty"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	CategoryName       string          `json:"categoryName"`
	Quantity           int             `json:"quantity"`
	UnitRate           decimal.Decimal `json:"unitRate"`
	InstallationAmount decimal.Decimal `json:"installationAmount"`
}

// Expand turns a catalog product into the line items its selection produces:
// the product itself plus one line per bundled accessory, in bundle order.
// Accessories inherit the parent's category name but carry their own price,
// installation fee and base quantity.
func Expand(product models.Product, categoryName string) []LineItem {
	items := make([]LineItem, 0, 1+len(product.Accessories))
	items = append(items, fromProduct(product, categoryName))
	for _, accessory := range product.Accessories {
		items = append(items, fromProduct(accessory, categoryName))
	}
	return items
}

func fromProduct(product models.Product, categoryName string) LineItem {
	qty := product.BaseQty
	if qty <= 0 {
		qty = 1
	}
	return LineItem{
		ProductID:          product.ID,
		Name:               product.Name,
		Description:        deref(product.Description),
		Make:               deref(product.Make),
		Model:              deref(product.Model),
		ImageURL:           deref(product.ImageURL),
		CategoryName:       categoryName,
		Quantity:           qty,
		UnitRate:           product.UnitPrice,
		InstallationAmount: product.InstallationFee,
	}
}

// Merge folds incoming items into the existing list. Identity is the catalog
// product ID: a duplicate contributes its quantity to the first-seen entry and
// nothing else — rate and installation amount of the original entry win.
// Fresh identities append in arrival order. Sequence numbers in the result are
// always contiguous 1..N.
func Merge(existing, incoming []LineItem) []LineItem {
	merged := make([]LineItem, 0, len(existing)+len(incoming))
	index := make(map[uuid.UUID]int, len(existing)+len(incoming))

	for _, item := range existing {
		appendOrFold(&merged, index, item)
	}
	for _, item := range incoming {
		appendOrFold(&merged, index, item)
	}
	return Renumber(merged)
}

func appendOrFold(merged *[]LineItem, index map[uuid.UUID]int, item LineItem) {
	if at, ok := index[item.ProductID]; ok {
		(*merged)[at].Quantity += item.Quantity
		return
	}
	index[item.ProductID] = len(*merged)
	*merged = append(*merged, item)
}

// Remove drops the item at the given zero-based position and renumbers the
// remainder so sequence numbers stay contiguous. Out-of-range positions
// return the input renumbered but otherwise unchanged.
func Remove(items []LineItem, position int) []LineItem {
	if position < 0 || position >= len(items) {
		return Renumber(append([]LineItem(nil), items...))
	}
	next := make([]LineItem, 0, len(items)-1)
	next = append(next, items[:position]...)
	next = append(next, items[position+1:]...)
	return Renumber(next)
}

// Renumber reassigns sequence numbers 1..N in list order.
func Renumber(items []LineItem) []LineItem {
	for i := range items {
		items[i].SN = i + 1
	}
	return items
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
