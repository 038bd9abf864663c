package quotation

import "github.com/shopspring/decimal"

// GSTRate is the fixed 18% tax applied independently to supply and
// installation when the corresponding toggle is on.
var GSTRate = decimal.NewFromFloat(0.18)

// CategoryGroup is an ordered slice of the quotation sharing one category
// name, in the order the items appear in the quotation.
type CategoryGroup struct {
	Name  string     `json:"name"`
	Items []LineItem `json:"items"`
}

// Aggregate is the derived financial view of a line-item list. It is always
// recomputed from the lines plus the two GST toggles; nothing here is stored
// state.
type Aggregate struct {
	Groups               []CategoryGroup `json:"groups"`
	SupplySubtotal       decimal.Decimal `json:"supplySubtotal"`
	InstallationSubtotal decimal.Decimal `json:"installationSubtotal"`
	SupplyGST            decimal.Decimal `json:"supplyGst"`
	InstallationGST      decimal.Decimal `json:"installationGst"`
	GrandTotal           decimal.Decimal `json:"grandTotal"`
}

// LineTotal prices a single row: rate*qty plus installation*qty. The
// installation fee is per unit and scales with quantity.
func LineTotal(item LineItem) decimal.Decimal {
	qty := decimal.NewFromInt(int64(item.Quantity))
	return item.UnitRate.Mul(qty).Add(item.InstallationAmount.Mul(qty))
}

// Compute aggregates the line items into grouped views and totals. It is a
// pure function: negative or zero quantities and rates are not rejected here,
// they simply flow through the arithmetic — input bounds are the caller's
// concern.
func Compute(items []LineItem, gstOnSupply, gstOnInstallation bool) Aggregate {
	agg := Aggregate{
		Groups:               groupByCategory(items),
		SupplySubtotal:       decimal.Zero,
		InstallationSubtotal: decimal.Zero,
		SupplyGST:            decimal.Zero,
		InstallationGST:      decimal.Zero,
	}

	supply := decimal.Zero
	installation := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		supply = supply.Add(item.UnitRate.Mul(qty))
		installation = installation.Add(item.InstallationAmount.Mul(qty))
	}

	agg.SupplySubtotal = supply.Round(2)
	agg.InstallationSubtotal = installation.Round(2)

	grand := agg.SupplySubtotal.Add(agg.InstallationSubtotal)
	if gstOnSupply {
		agg.SupplyGST = agg.SupplySubtotal.Mul(GSTRate).Round(2)
		grand = grand.Add(agg.SupplyGST)
	}
	if gstOnInstallation {
		agg.InstallationGST = agg.InstallationSubtotal.Mul(GSTRate).Round(2)
		grand = grand.Add(agg.InstallationGST)
	}
	agg.GrandTotal = grand.Round(2)

	return agg
}

// groupByCategory partitions items by category name. Category order follows
// first occurrence in the list; item order within a category follows the list.
func groupByCategory(items []LineItem) []CategoryGroup {
	groups := make([]CategoryGroup, 0)
	index := map[string]int{}
	for _, item := range items {
		at, ok := index[item.CategoryName]
		if !ok {
			at = len(groups)
			index[item.CategoryName] = at
			groups = append(groups, CategoryGroup{Name: item.CategoryName})
		}
		groups[at].Items = append(groups[at].Items, item)
	}
	return groups
}
