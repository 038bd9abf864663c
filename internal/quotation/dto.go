package quotation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
)

// View is the full quotation payload: header, customer, renumbered lines and
// the category-grouped pricing breakdown.
type View struct {
	ID                uuid.UUID          `json:"id"`
	DocumentType      enums.DocumentType `json:"documentType"`
	CompanyName       string             `json:"companyName"`
	Customer          CustomerView       `json:"customer"`
	Address           string             `json:"address"`
	GSTOnSupply       bool               `json:"gstOnSupply"`
	GSTOnInstallation bool               `json:"gstOnInstallation"`
	GSTNumber         *string            `json:"gstNumber,omitempty"`
	Items             []LineItem         `json:"items"`
	Aggregate         Aggregate          `json:"aggregate"`
	CreatedAt         time.Time          `json:"createdAt"`
}

type CustomerView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Mobile  string    `json:"mobile"`
	Address string    `json:"address"`
}

// ListResult wraps one page of summaries and the cursor for the next page.
// An empty cursor means the listing is exhausted.
type ListResult struct {
	Items  []Summary `json:"items"`
	Cursor string    `json:"cursor,omitempty"`
}

// Summary is the list-row projection of a quotation.
type Summary struct {
	ID           uuid.UUID          `json:"id"`
	DocumentType enums.DocumentType `json:"documentType"`
	CustomerName string             `json:"customerName"`
	Mobile       string             `json:"mobile"`
	GrandTotal   decimal.Decimal    `json:"grandTotal"`
	LineCount    int                `json:"lineCount"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func newView(header *models.Quotation, items []LineItem, agg Aggregate) *View {
	view := &View{
		ID:                header.ID,
		DocumentType:      header.DocumentType,
		CompanyName:       header.CompanyName,
		Address:           header.Address,
		GSTOnSupply:       header.GSTOnSupply,
		GSTOnInstallation: header.GSTOnInstallation,
		GSTNumber:         header.GSTNumber,
		Items:             items,
		Aggregate:         agg,
		CreatedAt:         header.CreatedAt,
	}
	if header.Customer != nil {
		view.Customer = CustomerView{
			ID:      header.Customer.ID,
			Name:    header.Customer.Name,
			Mobile:  header.Customer.Mobile,
			Address: header.Customer.Address,
		}
	}
	return view
}

func newSummary(row *models.Quotation) Summary {
	summary := Summary{
		ID:           row.ID,
		DocumentType: row.DocumentType,
		GrandTotal:   row.GrandTotal,
		LineCount:    len(row.Lines),
		CreatedAt:    row.CreatedAt,
	}
	if row.Customer != nil {
		summary.CustomerName = row.Customer.Name
		summary.Mobile = row.Customer.Mobile
	}
	return summary
}
