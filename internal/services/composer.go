package services

import (
	"github.com/diewo77/stockbill/internal/apperr"
	"github.com/diewo77/stockbill/internal/models"
	"github.com/diewo77/stockbill/internal/money"
	"github.com/diewo77/stockbill/validation"

	"github.com/shopspring/decimal"
)

// Selection is one chosen stock item with the quantity to invoice. Name and
// Price are the snapshot values that end up on the invoice line.
type Selection struct {
	StockPublicID string
	Name          string
	Price         decimal.Decimal
	Quantity      int
}

type ComposeInput struct {
	CustomerName   string
	CustomerNumber string
	Selections     []Selection
	Discount       float64 // percentage 0..100
}

// InvoiceDraft is a fully computed but unpersisted invoice: every field is
// populated except identity and timestamp.
type InvoiceDraft struct {
	CustomerName   string
	CustomerNumber string
	Items          []models.InvoiceItem
	Subtotal       decimal.Decimal
	Discount       float64
	Total          decimal.Decimal
}

// ComposeInvoice computes line totals, subtotal, discount, and grand total.
// Pure computation: no storage access, no side effects.
func ComposeInvoice(in ComposeInput) (*InvoiceDraft, error) {
	v := validation.Violations{}
	validation.Required("customer_name", in.CustomerName, v)
	validation.Required("customer_number", in.CustomerNumber, v)
	validation.RangeFloat("discount", in.Discount, 0, 100, v)
	if len(in.Selections) == 0 {
		v["items"] = "required"
	}
	for _, sel := range in.Selections {
		if sel.Quantity <= 0 {
			v["items"] = "invalid_quantity"
		}
	}
	if !v.Empty() {
		return nil, &apperr.ValidationError{Violations: v}
	}

	draft := &InvoiceDraft{
		CustomerName:   in.CustomerName,
		CustomerNumber: in.CustomerNumber,
		Discount:       in.Discount,
	}
	subtotal := decimal.Zero
	for _, sel := range in.Selections {
		total := money.LineTotal(sel.Price, sel.Quantity)
		draft.Items = append(draft.Items, models.InvoiceItem{
			Name:     sel.Name,
			Price:    sel.Price,
			Quantity: sel.Quantity,
			Total:    total,
		})
		subtotal = subtotal.Add(total)
	}
	draft.Subtotal = subtotal
	draft.Total = subtotal.Sub(money.DiscountAmount(subtotal, in.Discount))
	return draft, nil
}
