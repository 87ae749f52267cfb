package services

import (
	"errors"

	"github.com/diewo77/stockbill/internal/apperr"
	"github.com/diewo77/stockbill/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workflow stage names surfaced in PersistenceError so a caller always knows
// where a multi-step create failed.
const (
	StageValidating   = "validating"
	StageReserving    = "reserving"
	StageHeader       = "writing_header"
	StageItems        = "writing_items"
	StageDecrementing = "decrementing_stock"
)

// InvoiceService orchestrates invoice creation:
// validate -> reserve -> write -> commit. The write phase (header, line
// items, stock decrements, in that order) runs inside a single transaction,
// so a decrement that loses a race rolls everything back instead of leaving
// an orphaned header or a half-applied stock update.
type InvoiceService struct {
	DB    *gorm.DB
	Stock *StockService
}

func NewInvoiceService(db *gorm.DB, stock *StockService) *InvoiceService {
	return &InvoiceService{DB: db, Stock: stock}
}

func (s *InvoiceService) Create(ownerID uint, in ComposeInput) (*models.Invoice, error) {
	if ownerID == 0 {
		return nil, apperr.ErrMissingOwner
	}
	// Validating
	draft, err := ComposeInvoice(in)
	if err != nil {
		return nil, err
	}

	var inv models.Invoice
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Reserving: every selection must exist, belong to the owner, and
		// have enough stock. Nothing has been written yet when this fails.
		for _, sel := range in.Selections {
			var item models.StockItem
			err := tx.Where("user_id = ? AND public_id = ?", ownerID, sel.StockPublicID).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "stock_item", ID: sel.StockPublicID}
			}
			if err != nil {
				return &apperr.PersistenceError{Stage: StageReserving, Err: err}
			}
			if item.Quantity < sel.Quantity {
				return &apperr.InsufficientStockError{
					ItemID:    item.PublicID,
					Name:      item.Name,
					Requested: sel.Quantity,
					Available: item.Quantity,
				}
			}
		}

		// Writing: header first, then items, then decrements. The ordering is
		// a correctness requirement; the transaction makes it atomic.
		inv = models.Invoice{
			PublicID:       uuid.NewString(),
			UserID:         ownerID,
			CustomerName:   draft.CustomerName,
			CustomerNumber: draft.CustomerNumber,
			Subtotal:       draft.Subtotal,
			Discount:       draft.Discount,
			Total:          draft.Total,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return &apperr.PersistenceError{Stage: StageHeader, Err: err}
		}
		items := make([]models.InvoiceItem, len(draft.Items))
		copy(items, draft.Items)
		for i := range items {
			items[i].InvoiceID = inv.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return &apperr.PersistenceError{Stage: StageItems, Err: err}
		}
		inv.Items = items

		// The conditional decrement re-checks quantity at write time, so a
		// concurrent submission that drained the stock after Reserving still
		// fails cleanly here and aborts the whole invoice.
		for _, sel := range in.Selections {
			if _, err := s.Stock.Decrement(tx, ownerID, sel.StockPublicID, sel.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// List returns the owner's invoices newest-first with line items preloaded.
func (s *InvoiceService) List(ownerID uint) ([]models.Invoice, error) {
	invs := []models.Invoice{}
	if err := s.DB.Where("user_id = ?", ownerID).Preload("Items").Order("id desc").Find(&invs).Error; err != nil {
		return nil, &apperr.PersistenceError{Stage: "listing_invoices", Err: err}
	}
	return invs, nil
}

func (s *InvoiceService) Get(ownerID uint, publicID string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.Where("user_id = ? AND public_id = ?", ownerID, publicID).Preload("Items").First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "invoice", ID: publicID}
	}
	if err != nil {
		return nil, &apperr.PersistenceError{Stage: "loading_invoice", Err: err}
	}
	return &inv, nil
}

// Delete removes the invoice and its line items together. Stock is not
// restocked: deletion erases the record, not the sale.
func (s *InvoiceService) Delete(ownerID uint, publicID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		err := tx.Where("user_id = ? AND public_id = ?", ownerID, publicID).First(&inv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "invoice", ID: publicID}
		}
		if err != nil {
			return &apperr.PersistenceError{Stage: "loading_invoice", Err: err}
		}
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return &apperr.PersistenceError{Stage: "deleting_invoice_items", Err: err}
		}
		if err := tx.Delete(&inv).Error; err != nil {
			return &apperr.PersistenceError{Stage: "deleting_invoice", Err: err}
		}
		return nil
	})
}
