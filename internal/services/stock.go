package services

import (
	"errors"

	"github.com/diewo77/stockbill/internal/apperr"
	"github.com/diewo77/stockbill/internal/models"
	"github.com/diewo77/stockbill/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockService owns the stock ledger. Every operation takes the owner id
// explicitly; nothing here reads ambient auth state.
type StockService struct {
	DB *gorm.DB
}

func NewStockService(db *gorm.DB) *StockService { return &StockService{DB: db} }

// List returns the owner's items, most recently created first. An empty
// ledger is not an error.
func (s *StockService) List(ownerID uint) ([]models.StockItem, error) {
	items := []models.StockItem{}
	if err := s.DB.Where("user_id = ?", ownerID).Order("id desc").Find(&items).Error; err != nil {
		return nil, &apperr.PersistenceError{Stage: "listing_stock", Err: err}
	}
	return items, nil
}

// Create validates and inserts a new item. Quantity may be zero; price must
// be strictly positive.
func (s *StockService) Create(ownerID uint, name string, price decimal.Decimal, quantity int) (*models.StockItem, error) {
	v := validation.Violations{}
	validation.Required("name", name, v)
	validation.PositiveDecimal("price", price, v)
	validation.NonNegativeInt("quantity", quantity, v)
	if !v.Empty() {
		return nil, &apperr.ValidationError{Violations: v}
	}
	item := models.StockItem{
		PublicID: uuid.NewString(),
		UserID:   ownerID,
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, &apperr.PersistenceError{Stage: "creating_stock_item", Err: err}
	}
	return &item, nil
}

// StockPatch carries a partial update; nil fields are left untouched.
type StockPatch struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int
}

// Update applies a partial edit. Changing price or quantity never touches
// line items of previously persisted invoices (they are snapshots).
func (s *StockService) Update(ownerID uint, publicID string, patch StockPatch) (*models.StockItem, error) {
	item, err := s.get(s.DB, ownerID, publicID)
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	if patch.Name != nil {
		validation.Required("name", *patch.Name, v)
	}
	if patch.Price != nil {
		validation.PositiveDecimal("price", *patch.Price, v)
	}
	if patch.Quantity != nil {
		validation.NonNegativeInt("quantity", *patch.Quantity, v)
	}
	if !v.Empty() {
		return nil, &apperr.ValidationError{Violations: v}
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if err := s.DB.Save(item).Error; err != nil {
		return nil, &apperr.PersistenceError{Stage: "updating_stock_item", Err: err}
	}
	return item, nil
}

// Delete removes the item. Historical invoices keep their captured line
// values and are unaffected.
func (s *StockService) Delete(ownerID uint, publicID string) error {
	res := s.DB.Where("user_id = ? AND public_id = ?", ownerID, publicID).Delete(&models.StockItem{})
	if res.Error != nil {
		return &apperr.PersistenceError{Stage: "deleting_stock_item", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperr.NotFoundError{Entity: "stock_item", ID: publicID}
	}
	return nil
}

// Decrement subtracts amount from the on-hand quantity with a single
// conditional update: the row changes only if quantity >= amount. The store
// executes it atomically, so two concurrent invoice submissions can never
// drive the quantity negative. Callers inside the invoice workflow pass
// their transaction handle.
func (s *StockService) Decrement(tx *gorm.DB, ownerID uint, publicID string, amount int) (int, error) {
	if tx == nil {
		tx = s.DB
	}
	res := tx.Model(&models.StockItem{}).
		Where("user_id = ? AND public_id = ? AND quantity >= ?", ownerID, publicID, amount).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return 0, &apperr.PersistenceError{Stage: "decrementing_stock", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		// Either the item is gone or the stock ran short; re-read to tell.
		item, err := s.get(tx, ownerID, publicID)
		if err != nil {
			return 0, err
		}
		return 0, &apperr.InsufficientStockError{
			ItemID:    item.PublicID,
			Name:      item.Name,
			Requested: amount,
			Available: item.Quantity,
		}
	}
	item, err := s.get(tx, ownerID, publicID)
	if err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

func (s *StockService) get(tx *gorm.DB, ownerID uint, publicID string) (*models.StockItem, error) {
	var item models.StockItem
	err := tx.Where("user_id = ? AND public_id = ?", ownerID, publicID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "stock_item", ID: publicID}
	}
	if err != nil {
		return nil, &apperr.PersistenceError{Stage: "loading_stock_item", Err: err}
	}
	return &item, nil
}
