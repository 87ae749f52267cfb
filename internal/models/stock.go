package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is a sellable product with a tracked on-hand quantity.
// Quantity must never be negative after any committed operation; the only
// internal mutation is the conditional decrement run by the invoice workflow.
type StockItem struct {
	ID        uint            `gorm:"primaryKey"`
	PublicID  string          `gorm:"size:36;not null;uniqueIndex"` // uuid, the identity exposed to clients
	UserID    uint            `gorm:"not null;index"`               // owner; all reads/writes filter by this
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
