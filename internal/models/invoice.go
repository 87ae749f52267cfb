package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoicing models
type Invoice struct {
	ID             uint            `gorm:"primaryKey"`
	PublicID       string          `gorm:"size:36;not null;uniqueIndex"`
	UserID         uint            `gorm:"not null;index"`
	CustomerName   string          `gorm:"not null"`
	CustomerNumber string          `gorm:"not null"`
	Items          []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount       float64         `gorm:"not null;default:0"` // percentage 0..100, invoice-level only
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
}

// InvoiceItem captures the product name, price and quantity at the moment the
// invoice was created. It is a snapshot, never a live reference: later edits
// or deletion of the StockItem do not alter it.
type InvoiceItem struct {
	ID        uint            `gorm:"primaryKey"`
	InvoiceID uint            `gorm:"not null;index"`
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
