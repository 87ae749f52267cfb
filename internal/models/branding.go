package models

import "time"

// UserBranding holds per-user display configuration consumed by the PDF
// renderer. One row per user, created lazily with defaults on first access
// and upserted on save.
type UserBranding struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;uniqueIndex"`
	PrimaryColor   string `gorm:"size:7;not null;default:'#3B82F6'"`
	SecondaryColor string `gorm:"size:7;not null;default:'#EF4444'"`
	FontFamily     string `gorm:"not null;default:'Inter'"`
	TemplateID     string `gorm:"not null;default:'modern'"`
	LogoURL        string
	// TemplateSettings is a serialized JSON blob of display toggles.
	// Corrupt content falls back to defaults, it never crashes the caller.
	TemplateSettings string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CompanyProfile is the company identity printed on invoices. Same one-row-
// per-user upsert discipline as UserBranding; only CompanyName is required.
type CompanyProfile struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;uniqueIndex"`
	CompanyName string `gorm:"not null"`
	Address     string
	Phone       string
	Email       string
	Website     string
	TaxID       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
