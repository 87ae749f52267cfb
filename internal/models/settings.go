package models

import (
	"encoding/json"
	"log"
)

// TemplateSettings are the display toggles applied by the invoice renderer.
// The JSON field names match the persisted blob format.
type TemplateSettings struct {
	ShowCompanyLogo         bool   `json:"showCompanyLogo"`
	ShowCompanyAddress      bool   `json:"showCompanyAddress"`
	ShowCompanyPhone        bool   `json:"showCompanyPhone"`
	ShowCompanyEmail        bool   `json:"showCompanyEmail"`
	ShowWebsite             bool   `json:"showWebsite"`
	ShowTaxID               bool   `json:"showTaxId"`
	HeaderBackgroundEnabled bool   `json:"headerBackgroundEnabled"`
	AlternatingRowColors    bool   `json:"alternatingRowColors"`
	ShowFooter              bool   `json:"showFooter"`
	FooterText              string `json:"footerText"`
	InvoiceNumberPrefix     string `json:"invoiceNumberPrefix"`
	DateFormat              string `json:"dateFormat"`
	CurrencySymbol          string `json:"currencySymbol"`
	FontSize                string `json:"fontSize"`    // small, normal, large
	LineSpacing             string `json:"lineSpacing"` // compact, normal, relaxed
}

// TemplateSettingsPatch is a partial override: nil fields are "not specified"
// and must not blank out the value they would replace.
type TemplateSettingsPatch struct {
	ShowCompanyLogo         *bool   `json:"showCompanyLogo"`
	ShowCompanyAddress      *bool   `json:"showCompanyAddress"`
	ShowCompanyPhone        *bool   `json:"showCompanyPhone"`
	ShowCompanyEmail        *bool   `json:"showCompanyEmail"`
	ShowWebsite             *bool   `json:"showWebsite"`
	ShowTaxID               *bool   `json:"showTaxId"`
	HeaderBackgroundEnabled *bool   `json:"headerBackgroundEnabled"`
	AlternatingRowColors    *bool   `json:"alternatingRowColors"`
	ShowFooter              *bool   `json:"showFooter"`
	FooterText              *string `json:"footerText"`
	InvoiceNumberPrefix     *string `json:"invoiceNumberPrefix"`
	DateFormat              *string `json:"dateFormat"`
	CurrencySymbol          *string `json:"currencySymbol"`
	FontSize                *string `json:"fontSize"`
	LineSpacing             *string `json:"lineSpacing"`
}

// DefaultTemplateSettings is the single source of defaults. Persisted
// overrides are merged over these field by field, never wholesale.
func DefaultTemplateSettings() TemplateSettings {
	return TemplateSettings{
		ShowCompanyLogo:         true,
		ShowCompanyAddress:      true,
		ShowCompanyPhone:        true,
		ShowCompanyEmail:        true,
		ShowWebsite:             true,
		ShowTaxID:               true,
		HeaderBackgroundEnabled: true,
		AlternatingRowColors:    true,
		ShowFooter:              true,
		FooterText:              "Thank you for your business!",
		InvoiceNumberPrefix:     "INV-",
		DateFormat:              "MM/DD/YYYY",
		CurrencySymbol:          "₹",
		FontSize:                "normal",
		LineSpacing:             "normal",
	}
}

// Apply overlays the patch onto s, field by field.
func (s *TemplateSettings) Apply(p TemplateSettingsPatch) {
	if p.ShowCompanyLogo != nil {
		s.ShowCompanyLogo = *p.ShowCompanyLogo
	}
	if p.ShowCompanyAddress != nil {
		s.ShowCompanyAddress = *p.ShowCompanyAddress
	}
	if p.ShowCompanyPhone != nil {
		s.ShowCompanyPhone = *p.ShowCompanyPhone
	}
	if p.ShowCompanyEmail != nil {
		s.ShowCompanyEmail = *p.ShowCompanyEmail
	}
	if p.ShowWebsite != nil {
		s.ShowWebsite = *p.ShowWebsite
	}
	if p.ShowTaxID != nil {
		s.ShowTaxID = *p.ShowTaxID
	}
	if p.HeaderBackgroundEnabled != nil {
		s.HeaderBackgroundEnabled = *p.HeaderBackgroundEnabled
	}
	if p.AlternatingRowColors != nil {
		s.AlternatingRowColors = *p.AlternatingRowColors
	}
	if p.ShowFooter != nil {
		s.ShowFooter = *p.ShowFooter
	}
	if p.FooterText != nil {
		s.FooterText = *p.FooterText
	}
	if p.InvoiceNumberPrefix != nil {
		s.InvoiceNumberPrefix = *p.InvoiceNumberPrefix
	}
	if p.DateFormat != nil {
		s.DateFormat = *p.DateFormat
	}
	if p.CurrencySymbol != nil {
		s.CurrencySymbol = *p.CurrencySymbol
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.LineSpacing != nil {
		s.LineSpacing = *p.LineSpacing
	}
}

// ParseTemplateSettings merges a persisted blob over the defaults. A blob may
// be partial (older revisions stored fewer fields). Corrupt content logs and
// falls back to defaults rather than failing the caller.
func ParseTemplateSettings(blob string) TemplateSettings {
	s := DefaultTemplateSettings()
	if blob == "" {
		return s
	}
	var p TemplateSettingsPatch
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		log.Printf("template settings: unparsable blob, using defaults: %v", err)
		return DefaultTemplateSettings()
	}
	s.Apply(p)
	return s
}

// Serialize renders the full merged set for persistence.
func (s TemplateSettings) Serialize() string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}
