package models

import (
	"testing"
)

func TestParseTemplateSettingsEmptyBlobIsDefaults(t *testing.T) {
	got := ParseTemplateSettings("")
	want := DefaultTemplateSettings()
	if got != want {
		t.Errorf("empty blob: got %+v, want defaults", got)
	}
}

func TestParseTemplateSettingsCorruptBlobFallsBack(t *testing.T) {
	got := ParseTemplateSettings("{not json")
	if got != DefaultTemplateSettings() {
		t.Errorf("corrupt blob should yield defaults, got %+v", got)
	}
}

func TestParseTemplateSettingsPartialBlobMergesFieldWise(t *testing.T) {
	got := ParseTemplateSettings(`{"showCompanyLogo":false,"footerText":"Y"}`)
	if got.ShowCompanyLogo {
		t.Error("showCompanyLogo override lost")
	}
	if got.FooterText != "Y" {
		t.Errorf("footerText = %q, want Y", got.FooterText)
	}
	// Unspecified fields keep their defaults.
	if !got.ShowFooter || got.InvoiceNumberPrefix != "INV-" || got.CurrencySymbol != "₹" {
		t.Errorf("unspecified fields were blanked: %+v", got)
	}
}

func TestApplyDoesNotBlankUnspecifiedFields(t *testing.T) {
	s := DefaultTemplateSettings()
	s.ShowCompanyLogo = false
	s.FooterText = "Y"

	text := "X"
	s.Apply(TemplateSettingsPatch{FooterText: &text})

	if s.ShowCompanyLogo {
		t.Error("saving footerText alone must not reset showCompanyLogo")
	}
	if s.FooterText != "X" {
		t.Errorf("footerText = %q, want X", s.FooterText)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	s := DefaultTemplateSettings()
	s.FooterText = "Custom footer"
	s.AlternatingRowColors = false
	got := ParseTemplateSettings(s.Serialize())
	if got != s {
		t.Errorf("round trip mismatch: got %+v want %+v", got, s)
	}
}
