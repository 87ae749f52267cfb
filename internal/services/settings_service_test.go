package services

import (
	"errors"
	"testing"

	"github.com/diewo77/stockbill/internal/apperr"
	"github.com/diewo77/stockbill/internal/models"
)

func TestGetBrandingCreatesDefaultsLazily(t *testing.T) {
	conn := setupServiceDB(t)
	user := seedUser(t, conn, "brand@test")
	svc := NewSettingsService(conn)

	b, err := svc.GetBranding(user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.PrimaryColor != "#3B82F6" || b.FontFamily != "Inter" {
		t.Errorf("unexpected defaults: %+v", b)
	}

	// Second access reuses the row instead of creating another.
	again, err := svc.GetBranding(user.ID)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.ID != b.ID {
		t.Errorf("branding duplicated: %d vs %d", again.ID, b.ID)
	}
	var count int64
	conn.Model(&models.UserBranding{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 branding row, got %d", count)
	}
}

func TestSaveBrandingMergesTemplateSettingsFieldWise(t *testing.T) {
	conn := setupServiceDB(t)
	user := seedUser(t, conn, "merge@test")
	svc := NewSettingsService(conn)

	// First save: turn the logo off and set a footer.
	off := false
	footerY := "Y"
	if _, err := svc.SaveBranding(user.ID, BrandingInput{
		TemplateSettings: &models.TemplateSettingsPatch{ShowCompanyLogo: &off, FooterText: &footerY},
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// Second save touches only the footer text.
	footerX := "X"
	saved, err := svc.SaveBranding(user.ID, BrandingInput{
		TemplateSettings: &models.TemplateSettingsPatch{FooterText: &footerX},
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	settings := models.ParseTemplateSettings(saved.TemplateSettings)
	if settings.ShowCompanyLogo {
		t.Error("showCompanyLogo was reset by an unrelated save")
	}
	if settings.FooterText != "X" {
		t.Errorf("footerText = %q, want X", settings.FooterText)
	}
	if settings.InvoiceNumberPrefix != "INV-" {
		t.Errorf("unspecified field blanked: %+v", settings)
	}
}

func TestSaveBrandingPartialColors(t *testing.T) {
	conn := setupServiceDB(t)
	user := seedUser(t, conn, "colors@test")
	svc := NewSettingsService(conn)

	primary := "#112233"
	saved, err := svc.SaveBranding(user.ID, BrandingInput{PrimaryColor: &primary})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.PrimaryColor != "#112233" {
		t.Errorf("primary = %q", saved.PrimaryColor)
	}
	if saved.SecondaryColor != "#EF4444" {
		t.Errorf("secondary changed by partial save: %q", saved.SecondaryColor)
	}
}

func TestSaveProfileUpsertsSingleRow(t *testing.T) {
	conn := setupServiceDB(t)
	user := seedUser(t, conn, "profile@test")
	svc := NewSettingsService(conn)

	if _, err := svc.SaveProfile(user.ID, ProfileInput{CompanyName: "First Co"}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := svc.SaveProfile(user.ID, ProfileInput{CompanyName: "Second Co", Phone: "123"})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second.CompanyName != "Second Co" {
		t.Errorf("company name = %q", second.CompanyName)
	}

	var count int64
	conn.Model(&models.CompanyProfile{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 profile row, got %d", count)
	}
}

func TestSaveProfileRequiresCompanyName(t *testing.T) {
	conn := setupServiceDB(t)
	user := seedUser(t, conn, "noname@test")
	svc := NewSettingsService(conn)
	var ve *apperr.ValidationError
	if _, err := svc.SaveProfile(user.ID, ProfileInput{}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGetProfileMissingIsNil(t *testing.T) {
	conn := setupServiceDB(t)
	user := seedUser(t, conn, "none@test")
	p, err := NewSettingsService(conn).GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil profile, got %+v", p)
	}
}
