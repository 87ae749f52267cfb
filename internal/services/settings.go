package services

import (
	"errors"

	"github.com/diewo77/stockbill/internal/apperr"
	"github.com/diewo77/stockbill/internal/models"
	"github.com/diewo77/stockbill/validation"

	"gorm.io/gorm"
)

// SettingsService manages the one-row-per-user branding and company profile
// records: lazy defaults on first read, field-wise upsert on save.
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService { return &SettingsService{DB: db} }

// GetBranding returns the owner's branding, creating the default row on
// first access.
func (s *SettingsService) GetBranding(ownerID uint) (*models.UserBranding, error) {
	var b models.UserBranding
	err := s.DB.Where("user_id = ?", ownerID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		b = models.UserBranding{
			UserID:         ownerID,
			PrimaryColor:   "#3B82F6",
			SecondaryColor: "#EF4444",
			FontFamily:     "Inter",
			TemplateID:     "modern",
		}
		if err := s.DB.Create(&b).Error; err != nil {
			return nil, &apperr.PersistenceError{Stage: "creating_branding", Err: err}
		}
		return &b, nil
	}
	if err != nil {
		return nil, &apperr.PersistenceError{Stage: "loading_branding", Err: err}
	}
	return &b, nil
}

// BrandingInput is a partial save; nil fields keep their current values.
type BrandingInput struct {
	PrimaryColor     *string
	SecondaryColor   *string
	FontFamily       *string
	TemplateID       *string
	LogoURL          *string
	TemplateSettings *models.TemplateSettingsPatch
}

// SaveBranding upserts the single row for the owner. Template settings are
// merged field by field over what is already persisted: a partial patch
// never blanks out unspecified toggles.
func (s *SettingsService) SaveBranding(ownerID uint, in BrandingInput) (*models.UserBranding, error) {
	b, err := s.GetBranding(ownerID)
	if err != nil {
		return nil, err
	}
	if in.PrimaryColor != nil {
		b.PrimaryColor = *in.PrimaryColor
	}
	if in.SecondaryColor != nil {
		b.SecondaryColor = *in.SecondaryColor
	}
	if in.FontFamily != nil {
		b.FontFamily = *in.FontFamily
	}
	if in.TemplateID != nil {
		b.TemplateID = *in.TemplateID
	}
	if in.LogoURL != nil {
		b.LogoURL = *in.LogoURL
	}
	if in.TemplateSettings != nil {
		merged := models.ParseTemplateSettings(b.TemplateSettings)
		merged.Apply(*in.TemplateSettings)
		b.TemplateSettings = merged.Serialize()
	}
	if err := s.DB.Save(b).Error; err != nil {
		return nil, &apperr.PersistenceError{Stage: "saving_branding", Err: err}
	}
	return b, nil
}

type ProfileInput struct {
	CompanyName string
	Address     string
	Phone       string
	Email       string
	Website     string
	TaxID       string
}

// GetProfile returns the owner's company profile, or nil when none is saved
// yet (unlike branding there is no useful default to lazily create).
func (s *SettingsService) GetProfile(ownerID uint) (*models.CompanyProfile, error) {
	var p models.CompanyProfile
	err := s.DB.Where("user_id = ?", ownerID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperr.PersistenceError{Stage: "loading_profile", Err: err}
	}
	return &p, nil
}

// SaveProfile inserts or overwrites the single profile row for the owner.
func (s *SettingsService) SaveProfile(ownerID uint, in ProfileInput) (*models.CompanyProfile, error) {
	v := validation.Violations{}
	validation.Required("company_name", in.CompanyName, v)
	if !v.Empty() {
		return nil, &apperr.ValidationError{Violations: v}
	}
	existing, err := s.GetProfile(ownerID)
	if err != nil {
		return nil, err
	}
	p := models.CompanyProfile{
		UserID:      ownerID,
		CompanyName: in.CompanyName,
		Address:     in.Address,
		Phone:       in.Phone,
		Email:       in.Email,
		Website:     in.Website,
		TaxID:       in.TaxID,
	}
	if existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, &apperr.PersistenceError{Stage: "saving_profile", Err: err}
	}
	return &p, nil
}
