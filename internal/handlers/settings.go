package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/stockbill/auth"
	"github.com/diewo77/stockbill/httpx"
	"github.com/diewo77/stockbill/internal/models"
	"github.com/diewo77/stockbill/internal/services"
)

type SettingsHandler struct {
	Svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Svc: svc}
}

type brandingResp struct {
	PrimaryColor     string                  `json:"primary_color"`
	SecondaryColor   string                  `json:"secondary_color"`
	FontFamily       string                  `json:"font_family"`
	TemplateID       string                  `json:"template_id"`
	LogoURL          string                  `json:"logo_url"`
	TemplateSettings models.TemplateSettings `json:"template_settings"`
}

func toBrandingResp(b *models.UserBranding) brandingResp {
	return brandingResp{
		PrimaryColor:     b.PrimaryColor,
		SecondaryColor:   b.SecondaryColor,
		FontFamily:       b.FontFamily,
		TemplateID:       b.TemplateID,
		LogoURL:          b.LogoURL,
		TemplateSettings: models.ParseTemplateSettings(b.TemplateSettings),
	}
}

// GetBranding: GET /settings/branding
func (h *SettingsHandler) GetBranding(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	b, err := h.Svc.GetBranding(owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toBrandingResp(b))
}

type brandingSaveReq struct {
	PrimaryColor     *string                       `json:"primary_color"`
	SecondaryColor   *string                       `json:"secondary_color"`
	FontFamily       *string                       `json:"font_family"`
	TemplateID       *string                       `json:"template_id"`
	LogoURL          *string                       `json:"logo_url"`
	TemplateSettings *models.TemplateSettingsPatch `json:"template_settings"`
}

// SaveBranding: PUT /settings/branding
//
// Absent fields keep their stored values; the template settings patch is
// merged field-wise, so saving one toggle never resets the others.
func (h *SettingsHandler) SaveBranding(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req brandingSaveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	b, err := h.Svc.SaveBranding(owner, services.BrandingInput{
		PrimaryColor:     req.PrimaryColor,
		SecondaryColor:   req.SecondaryColor,
		FontFamily:       req.FontFamily,
		TemplateID:       req.TemplateID,
		LogoURL:          req.LogoURL,
		TemplateSettings: req.TemplateSettings,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toBrandingResp(b))
}

type profileResp struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	TaxID       string `json:"tax_id"`
}

// GetProfile: GET /settings/profile
func (h *SettingsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	p, err := h.Svc.GetProfile(owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if p == nil {
		httpx.JSON(w, http.StatusOK, map[string]any{"profile": nil})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"profile": profileResp{
		CompanyName: p.CompanyName,
		Address:     p.Address,
		Phone:       p.Phone,
		Email:       p.Email,
		Website:     p.Website,
		TaxID:       p.TaxID,
	}})
}

// SaveProfile: PUT /settings/profile
func (h *SettingsHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req profileResp
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.Svc.SaveProfile(owner, services.ProfileInput{
		CompanyName: req.CompanyName,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		TaxID:       req.TaxID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"profile": profileResp{
		CompanyName: p.CompanyName,
		Address:     p.Address,
		Phone:       p.Phone,
		Email:       p.Email,
		Website:     p.Website,
		TaxID:       p.TaxID,
	}})
}
