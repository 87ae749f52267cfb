package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/diewo77/stockbill/auth"
	"github.com/diewo77/stockbill/httpx"
	"github.com/diewo77/stockbill/internal/apperr"
	"github.com/diewo77/stockbill/internal/config"
	"github.com/diewo77/stockbill/internal/metrics"
	"github.com/diewo77/stockbill/internal/models"
	"github.com/diewo77/stockbill/internal/money"
	"github.com/diewo77/stockbill/internal/services"
	"github.com/diewo77/stockbill/pdf"

	"gorm.io/gorm"
)

type InvoiceHandler struct {
	DB       *gorm.DB
	Svc      *services.InvoiceService
	Settings *services.SettingsService
	Cfg      config.Config
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService, settings *services.SettingsService, cfg config.Config) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc, Settings: settings, Cfg: cfg}
}

type invoiceItemResp struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

type invoiceResp struct {
	ID             string            `json:"id"`
	CustomerName   string            `json:"customer_name"`
	CustomerNumber string            `json:"customer_number"`
	Items          []invoiceItemResp `json:"items"`
	Subtotal       float64           `json:"subtotal"`
	Discount       float64           `json:"discount"`
	Total          float64           `json:"total"`
	CreatedAt      string            `json:"created_at"`
}

func toInvoiceResp(inv models.Invoice) invoiceResp {
	out := invoiceResp{
		ID:             inv.PublicID,
		CustomerName:   inv.CustomerName,
		CustomerNumber: inv.CustomerNumber,
		Subtotal:       inv.Subtotal.InexactFloat64(),
		Discount:       inv.Discount,
		Total:          inv.Total.InexactFloat64(),
		CreatedAt:      inv.CreatedAt.UTC().Format(time.RFC3339),
		Items:          make([]invoiceItemResp, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, invoiceItemResp{
			Name:     it.Name,
			Price:    it.Price.InexactFloat64(),
			Quantity: it.Quantity,
			Total:    it.Total.InexactFloat64(),
		})
	}
	return out
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	invs, err := h.Svc.List(owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]invoiceResp, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvoiceResp(inv))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": out, "total": len(out)})
}

type invoiceLineReq struct {
	StockID  string `json:"stock_id"`
	Quantity int    `json:"quantity"`
}

type invoiceCreateReq struct {
	CustomerName   string           `json:"customer_name"`
	CustomerNumber string           `json:"customer_number"`
	Discount       float64          `json:"discount"`
	Items          []invoiceLineReq `json:"items"`
}

// Create: POST /invoices
//
// The handler snapshots name and price from the owner's live stock records;
// clients choose items and quantities, never prices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req invoiceCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if len(req.Items) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "required"})
		return
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		if it.StockID == "" || it.Quantity <= 0 {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "invalid_item_or_quantity"})
			return
		}
		ids = append(ids, it.StockID)
	}
	var stock []models.StockItem
	if err := h.DB.Where("user_id = ? AND public_id IN ?", owner, ids).Find(&stock).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "persistence_failed", nil)
		return
	}
	stockByID := map[string]models.StockItem{}
	for _, s := range stock {
		stockByID[s.PublicID] = s
	}

	in := services.ComposeInput{
		CustomerName:   req.CustomerName,
		CustomerNumber: req.CustomerNumber,
		Discount:       req.Discount,
	}
	for _, it := range req.Items {
		s, found := stockByID[it.StockID]
		if !found {
			httpx.JSONError(w, http.StatusNotFound, "not_found", map[string]string{"entity": "stock_item", "id": it.StockID})
			return
		}
		in.Selections = append(in.Selections, services.Selection{
			StockPublicID: s.PublicID,
			Name:          s.Name,
			Price:         s.Price,
			Quantity:      it.Quantity,
		})
	}

	inv, err := h.Svc.Create(owner, in)
	if err != nil {
		metrics.InvoiceFailures.WithLabelValues(failureReason(err)).Inc()
		writeServiceError(w, err)
		return
	}
	metrics.InvoicesCreated.Inc()
	httpx.JSON(w, http.StatusCreated, toInvoiceResp(*inv))
}

// Get: GET /invoices/get?id=...
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	inv, err := h.Svc.Get(owner, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toInvoiceResp(*inv))
}

// Delete: POST /invoices/delete
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.Delete(owner, req.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PDF: GET /invoices/pdf?id=...&preview=1
//
// A rendering failure is not an invoice failure: the invoice is already
// committed, so the caller can retry rendering alone.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	inv, err := h.Svc.Get(owner, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	branding, err := h.Settings.GetBranding(owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	profile, err := h.Settings.GetProfile(owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	settings := models.ParseTemplateSettings(branding.TemplateSettings)

	data, genErr := pdf.Invoice(pdf.InvoiceData{
		Invoice:   inv,
		Branding:  branding,
		Profile:   profile,
		Settings:  settings,
		Formatter: money.NewFormatter(settings.CurrencySymbol, h.Cfg.CurrencyLocale),
		IsPreview: r.URL.Query().Get("preview") == "1",
	})
	if genErr != nil {
		rerr := &apperr.RenderingError{Err: genErr}
		httpx.JSONError(w, http.StatusBadGateway, "pdf_generation_failed", map[string]string{"detail": rerr.Error()})
		return
	}
	metrics.PDFRendered.Inc()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(settings.InvoiceNumberPrefix, inv.PublicID)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
