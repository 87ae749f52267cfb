package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/diewo77/stockbill/auth"
	"github.com/diewo77/stockbill/httpx"
	"github.com/diewo77/stockbill/internal/models"
	"github.com/diewo77/stockbill/internal/services"

	"github.com/shopspring/decimal"
)

type StockHandler struct {
	Svc *services.StockService
}

func NewStockHandler(svc *services.StockService) *StockHandler { return &StockHandler{Svc: svc} }

type stockResp struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	CreatedAt string  `json:"created_at"`
}

func toStockResp(item models.StockItem) stockResp {
	return stockResp{
		ID:        item.PublicID,
		Name:      item.Name,
		Price:     item.Price.InexactFloat64(),
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List: GET /stock
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	items, err := h.Svc.List(owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]stockResp, 0, len(items))
	for _, it := range items {
		out = append(out, toStockResp(it))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": out, "total": len(out)})
}

type stockCreateReq struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Create: POST /stock
func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req stockCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	item, err := h.Svc.Create(owner, req.Name, decimal.NewFromFloat(req.Price), req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toStockResp(*item))
}

type stockUpdateReq struct {
	ID       string   `json:"id"`
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

// Update: POST /stock/update
func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req stockUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	patch := services.StockPatch{Name: req.Name, Quantity: req.Quantity}
	if req.Price != nil {
		p := decimal.NewFromFloat(*req.Price)
		patch.Price = &p
	}
	item, err := h.Svc.Update(owner, req.ID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toStockResp(*item))
}

// Delete: POST /stock/delete
func (h *StockHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
