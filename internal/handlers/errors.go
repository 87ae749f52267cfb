package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/stockbill/httpx"
	"github.com/diewo77/stockbill/internal/apperr"
)

// writeServiceError maps the domain error taxonomy onto HTTP responses.
// Every failure carries enough detail for the UI to show an actionable
// message; nothing is swallowed.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string(ve.Violations))
		return
	}
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", map[string]string{"entity": nf.Entity, "id": nf.ID})
		return
	}
	var ise *apperr.InsufficientStockError
	if errors.As(err, &ise) {
		httpx.JSONError(w, http.StatusConflict, "insufficient_stock", map[string]any{
			"item_id":   ise.ItemID,
			"name":      ise.Name,
			"requested": ise.Requested,
			"available": ise.Available,
		})
		return
	}
	var pe *apperr.PersistenceError
	if errors.As(err, &pe) {
		httpx.JSONError(w, http.StatusInternalServerError, "persistence_failed", map[string]string{"stage": pe.Stage})
		return
	}
	if errors.Is(err, apperr.ErrMissingOwner) {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}

// failureReason labels invoice-creation failures for metrics.
func failureReason(err error) string {
	var ve *apperr.ValidationError
	var nf *apperr.NotFoundError
	var ise *apperr.InsufficientStockError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &nf):
		return "not_found"
	case errors.As(err, &ise):
		return "insufficient_stock"
	default:
		return "persistence"
	}
}
