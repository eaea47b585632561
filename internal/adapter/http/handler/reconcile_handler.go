package handler

import (
	"net/http"

	"github.com/iho/concilia/internal/adapter/http/dto"
	"github.com/iho/concilia/internal/usecase"
)

// ReconcileHandler handles matcher requests.
type ReconcileHandler struct {
	reconcileUC *usecase.ReconcileUseCase
}

// NewReconcileHandler creates a new ReconcileHandler.
func NewReconcileHandler(reconcileUC *usecase.ReconcileUseCase) *ReconcileHandler {
	return &ReconcileHandler{reconcileUC: reconcileUC}
}

// Suggest handles POST /api/v1/reconcile/suggest.
func (h *ReconcileHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconcileUC.Suggest(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to run matcher", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconcileFromUseCase(result))
}
