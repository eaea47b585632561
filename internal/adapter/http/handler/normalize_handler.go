package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/concilia/internal/adapter/http/dto"
	"github.com/iho/concilia/internal/usecase"
)

// NormalizeHandler handles bulk normalization requests.
type NormalizeHandler struct {
	normalizeUC *usecase.NormalizeUseCase
}

// NewNormalizeHandler creates a new NormalizeHandler.
func NewNormalizeHandler(normalizeUC *usecase.NormalizeUseCase) *NormalizeHandler {
	return &NormalizeHandler{normalizeUC: normalizeUC}
}

// Normalize handles POST /api/v1/normalize.
func (h *NormalizeHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req dto.NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	changed, err := h.normalizeUC.Run(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to normalize entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NormalizeResponse{Changed: changed})
}
