package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/iho/concilia/internal/adapter/http/dto"
	"github.com/iho/concilia/internal/usecase"
)

// ImportHandler handles CSV and JSON import requests.
type ImportHandler struct {
	importUC *usecase.ImportUseCase
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importUC *usecase.ImportUseCase) *ImportHandler {
	return &ImportHandler{importUC: importUC}
}

// ImportCSV handles POST /api/v1/import/csv.
func (h *ImportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportCSVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	n, err := h.importUC.ImportCSV(r.Context(), usecase.ImportCSVInput{
		Text:      req.Text,
		Separator: separatorFromString(req.Separator),
		Mapping:   req.Mapping,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import csv", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ImportResponse{Imported: n})
}

// ImportJSON handles POST /api/v1/import/json.
func (h *ImportHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	n, err := h.importUC.ImportJSON(r.Context(), data)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import json", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ImportResponse{Imported: n})
}

// Restore handles POST /api/v1/restore. Unlike ImportJSON it replaces the
// whole collection.
func (h *ImportHandler) Restore(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	n, err := h.importUC.Restore(r.Context(), data)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to restore backup", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ImportResponse{Imported: n})
}
