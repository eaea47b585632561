package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/concilia/internal/adapter/http/dto"
	"github.com/iho/concilia/internal/usecase"
)

// EntryHandler handles entry CRUD and listing requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create handles POST /api/v1/entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entryUC.Create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// List handles GET /api/v1/entries.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.entryUC.List(r.Context(), usecase.ListEntriesInput{
		Filter:   filterFromQuery(r),
		SortKey:  q.Get("sort"),
		SortDir:  q.Get("dir"),
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryPageFromUseCase(page))
}

// Get handles GET /api/v1/entries/{id}.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.entryUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Update handles PUT /api/v1/entries/{id}.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entryUC.Update(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete handles DELETE /api/v1/entries/{id}.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.entryUC.Delete(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete entry", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Duplicate handles POST /api/v1/entries/{id}/duplicate.
func (h *EntryHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.entryUC.Duplicate(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to duplicate entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Clear handles DELETE /api/v1/entries.
func (h *EntryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.entryUC.Clear(r.Context()); err != nil {
		writeError(w, mapDomainError(err), "failed to clear entries", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/v1/entries/summary.
func (h *EntryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.entryUC.Summarize(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}

// Accounts handles GET /api/v1/entries/accounts.
func (h *EntryHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.entryUC.Accounts(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsResponse{Accounts: accounts})
}
