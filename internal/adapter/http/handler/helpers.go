package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iho/concilia/internal/adapter/http/dto"
	"github.com/iho/concilia/internal/domain"
	"github.com/iho/concilia/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidBackup):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyCSV):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// filterFromQuery builds an entry filter from the listing query parameters.
func filterFromQuery(r *http.Request) usecase.EntryFilter {
	q := r.URL.Query()

	filter := usecase.EntryFilter{
		Query:    q.Get("q"),
		Status:   domain.EntryStatus(q.Get("status")),
		Type:     domain.EntryType(q.Get("type")),
		Account:  q.Get("account"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
	}

	if v := q.Get("amount_min"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.AmountMin = &d
		}
	}
	if v := q.Get("amount_max"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.AmountMax = &d
		}
	}

	return filter
}

// separatorFromString returns the first rune of s, or 0 when s is empty so
// the codec default applies.
func separatorFromString(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
