package handler

import (
	"net/http"

	"github.com/iho/concilia/internal/usecase"
)

// ExportHandler handles CSV and backup export requests.
type ExportHandler struct {
	exportUC *usecase.ExportUseCase
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportUC *usecase.ExportUseCase) *ExportHandler {
	return &ExportHandler{exportUC: exportUC}
}

// ExportCSV handles GET /api/v1/export/csv. The listing filter and sort
// query parameters apply, so the download matches what the caller sees.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	out, err := h.exportUC.ExportCSV(r.Context(), usecase.ExportCSVInput{
		Filter:    filterFromQuery(r),
		SortKey:   q.Get("sort"),
		SortDir:   q.Get("dir"),
		Separator: separatorFromString(q.Get("separator")),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to export csv", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="entries.csv"`)
	w.Write([]byte(out))
}

// Template handles GET /api/v1/export/template.
func (h *ExportHandler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="template.csv"`)
	w.Write([]byte(h.exportUC.Template()))
}

// Backup handles GET /api/v1/backup.
func (h *ExportHandler) Backup(w http.ResponseWriter, r *http.Request) {
	data, err := h.exportUC.Backup(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build backup", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
	w.Write(data)
}
