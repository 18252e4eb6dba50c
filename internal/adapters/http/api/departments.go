// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/staffscope/staffscope/internal/adapters/dataset"
)

// DepartmentDependencies defines the interface for department aggregation.
type DepartmentDependencies interface {
	// DepartmentMeans aggregates metric means over the selected departments.
	// An empty selection covers every department.
	DepartmentMeans(ctx context.Context, departments []string) []dataset.DepartmentStats

	// DepartmentWorkbook renders the selection as an XLSX workbook.
	DepartmentWorkbook(ctx context.Context, departments []string) ([]byte, error)
}

// DepartmentsHandler handles department aggregation requests.
type DepartmentsHandler struct {
	deps DepartmentDependencies
}

// NewDepartmentsHandler creates a new departments handler.
func NewDepartmentsHandler(deps DepartmentDependencies) *DepartmentsHandler {
	return &DepartmentsHandler{deps: deps}
}

// HandleSummary handles GET /departments/summary?departments=A,B requests.
func (h *DepartmentsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := h.deps.DepartmentMeans(r.Context(), selectedDepartments(r))
	writeJSON(w, http.StatusOK, stats)
}

// HandleWorkbook handles GET /departments/summary.xlsx requests.
func (h *DepartmentsHandler) HandleWorkbook(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_departments"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out, err := h.deps.DepartmentWorkbook(r.Context(), selectedDepartments(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="department_summary.xlsx"`)
	w.Header().Set("Content-Length", fmt.Sprint(len(out)))
	_, _ = w.Write(out)
}

// selectedDepartments parses the comma-separated departments query parameter.
func selectedDepartments(r *http.Request) []string {
	raw := r.URL.Query().Get("departments")
	if raw == "" {
		return nil
	}
	var selected []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			selected = append(selected, d)
		}
	}
	return selected
}
