// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/staffscope/staffscope/internal/adapters/dataset"
	"github.com/staffscope/staffscope/internal/adapters/email"
	"github.com/staffscope/staffscope/internal/domain/model"
)

// RosterDependencies defines the interface for employee roster reads.
type RosterDependencies interface {
	// Employees returns up to limit records in original load order.
	Employees(ctx context.Context, limit int) ([]model.EmployeeRecord, error)

	// Employee returns one record with its derived assessment.
	Employee(ctx context.Context, employeeID string) (model.EmployeeRecord, model.Assessment, error)
}

// EmailDependencies defines the interface for outreach draft generation.
type EmailDependencies interface {
	EmailDraft(ctx context.Context, employeeID string, scenario email.Scenario, recipient string) (email.Draft, error)
}

// EmployeesHandler handles employee roster and detail requests.
type EmployeesHandler struct {
	roster   RosterDependencies
	drafts   EmailDependencies
	maxLimit int
}

// NewEmployeesHandler creates a new employees handler.
func NewEmployeesHandler(roster RosterDependencies, drafts EmailDependencies, maxLimit int) *EmployeesHandler {
	return &EmployeesHandler{
		roster:   roster,
		drafts:   drafts,
		maxLimit: maxLimit,
	}
}

// HandleList handles GET /employees?limit=N requests. The limit defaults to
// the configured maximum.
func (h *EmployeesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_employees"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if parsed > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		n = parsed
	}
	records, err := h.roster.Employees(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleDetail dispatches GET /employees/{id} and GET /employees/{id}/email.
func (h *EmployeesHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_employee"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/employees/")
	if rest, ok := strings.CutSuffix(path, "/email"); ok {
		h.handleEmail(w, r, rest)
		return
	}
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	rec, assessment, err := h.roster.Employee(r.Context(), path)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, employeeResponse{Employee: rec, Assessment: assessment})
}

// handleEmail handles GET /employees/{id}/email?scenario=S&recipient=R.
func (h *EmployeesHandler) handleEmail(w http.ResponseWriter, r *http.Request, employeeID string) {
	const op = "api.get_email_draft"
	if employeeID == "" || strings.Contains(employeeID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	scenario := email.Scenario(r.URL.Query().Get("scenario"))
	if !scenario.Valid() {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, email.ErrUnknownScenario))
		return
	}
	draft, err := h.drafts.EmailDraft(r.Context(), employeeID, scenario, r.URL.Query().Get("recipient"))
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: draft})
}
