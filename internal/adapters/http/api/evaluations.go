// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/staffscope/staffscope/internal/domain/model"
)

// EvaluationDependencies defines the interface for candidate evaluations.
type EvaluationDependencies interface {
	// EvaluateCandidate scores a submission and stores it under the session.
	// An empty token starts a new session; the returned token identifies it.
	EvaluateCandidate(ctx context.Context, sessionToken string, c model.Candidate) (model.Evaluation, string, error)

	// EvaluationReport renders the session's stored evaluation as a PDF.
	EvaluationReport(ctx context.Context, sessionToken string) ([]byte, error)
}

// EvaluationsHandler handles candidate evaluation requests.
type EvaluationsHandler struct {
	deps EvaluationDependencies
}

// NewEvaluationsHandler creates a new evaluations handler.
func NewEvaluationsHandler(deps EvaluationDependencies) *EvaluationsHandler {
	return &EvaluationsHandler{deps: deps}
}

// HandleSubmit handles POST /evaluations requests.
func (h *EvaluationsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_evaluation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var c model.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	eval, token, err := h.deps.EvaluateCandidate(r.Context(), r.Header.Get(SessionTokenHeader), c)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		if errors.Is(err, model.ErrSessionLimit) {
			writeError(w, http.StatusTooManyRequests, "session_limit", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	w.Header().Set(SessionTokenHeader, token)
	writeJSON(w, http.StatusCreated, evaluationResponse{Evaluation: eval, SessionToken: token})
}

// HandleReport handles GET /evaluations/report requests. The session token
// header selects which stored evaluation to render.
func (h *EvaluationsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_evaluation_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	token := r.Header.Get(SessionTokenHeader)
	if token == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	out, err := h.deps.EvaluationReport(r.Context(), token)
	if err != nil {
		if errors.Is(err, model.ErrNoEvaluation) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="employee_evaluation.pdf"`)
	w.Header().Set("Content-Length", fmt.Sprint(len(out)))
	_, _ = w.Write(out)
}
