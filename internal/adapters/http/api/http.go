// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/staffscope/staffscope/internal/adapters/dataset"
	"github.com/staffscope/staffscope/internal/adapters/email"
	"github.com/staffscope/staffscope/internal/domain/model"
)

// SessionTokenHeader carries the evaluation session token. The server issues
// one on the first submission; clients echo it to reach their stored result.
const SessionTokenHeader = "X-Session-Token"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RosterDependencies
	RankingDependencies
	DepartmentDependencies
	EvaluationDependencies
	EmailDependencies

	// Summary returns the dataset-wide KPI view.
	Summary(ctx context.Context) dataset.Summary
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	summaryHandler     *SummaryHandler
	employeesHandler   *EmployeesHandler
	rankingsHandler    *RankingsHandler
	departmentsHandler *DepartmentsHandler
	evaluationsHandler *EvaluationsHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps every
// client-supplied list limit.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		summaryHandler:     NewSummaryHandler(deps),
		employeesHandler:   NewEmployeesHandler(deps, deps, maxLimit),
		rankingsHandler:    NewRankingsHandler(deps, maxLimit),
		departmentsHandler: NewDepartmentsHandler(deps),
		evaluationsHandler: NewEvaluationsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))
	mux.HandleFunc("/employees", MetricsMiddleware(s.employeesHandler.HandleList, "employees"))
	mux.HandleFunc("/employees/", MetricsMiddleware(s.employeesHandler.HandleDetail, "employee"))
	mux.HandleFunc("/rankings/", MetricsMiddleware(s.rankingsHandler.HandleRanking, "rankings"))
	mux.HandleFunc("/departments/summary", MetricsMiddleware(s.departmentsHandler.HandleSummary, "departments"))
	mux.HandleFunc("/departments/summary.xlsx", MetricsMiddleware(s.departmentsHandler.HandleWorkbook, "departments_export"))
	mux.HandleFunc("/evaluations", MetricsMiddleware(s.evaluationsHandler.HandleSubmit, "evaluations"))
	mux.HandleFunc("/evaluations/report", MetricsMiddleware(s.evaluationsHandler.HandleReport, "evaluation_report"))
}

// employeeResponse is the detail shape for GET /employees/{id}.
type employeeResponse struct {
	Employee   model.EmployeeRecord `json:"employee"`
	Assessment model.Assessment     `json:"assessment"`
}

// evaluationResponse is the shape for POST /evaluations.
type evaluationResponse struct {
	Evaluation   model.Evaluation `json:"evaluation"`
	SessionToken string           `json:"session_token"`
}

// draftResponse is the shape for GET /employees/{id}/email.
type draftResponse struct {
	Draft email.Draft `json:"draft"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeValidationError returns 422 with the offending field called out.
func writeValidationError(w http.ResponseWriter, verr *model.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Code:    "validation_failed",
		Message: verr.Message,
		Field:   verr.Field,
	})
}
