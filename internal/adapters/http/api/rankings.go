// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/staffscope/staffscope/internal/domain/model"
)

// Default list sizes matching the analytics views.
const (
	defaultTopPerformers = 5
	defaultRankingLimit  = 10
)

// RankingDependencies defines the interface for ranking queries.
type RankingDependencies interface {
	TopPerformers(ctx context.Context, n int) ([]model.EmployeeRecord, error)
	AtRisk(ctx context.Context, n int) ([]model.EmployeeRecord, error)
	PromotionCandidates(ctx context.Context, n int) ([]model.EmployeeRecord, error)
	TrainingNeeds(ctx context.Context, n int) ([]model.EmployeeRecord, error)
	SickLeaveAlerts(ctx context.Context, n int) ([]model.EmployeeRecord, error)
}

// RankingsHandler handles ranking list requests.
type RankingsHandler struct {
	deps     RankingDependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingDependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleRanking handles GET /rankings/{view}?limit=N requests.
// Views: top-performers, at-risk, promotions, training, sick-leave.
func (h *RankingsHandler) HandleRanking(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_ranking"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view := strings.TrimPrefix(r.URL.Path, "/rankings/")

	var query func(context.Context, int) ([]model.EmployeeRecord, error)
	n := defaultRankingLimit
	switch view {
	case "top-performers":
		query = h.deps.TopPerformers
		n = defaultTopPerformers
	case "at-risk":
		query = h.deps.AtRisk
	case "promotions":
		query = h.deps.PromotionCandidates
	case "training":
		query = h.deps.TrainingNeeds
	case "sick-leave":
		query = h.deps.SickLeaveAlerts
	default:
		http.NotFound(w, r)
		return
	}

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

	records, err := query(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, records)
}
