package dataset

import (
	"context"
	"sort"
	"sync"

	"github.com/staffscope/staffscope/internal/domain/model"
	"github.com/staffscope/staffscope/pkg/metrics"
)

// Ranking filter thresholds, as served by the risk-and-growth views.
const (
	promotionListMinPerformance = 4.0
	promotionListMinTenure      = 2.0
	trainingListMaxHours        = 20.0
	trainingListMinPerformance  = 3.0
)

// Builder accumulates derived records during the load. Append is safe for
// concurrent use by the pipeline workers; Build freezes the dataset.
type Builder struct {
	mu          sync.Mutex
	rows        []model.EmployeeRecord
	droppedRows int
}

// NewBuilder creates an empty dataset builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Append adds one derived record.
func (b *Builder) Append(rec model.EmployeeRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = append(b.rows, rec)
}

// SetDroppedRows records how many raw rows failed coercion and were excluded.
func (b *Builder) SetDroppedRows(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.droppedRows = n
}

// Build freezes the accumulated records into an immutable store. Records are
// restored to original load order regardless of worker completion order.
func (b *Builder) Build(_ context.Context) *MemStore {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows := make([]model.EmployeeRecord, len(b.rows))
	copy(rows, b.rows)
	sort.Slice(rows, func(i, j int) bool { return rows[i].LoadOrder < rows[j].LoadOrder })

	byID := make(map[string]int, len(rows))
	var departments []string
	seenDept := make(map[string]bool)
	for i := range rows {
		if _, dup := byID[rows[i].EmployeeID]; !dup {
			byID[rows[i].EmployeeID] = i
		}
		if d := rows[i].Department; d != "" && !seenDept[d] {
			seenDept[d] = true
			departments = append(departments, d)
		}
	}

	metrics.UpdateDatasetRowsLoaded(len(rows))
	metrics.UpdateDatasetRowsDropped(b.droppedRows)

	return &MemStore{
		rows:        rows,
		byID:        byID,
		departments: departments,
		droppedRows: b.droppedRows,
	}
}

// MemStore is the immutable in-memory dataset. All queries operate on copies
// or fresh sort permutations; the underlying rows never change.
type MemStore struct {
	rows        []model.EmployeeRecord
	byID        map[string]int
	departments []string
	droppedRows int
}

var _ Store = (*MemStore)(nil)

// Get returns one employee by exact ID.
func (s *MemStore) Get(_ context.Context, employeeID string) (model.EmployeeRecord, error) {
	i, ok := s.byID[employeeID]
	if !ok {
		return model.EmployeeRecord{}, ErrNotFound
	}
	return s.rows[i], nil
}

// All returns every record in original load order.
func (s *MemStore) All(_ context.Context) []model.EmployeeRecord {
	out := make([]model.EmployeeRecord, len(s.rows))
	copy(out, s.rows)
	return out
}

// IDs returns every employee ID in original load order.
func (s *MemStore) IDs(_ context.Context) []string {
	out := make([]string, len(s.rows))
	for i := range s.rows {
		out[i] = s.rows[i].EmployeeID
	}
	return out
}

// Count returns the number of loaded records.
func (s *MemStore) Count(_ context.Context) int {
	return len(s.rows)
}

// Departments returns the distinct department names in first-seen order.
func (s *MemStore) Departments(_ context.Context) []string {
	out := make([]string, len(s.departments))
	copy(out, s.departments)
	return out
}

// DroppedRows returns how many raw rows were excluded at load time.
func (s *MemStore) DroppedRows() int {
	return s.droppedRows
}

// rank copies the selected rows and stable-sorts them by less. Ties keep the
// original load order because the input is already in load order.
func (s *MemStore) rank(n int, keep func(*model.EmployeeRecord) bool, less func(a, b *model.EmployeeRecord) bool) ([]model.EmployeeRecord, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	out := make([]model.EmployeeRecord, 0, len(s.rows))
	for i := range s.rows {
		if keep == nil || keep(&s.rows[i]) {
			out = append(out, s.rows[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })

	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// TopPerformers returns up to n records by performance score descending.
func (s *MemStore) TopPerformers(_ context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.rank(n, nil, func(a, b *model.EmployeeRecord) bool {
		return a.PerformanceScore > b.PerformanceScore
	})
}

// AtRisk returns up to n records by satisfaction score ascending.
func (s *MemStore) AtRisk(_ context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.rank(n, nil, func(a, b *model.EmployeeRecord) bool {
		return a.SatisfactionScore < b.SatisfactionScore
	})
}

// PromotionCandidates filters the promotion list gate and sorts by
// performance descending.
func (s *MemStore) PromotionCandidates(_ context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.rank(n, func(r *model.EmployeeRecord) bool {
		return r.PerformanceScore >= promotionListMinPerformance && r.TenureYears >= promotionListMinTenure
	}, func(a, b *model.EmployeeRecord) bool {
		return a.PerformanceScore > b.PerformanceScore
	})
}

// TrainingNeeds filters the training gate and sorts by training hours ascending.
func (s *MemStore) TrainingNeeds(_ context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.rank(n, func(r *model.EmployeeRecord) bool {
		return r.TrainingHours < trainingListMaxHours || r.PerformanceScore < trainingListMinPerformance
	}, func(a, b *model.EmployeeRecord) bool {
		return a.TrainingHours < b.TrainingHours
	})
}

// SickLeaveAlerts returns up to n records by sick days descending.
func (s *MemStore) SickLeaveAlerts(_ context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.rank(n, nil, func(a, b *model.EmployeeRecord) bool {
		return a.SickDays > b.SickDays
	})
}

// DepartmentMeans aggregates per-department metric means over the selection.
func (s *MemStore) DepartmentMeans(_ context.Context, departments []string) []DepartmentStats {
	selected := make(map[string]bool, len(departments))
	for _, d := range departments {
		selected[d] = true
	}

	sums := make(map[string]*DepartmentStats)
	var order []string
	for i := range s.rows {
		r := &s.rows[i]
		if len(selected) > 0 && !selected[r.Department] {
			continue
		}
		st, ok := sums[r.Department]
		if !ok {
			st = &DepartmentStats{Department: r.Department}
			sums[r.Department] = st
			order = append(order, r.Department)
		}
		st.Employees++
		st.MeanProductivity += r.ProductivityScore
		st.MeanPerformance += r.PerformanceScore
		st.MeanProjects += float64(r.ProjectsHandled)
		st.MeanTraining += r.TrainingHours
		st.MeanSatisfaction += r.SatisfactionScore
		st.MeanOvertime += r.OvertimeHours
		st.MeanSickDays += float64(r.SickDays)
		st.MeanPromotions += float64(r.Promotions)
		st.MeanTenure += r.TenureYears
	}

	out := make([]DepartmentStats, 0, len(order))
	for _, d := range order {
		st := sums[d]
		n := float64(st.Employees)
		st.MeanProductivity /= n
		st.MeanPerformance /= n
		st.MeanProjects /= n
		st.MeanTraining /= n
		st.MeanSatisfaction /= n
		st.MeanOvertime /= n
		st.MeanSickDays /= n
		st.MeanPromotions /= n
		st.MeanTenure /= n
		out = append(out, *st)
	}
	return out
}

// Summary returns the dataset-wide KPI view.
func (s *MemStore) Summary(ctx context.Context) Summary {
	sum := Summary{
		TotalEmployees: len(s.rows),
		DroppedRows:    s.droppedRows,
		Departments:    s.Departments(ctx),
	}
	if len(s.rows) == 0 {
		return sum
	}
	for i := range s.rows {
		sum.MeanPerformance += s.rows[i].PerformanceScore
		sum.MeanSatisfaction += s.rows[i].SatisfactionScore
		sum.MeanProductivity += s.rows[i].ProductivityScore
	}
	n := float64(len(s.rows))
	sum.MeanPerformance /= n
	sum.MeanSatisfaction /= n
	sum.MeanProductivity /= n
	return sum
}
