// Package dataset holds the immutable in-memory employee dataset and the
// read-only ranking and aggregation queries served from it.
package dataset

import (
	"context"

	"github.com/staffscope/staffscope/internal/domain/model"
)

// DepartmentStats carries per-department means of the nine analytic metrics.
type DepartmentStats struct {
	Department string `json:"department"`
	Employees  int    `json:"employees"`

	MeanProductivity float64 `json:"mean_productivity_score"`
	MeanPerformance  float64 `json:"mean_performance_score"`
	MeanProjects     float64 `json:"mean_projects_handled"`
	MeanTraining     float64 `json:"mean_training_hours"`
	MeanSatisfaction float64 `json:"mean_satisfaction_score"`
	MeanOvertime     float64 `json:"mean_overtime_hours"`
	MeanSickDays     float64 `json:"mean_sick_days"`
	MeanPromotions   float64 `json:"mean_promotions"`
	MeanTenure       float64 `json:"mean_tenure_years"`
}

// Summary is the dataset-wide KPI view shown on the landing dashboard.
type Summary struct {
	TotalEmployees   int      `json:"total_employees"`
	DroppedRows      int      `json:"dropped_rows"`
	MeanPerformance  float64  `json:"mean_performance_score"`
	MeanSatisfaction float64  `json:"mean_satisfaction_score"`
	MeanProductivity float64  `json:"mean_productivity_score"`
	Departments      []string `json:"departments"`
}

// Store provides read access to the derived dataset. Implementations are
// immutable after Build; every method is safe for concurrent use.
type Store interface {
	// Get returns one employee by exact ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, employeeID string) (model.EmployeeRecord, error)

	// All returns every record in original load order.
	All(ctx context.Context) []model.EmployeeRecord

	// IDs returns every employee ID in original load order.
	IDs(ctx context.Context) []string

	// Count returns the number of loaded records.
	Count(ctx context.Context) int

	// Departments returns the distinct department names in first-seen order.
	Departments(ctx context.Context) []string

	// TopPerformers returns up to n records by performance score descending,
	// ties broken by original load order.
	TopPerformers(ctx context.Context, n int) ([]model.EmployeeRecord, error)

	// AtRisk returns up to n records by satisfaction score ascending.
	AtRisk(ctx context.Context, n int) ([]model.EmployeeRecord, error)

	// PromotionCandidates filters performance >= 4 and tenure >= 2, sorted by
	// performance descending, up to n records.
	PromotionCandidates(ctx context.Context, n int) ([]model.EmployeeRecord, error)

	// TrainingNeeds filters training < 20 or performance < 3, sorted by
	// training hours ascending, up to n records.
	TrainingNeeds(ctx context.Context, n int) ([]model.EmployeeRecord, error)

	// SickLeaveAlerts returns up to n records by sick days descending.
	SickLeaveAlerts(ctx context.Context, n int) ([]model.EmployeeRecord, error)

	// DepartmentMeans aggregates per-department metric means over the selected
	// departments. A nil or empty selection aggregates every department.
	DepartmentMeans(ctx context.Context, departments []string) []DepartmentStats

	// Summary returns the dataset-wide KPI view.
	Summary(ctx context.Context) Summary
}
