// Package model contains domain records passed between layers.
package model

import (
	"time"
)

// EmployeeRecord is one hired employee loaded from the dataset. Records are
// immutable for the process lifetime once the derivation pass has run.
type EmployeeRecord struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name,omitempty"`
	Department string    `json:"department"`
	JobTitle   string    `json:"job_title"`
	HireDate   time.Time `json:"hire_date"`

	PerformanceScore  float64 `json:"performance_score"`
	MonthlySalary     float64 `json:"monthly_salary"`
	WorkHoursPerWeek  float64 `json:"work_hours_per_week"`
	ProjectsHandled   int     `json:"projects_handled"`
	OvertimeHours     float64 `json:"overtime_hours"`
	SickDays          int     `json:"sick_days"`
	TeamSize          int     `json:"team_size"`
	TrainingHours     float64 `json:"training_hours"`
	Promotions        int     `json:"promotions"`
	SatisfactionScore float64 `json:"employee_satisfaction_score"`

	// Derived at load time.
	TenureYears         float64             `json:"tenure_years"`
	PerformanceCategory PerformanceCategory `json:"performance_category"`
	ProductivityScore   float64             `json:"productivity_score"`

	// LoadOrder preserves the original dataset position for stable tie-breaks.
	LoadOrder int `json:"-"`
}

// PerformanceCategory buckets a performance score.
type PerformanceCategory string

// Performance categories; boundaries are half-open (lo, hi].
const (
	CategoryLow    PerformanceCategory = "Low"    // score <= 2.5
	CategoryMedium PerformanceCategory = "Medium" // 2.5 < score <= 3.5
	CategoryHigh   PerformanceCategory = "High"   // score > 3.5
)

// RemoteFrequency describes how often a candidate works remotely.
type RemoteFrequency string

// Remote work frequency values, mirroring the evaluation form.
const (
	RemoteNever     RemoteFrequency = "Never"
	RemoteRarely    RemoteFrequency = "Rarely"
	RemoteSometimes RemoteFrequency = "Sometimes"
	RemoteOften     RemoteFrequency = "Often"
	RemoteAlways    RemoteFrequency = "Always"
)

// Valid reports whether f is one of the known frequencies.
func (f RemoteFrequency) Valid() bool {
	switch f {
	case RemoteNever, RemoteRarely, RemoteSometimes, RemoteOften, RemoteAlways:
		return true
	}
	return false
}

// Candidate is an ephemeral new-evaluation submission. It is scored but never
// persisted into the dataset. Promotions is fixed at zero (no history).
type Candidate struct {
	EmployeeID       string          `json:"employee_id" validate:"required,empid"`
	Name             string          `json:"name,omitempty"`
	Department       string          `json:"department" validate:"required"`
	JobTitle         string          `json:"job_title" validate:"required"`
	WorkHoursPerWeek float64         `json:"work_hours_per_week" validate:"required,gt=0"`
	ProjectsHandled  float64         `json:"projects_handled" validate:"required,gt=0"`
	TrainingHours    float64         `json:"training_hours" validate:"min=0"`
	OvertimeHours    float64         `json:"overtime_hours" validate:"min=0"`
	SickDays         float64         `json:"sick_days" validate:"min=0"`
	Satisfaction     float64         `json:"satisfaction" validate:"required,gte=1,lte=10"`
	RemoteFrequency  RemoteFrequency `json:"remote_frequency" validate:"required"`
}

// TenureYears derives a non-negative tenure from a hire date.
func TenureYears(hireDate, now time.Time) float64 {
	years := now.Sub(hireDate).Hours() / 24 / 365.25
	if years < 0 {
		return 0
	}
	return years
}
