// Package ingest loads the employee CSV dataset and applies the row-level
// coercion policy: rows with any unparseable required field are dropped whole
// and surfaced only as a count.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/staffscope/staffscope/internal/domain/model"
	"github.com/staffscope/staffscope/pkg/logger"
)

// Required dataset columns. Header matching is case-insensitive on the
// normalized snake_case name; Name is the only optional column.
const (
	colEmployeeID   = "employee_id"
	colName         = "name"
	colDepartment   = "department"
	colJobTitle     = "job_title"
	colHireDate     = "hire_date"
	colPerformance  = "performance_score"
	colSalary       = "monthly_salary"
	colWorkHours    = "work_hours_per_week"
	colProjects     = "projects_handled"
	colOvertime     = "overtime_hours"
	colSickDays     = "sick_days"
	colTeamSize     = "team_size"
	colTraining     = "training_hours"
	colPromotions   = "promotions"
	colSatisfaction = "employee_satisfaction_score"
)

var requiredColumns = []string{
	colEmployeeID, colDepartment, colJobTitle, colHireDate,
	colPerformance, colSalary, colWorkHours, colProjects, colOvertime,
	colSickDays, colTeamSize, colTraining, colPromotions, colSatisfaction,
}

// hireDateLayouts are tried in order when parsing Hire_Date values.
var hireDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Result carries the outcome of a dataset load.
type Result struct {
	Rows        []model.EmployeeRecord
	DroppedRows int
}

// Loader reads the employee CSV from a file path.
type Loader struct {
	path   string
	logger logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets a custom logger for the loader.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a Loader for the CSV at path.
func NewLoader(path string, opts ...Option) *Loader {
	ld := &Loader{
		path:   path,
		logger: logger.Get().Named("ingest"),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load reads and parses the dataset. A missing file or missing required
// column fails the whole load; individual malformed rows are dropped and
// counted.
func (ld *Loader) Load(ctx context.Context) (Result, error) {
	f, err := os.Open(ld.path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	defer f.Close()

	res, err := ld.parse(ctx, f)
	if err != nil {
		return Result{}, err
	}

	ld.logger.Info(ctx, "dataset loaded",
		logger.String("path", ld.path),
		logger.Int("rows", len(res.Rows)),
		logger.Int("dropped", res.DroppedRows),
	)
	return res, nil
}

// parse consumes CSV bytes from r. Split out from Load for testability.
func (ld *Loader) parse(ctx context.Context, r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("%w: reading header: %w", ErrParseDataset, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var res Result
	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.DroppedRows++
			continue
		}

		rec, ok := ld.coerceRow(row, cols)
		if !ok {
			res.DroppedRows++
			ld.logger.Debug(ctx, "dropped row", logger.Int("row", rowNum))
			continue
		}
		rec.LoadOrder = len(res.Rows)
		res.Rows = append(res.Rows, rec)
	}

	return res, nil
}

// coerceRow converts one CSV row. Any failed required coercion rejects the
// whole row; partial records are never produced.
func (ld *Loader) coerceRow(row []string, cols map[string]int) (model.EmployeeRecord, bool) {
	get := func(col string) (string, bool) {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var rec model.EmployeeRecord
	var ok bool

	if rec.EmployeeID, ok = get(colEmployeeID); !ok || rec.EmployeeID == "" {
		return rec, false
	}
	if rec.Department, ok = get(colDepartment); !ok || rec.Department == "" {
		return rec, false
	}
	if rec.JobTitle, ok = get(colJobTitle); !ok || rec.JobTitle == "" {
		return rec, false
	}
	if name, present := get(colName); present {
		rec.Name = name
	}

	raw, ok := get(colHireDate)
	if !ok {
		return rec, false
	}
	if rec.HireDate, ok = parseHireDate(raw); !ok {
		return rec, false
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{colPerformance, &rec.PerformanceScore},
		{colSalary, &rec.MonthlySalary},
		{colWorkHours, &rec.WorkHoursPerWeek},
		{colOvertime, &rec.OvertimeHours},
		{colTraining, &rec.TrainingHours},
		{colSatisfaction, &rec.SatisfactionScore},
	}
	for _, f := range floats {
		raw, ok := get(f.col)
		if !ok {
			return rec, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rec, false
		}
		*f.dst = v
	}

	ints := []struct {
		col string
		dst *int
	}{
		{colProjects, &rec.ProjectsHandled},
		{colSickDays, &rec.SickDays},
		{colTeamSize, &rec.TeamSize},
		{colPromotions, &rec.Promotions},
	}
	for _, f := range ints {
		raw, ok := get(f.col)
		if !ok {
			return rec, false
		}
		// Integer columns sometimes arrive as "3.0"; coerce via float.
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rec, false
		}
		*f.dst = int(v)
	}

	return rec, true
}

func parseHireDate(raw string) (time.Time, bool) {
	for _, layout := range hireDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeHeader lowercases a header and replaces spaces with underscores,
// so Employee_ID, employee_id, and "Employee ID" all match.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	return strings.ReplaceAll(h, " ", "_")
}
