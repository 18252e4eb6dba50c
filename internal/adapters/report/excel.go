package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/staffscope/staffscope/internal/adapters/dataset"
	"github.com/staffscope/staffscope/pkg/metrics"
)

const departmentsSheet = "Departments"

var departmentColumns = []string{
	"Department", "Employees", "Avg Productivity", "Avg Performance",
	"Avg Projects", "Avg Training Hours", "Avg Satisfaction",
	"Avg Overtime Hours", "Avg Sick Days", "Avg Promotions", "Avg Tenure (yrs)",
}

// RenderDepartmentWorkbook produces an XLSX workbook with one row per
// department summary, in the order the stats are given.
func RenderDepartmentWorkbook(stats []dataset.DepartmentStats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", departmentsSheet); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderWorkbook, err)
	}

	f.SetColWidth(departmentsSheet, "A", "A", 25)
	f.SetColWidth(departmentsSheet, "B", "K", 16)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderWorkbook, err)
	}

	for i, col := range departmentColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRenderWorkbook, err)
		}
		if err := f.SetCellValue(departmentsSheet, cell, col); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRenderWorkbook, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(departmentColumns), 1)
	if err := f.SetCellStyle(departmentsSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderWorkbook, err)
	}

	for i, st := range stats {
		row := i + 2
		values := []interface{}{
			st.Department, st.Employees,
			round2(st.MeanProductivity), round2(st.MeanPerformance),
			round2(st.MeanProjects), round2(st.MeanTraining),
			round2(st.MeanSatisfaction), round2(st.MeanOvertime),
			round2(st.MeanSickDays), round2(st.MeanPromotions),
			round2(st.MeanTenure),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrRenderWorkbook, err)
			}
			if err := f.SetCellValue(departmentsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrRenderWorkbook, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderWorkbook, err)
	}

	metrics.RecordExportRender()
	return buf.Bytes(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
