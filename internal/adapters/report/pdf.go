// Package report renders downloadable artifacts: the evaluation PDF and the
// department summary workbook.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/staffscope/staffscope/internal/domain/model"
	"github.com/staffscope/staffscope/pkg/metrics"
)

// Layout constants for the evaluation report.
const (
	titleHeight   = 10
	headerHeight  = 8
	lineHeight    = 6
	labelWidth    = 40
	scoreWidth    = 60
	bottomMargin  = 15
	bundleSpacing = 3
)

// PDFRenderer renders evaluation results into a single-page A4 report.
type PDFRenderer struct {
	now func() time.Time
}

// PDFOption applies a configuration option to the renderer.
type PDFOption func(*PDFRenderer)

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) PDFOption {
	return func(r *PDFRenderer) {
		if now != nil {
			r.now = now
		}
	}
}

// NewPDFRenderer creates a renderer with the real clock.
func NewPDFRenderer(opts ...PDFOption) *PDFRenderer {
	r := &PDFRenderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the PDF bytes for one evaluation.
func (r *PDFRenderer) Render(eval *model.Evaluation) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(r.now())
	pdf.SetModificationDate(r.now())
	pdf.AddPage()
	pdf.SetAutoPageBreak(true, bottomMargin)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, titleHeight, "Employee Evaluation Report", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Generated on: %s", r.now().Format("2006-01-02 15:04:05")), "", 1, "", false, 0, "")
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Employee ID: %s", eval.Candidate.EmployeeID), "", 1, "", false, 0, "")
	if eval.Candidate.Name != "" {
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("Employee Name: %s", eval.Candidate.Name), "", 1, "", false, 0, "")
	}
	pdf.Ln(5)

	r.sectionHeader(pdf, "1. Basic Information")
	r.labelled(pdf, labelWidth, "Department:", eval.Candidate.Department)
	r.labelled(pdf, labelWidth, "Job Title:", eval.Candidate.JobTitle)
	r.labelled(pdf, labelWidth, "Remote Work:", string(eval.Candidate.RemoteFrequency))
	pdf.Ln(5)

	r.sectionHeader(pdf, "2. Evaluation Scores")
	r.labelled(pdf, scoreWidth, "Predicted Performance Score:", fmt.Sprintf("%.1f/5", eval.Performance))
	r.labelled(pdf, scoreWidth, "Resignation Risk Score:", fmt.Sprintf("%.0f%%", eval.RiskScore))
	pdf.Ln(5)

	r.sectionHeader(pdf, "3. Key Metrics")
	for _, m := range []struct {
		label string
		value string
	}{
		{"Work Hours/Week", formatNumber(eval.Candidate.WorkHoursPerWeek)},
		{"Projects Handled", formatNumber(eval.Candidate.ProjectsHandled)},
		{"Training Hours", formatNumber(eval.Candidate.TrainingHours)},
		{"Overtime Hours", formatNumber(eval.Candidate.OvertimeHours)},
		{"Sick Days", formatNumber(eval.Candidate.SickDays)},
		{"Satisfaction Score", formatNumber(eval.Candidate.Satisfaction) + "/10"},
	} {
		r.labelled(pdf, scoreWidth, m.label+":", m.value)
	}
	pdf.Ln(5)

	r.sectionHeader(pdf, "4. Recommendations")
	for _, rec := range eval.Recommendations {
		text := rec.Title + ":"
		for _, item := range rec.Items {
			text += "\n- " + item
		}
		pdf.MultiCell(0, lineHeight, text, "", "", false)
		pdf.Ln(bundleSpacing)
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, lineHeight, "This report was generated automatically by the Employee Analytics Suite", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderPDF, err)
	}

	metrics.RecordReportRender()
	return buf.Bytes(), nil
}

func (r *PDFRenderer) sectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, headerHeight, title, "B", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
}

func (r *PDFRenderer) labelled(pdf *fpdf.Fpdf, width float64, label, value string) {
	pdf.CellFormat(width, lineHeight, label, "", 0, "", false, 0, "")
	pdf.CellFormat(0, lineHeight, value, "", 1, "", false, 0, "")
}

// formatNumber prints whole values without a decimal point.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
