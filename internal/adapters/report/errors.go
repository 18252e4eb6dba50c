package report

import "errors"

var (
	// ErrRenderPDF is returned when the evaluation PDF cannot be produced.
	ErrRenderPDF = errors.New("failed to render pdf report")
	// ErrRenderWorkbook is returned when the XLSX export cannot be produced.
	ErrRenderWorkbook = errors.New("failed to render workbook")
)
