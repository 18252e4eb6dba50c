package ingest

import "errors"

var (
	// ErrOpenDataset is returned when the dataset file cannot be opened.
	ErrOpenDataset = errors.New("failed to open dataset")
	// ErrParseDataset is returned when the CSV header cannot be read.
	ErrParseDataset = errors.New("failed to parse dataset")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
)
