package services

import "errors"

// Dataset service errors
var (
	ErrNoDataset         = errors.New("no dataset loaded")
	ErrEmptyDataset      = errors.New("dataset contains no rows")
	ErrColumnNotFound    = errors.New("column not found")
	ErrUnsupportedFormat = errors.New("unsupported dataset file format")
	ErrMalformedDataset  = errors.New("dataset could not be parsed")
)
