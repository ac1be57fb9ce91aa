package domain

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoFileSelected      = errors.New("no file selected")
	ErrNoResult            = errors.New("no extraction result available")
	ErrExtractionInFlight  = errors.New("an extraction is already in progress")
	ErrExtractionFailed    = errors.New("extraction service call failed")
	ErrExportFailed        = errors.New("workbook export failed")
)
