// Package core provides the business logic for table extraction and
// consolidation. This package has no UI dependencies and can be used by any
// frontend.
//
// The pipeline is: raw file bytes -> ReadTable -> ExtractColumns or
// ExtractRange -> provenance tagging -> Consolidator -> ExportCSV /
// ExportWorkbook. Each uploaded file runs the pipeline independently;
// failures are recorded per file and never abort the rest of the batch.
//
// # Error Codes Reference
//
// MapError translates technical errors into user-friendly messages with
// codes for support reference. When operators encounter errors, they can
// quote the error code for faster diagnosis.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Unsupported format: file suffix is not recognized
//	          Action: Upload .csv, .txt, .xlsx, .xlsm or .xls files
//	          Patterns: "unsupported format"
//
//	FILE002 - Invalid CSV: file is not valid comma-separated text
//	          Action: Ensure the file is comma-separated with consistent quoting
//	          Patterns: "parse csv"
//
//	FILE003 - Invalid workbook: spreadsheet could not be read
//	          Action: Re-save the workbook as .xlsx and upload again
//	          Patterns: "read workbook"
//
//	FILE004 - Empty file: the file has no header row
//	          Action: Upload a file with a header row and data rows
//	          Patterns: "empty file"
//
//	FILE005 - File too large: file exceeds the size limit
//	          Action: Split the file into smaller chunks
//	          Patterns: "file exceeds"
//
//	FILE006 - No file: no file was selected
//	          Action: Select at least one file to upload
//	          Patterns: "no file provided"
//
// # Extraction Errors (EXT001-EXT099)
//
//	EXT001 - Missing columns: one or more required columns are absent
//	         Action: Check the file's header against the required column list
//	         Patterns: "missing columns"
//
//	EXT002 - Invalid range: the requested cell range is malformed
//	         Action: Check column letters and row numbers (e.g. F2:H6)
//	         Patterns: "invalid range"
//
// # Batch Errors (BATCH001-BATCH099)
//
//	BATCH001 - Nothing consolidated: every file in the batch failed
//	           Action: Review the per-file errors and re-upload
//	           Patterns: "nothing to export"
//
//	BATCH002 - Batch not found: the batch ID is unknown or expired
//	           Action: Run the consolidation again
//	           Patterns: "batch not found"
//
//	BATCH003 - Request cancelled or timed out
//	           Action: Try again with fewer or smaller files
//	           Patterns: "context canceled", "context deadline exceeded"
package core
