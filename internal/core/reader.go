package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// FileKind identifies how a file's bytes are parsed.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindDelimited
	KindWorkbook
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmptyFile indicates a file with no header row.
var ErrEmptyFile = errors.New("empty file")

// DetectKind determines the file kind from the file name suffix.
// Recognized: .csv/.txt (delimited text) and .xlsx/.xlsm/.xls (workbook).
func DetectKind(fileName string) FileKind {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt":
		return KindDelimited
	case ".xlsx", ".xlsm", ".xls":
		return KindWorkbook
	default:
		return KindUnknown
	}
}

// ReadTable parses a file's bytes into a Table. The first row is always the
// header; ragged data rows are padded to the header width. Unrecognized
// suffixes fail with UnsupportedFormatError naming the file.
func ReadTable(fileName string, data []byte) (*Table, error) {
	switch DetectKind(fileName) {
	case KindDelimited:
		return readDelimited(data)
	case KindWorkbook:
		return readWorkbook(data)
	default:
		return nil, &UnsupportedFormatError{File: fileName}
	}
}

// readDelimited parses comma-separated UTF-8 text, stripping an optional
// byte-order mark and replacing invalid byte sequences.
func readDelimited(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = sanitizeUTF8(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return fromRecords(records)
}

// readWorkbook parses a spreadsheet workbook, reading the first sheet only
// regardless of sheet count.
func readWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read workbook sheet %q: %w", sheet, err)
	}
	return fromRecords(rows)
}

// fromRecords builds a Table from raw string rows, treating the first row as
// the header.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	t := NewTable(columns)
	for _, rec := range records[1:] {
		cells := make([]Cell, 0, len(rec))
		for _, raw := range rec {
			cells = append(cells, ParseCell(raw))
		}
		t.AppendRow(cells)
	}
	return t, nil
}

// sanitizeUTF8 replaces invalid UTF-8 byte sequences with the replacement
// character so downstream string handling is always valid.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
