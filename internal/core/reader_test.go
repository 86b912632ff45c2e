package core

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		file string
		want FileKind
	}{
		{"data.csv", KindDelimited},
		{"data.txt", KindDelimited},
		{"DATA.CSV", KindDelimited},
		{"book.xlsx", KindWorkbook},
		{"book.xlsm", KindWorkbook},
		{"legacy.xls", KindWorkbook},
		{"notes.pdf", KindUnknown},
		{"noext", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			if got := DetectKind(tt.file); got != tt.want {
				t.Errorf("DetectKind(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestReadTable_UnsupportedFormat(t *testing.T) {
	_, err := ReadTable("relatorio.pdf", []byte("x"))

	var uf *UnsupportedFormatError
	if !errors.As(err, &uf) {
		t.Fatalf("error = %T, want *UnsupportedFormatError", err)
	}
	if uf.File != "relatorio.pdf" {
		t.Errorf("File = %q, want the offending file name", uf.File)
	}
}

func TestReadTable_CSV(t *testing.T) {
	data := []byte("K,Valor\nk1,1.5\nk2,\nk3,texto\n")

	got, err := ReadTable("cond.csv", data)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}

	if !reflect.DeepEqual(got.Columns, []string{"K", "Valor"}) {
		t.Errorf("Columns = %v", got.Columns)
	}
	if got.RowCount() != 3 {
		t.Fatalf("RowCount = %d, want 3", got.RowCount())
	}
	if got.Rows[0][1].Type != CellNumber || got.Rows[0][1].Number != 1.5 {
		t.Errorf("numeric cell = %+v, want number 1.5", got.Rows[0][1])
	}
	if got.Rows[1][1].Type != CellEmpty {
		t.Errorf("empty cell = %+v, want empty", got.Rows[1][1])
	}
	if got.Rows[2][1].Type != CellText || got.Rows[2][1].Text != "texto" {
		t.Errorf("text cell = %+v, want text %q", got.Rows[2][1], "texto")
	}
}

func TestReadTable_CSVWithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("K,V\nk1,2\n")...)

	got, err := ReadTable("bom.csv", data)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if got.Columns[0] != "K" {
		t.Errorf("first column = %q, want K (BOM stripped)", got.Columns[0])
	}
}

func TestReadTable_RaggedRowsPadded(t *testing.T) {
	data := []byte("A,B,C\n1,2\n1,2,3,4\n")

	got, err := ReadTable("ragged.txt", data)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	for i, row := range got.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(row))
		}
	}
	if got.Rows[0][2].Type != CellEmpty {
		t.Errorf("short row not padded: %+v", got.Rows[0][2])
	}
}

func TestReadTable_EmptyFile(t *testing.T) {
	_, err := ReadTable("vazio.csv", nil)
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("error = %v, want ErrEmptyFile", err)
	}
}

func TestReadTable_InvalidUTF8Sanitized(t *testing.T) {
	data := []byte("K,V\ncaf\xe9,1\n")

	got, err := ReadTable("latin1.csv", data)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if !strings.HasPrefix(got.Rows[0][0].Text, "caf") {
		t.Errorf("cell = %q, want sanitized text", got.Rows[0][0].Text)
	}
}

func TestReadTable_Workbook(t *testing.T) {
	// Build a workbook with the exporter and read it back; only the first
	// sheet is consumed.
	src := testTable(
		[]string{"K", "Valor"},
		[]string{"k1", "1.5"},
		[]string{"k2", "texto"},
	)
	extra := testTable([]string{"ignored"}, []string{"x"})

	data, err := ExportWorkbook([]NamedSheet{
		{Name: "dados", Table: src},
		{Name: "segunda", Table: extra},
	})
	if err != nil {
		t.Fatalf("ExportWorkbook() error = %v", err)
	}

	got, err := ReadTable("cond.xlsx", data)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if !reflect.DeepEqual(got.Columns, []string{"K", "Valor"}) {
		t.Errorf("Columns = %v, want first sheet header", got.Columns)
	}
	if got.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2", got.RowCount())
	}
	if got.Rows[0][1].Type != CellNumber || got.Rows[0][1].Number != 1.5 {
		t.Errorf("numeric cell = %+v, want number 1.5", got.Rows[0][1])
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"valid UTF-8 unchanged", []byte("hello world"), []byte("hello world")},
		{"valid unicode", []byte("duração"), []byte("duração")},
		{"invalid byte replaced", []byte{0x80}, []byte("�")},
		{"mixed valid and invalid", []byte("a\x80b"), []byte("a�b")},
		{"truncated multibyte sequence", []byte{0xc3}, []byte("�")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeUTF8(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sanitizeUTF8(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
