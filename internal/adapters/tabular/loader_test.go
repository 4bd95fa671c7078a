package tabular_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/csvchat/csvchat-go/internal/adapters/tabular"
	"github.com/csvchat/csvchat-go/internal/domain"
)

func TestLoad_CSV(t *testing.T) {
	src := "Product,Units,Note\nGadget-7,19,fragile\nWidget-3,12,\n"

	table, err := tabular.Load("orders.csv", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Table{
		Columns:     []string{"Product", "Units", "Note"},
		Rows:        [][]string{{"Gadget-7", "19", "fragile"}, {"Widget-3", "12", ""}},
		NumericCols: []int{1},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CSVHeaderOnly(t *testing.T) {
	table, err := tabular.Load("empty.csv", strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(table.Rows))
	}
	if len(table.NumericCols) != 0 {
		t.Errorf("expected no numeric columns, got %v", table.NumericCols)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	_, err := tabular.Load("empty.csv", strings.NewReader(""))
	if !errors.Is(err, domain.ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
}

func TestLoad_RaggedCSV(t *testing.T) {
	_, err := tabular.Load("bad.csv", strings.NewReader("a,b\n1\n2,3,4\n"))
	if !errors.Is(err, domain.ErrMalformedFile) {
		t.Errorf("expected ErrMalformedFile, got %v", err)
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"notes.txt", "archive.zip", "noext"} {
		_, err := tabular.Load(name, strings.NewReader("a,b\n1,2\n"))
		if !errors.Is(err, domain.ErrUnsupportedFormat) {
			t.Errorf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestLoad_Workbook(t *testing.T) {
	f := excelize.NewFile()
	cells := map[string]any{
		"A1": "Product", "B1": "Units",
		"A2": "Gadget-7", "B2": 19,
		"A3": "Widget-3", "B3": 12,
	}
	for cell, value := range cells {
		if err := f.SetCellValue("Sheet1", cell, value); err != nil {
			t.Fatalf("set cell %s: %v", cell, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	table, err := tabular.Load("orders.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Table{
		Columns:     []string{"Product", "Units"},
		Rows:        [][]string{{"Gadget-7", "19"}, {"Widget-3", "12"}},
		NumericCols: []int{1},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_WorkbookGarbage(t *testing.T) {
	_, err := tabular.Load("orders.xlsx", strings.NewReader("not a zip archive"))
	if !errors.Is(err, domain.ErrMalformedFile) {
		t.Errorf("expected ErrMalformedFile, got %v", err)
	}
}
