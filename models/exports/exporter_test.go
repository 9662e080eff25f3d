package exports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []Row {
	return []Row{
		{
			{Label: "Name", Value: "Rice 25kg"},
			{Label: "Unit Price", Value: decimal.NewFromInt(42000)},
			{Label: "Active", Value: true},
		},
		{
			{Label: "Name", Value: "Oil 1L, premium"},
			{Label: "Unit Price", Value: decimal.RequireFromString("5500.5")},
			{Label: "Active", Value: false},
		},
	}
}

func parseCsv(t *testing.T, artifact []byte) [][]string {
	t.Helper()
	if !bytes.HasPrefix(artifact, csvBom) {
		t.Fatalf("artifact missing utf-8 BOM")
	}
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(artifact, csvBom))).ReadAll()
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	return records
}

func TestCsvRoundTrip(t *testing.T) {
	rows := sampleRows()
	artifact, err := Export(rows, FormatCsv, "Products")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records := parseCsv(t, artifact)
	if len(records) != len(rows)+1 {
		t.Fatalf("got %d lines, want %d", len(records), len(rows)+1)
	}
	wantHeader := []string{"Name", "Unit Price", "Active"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header %d = %q, want %q", i, records[0][i], h)
		}
	}
	if records[1][1] != "42000" || records[2][1] != "5500.5" {
		t.Errorf("decimal cells = %q %q", records[1][1], records[2][1])
	}
	if records[1][2] != "Yes" || records[2][2] != "No" {
		t.Errorf("bool cells = %q %q", records[1][2], records[2][2])
	}
	// the comma inside the value survives quoting
	if records[2][0] != "Oil 1L, premium" {
		t.Errorf("quoted cell = %q", records[2][0])
	}
}

func TestExportEmptyRows(t *testing.T) {
	for _, format := range []Format{FormatCsv, FormatXlsx} {
		if _, err := Export(nil, format, "Empty"); !errors.Is(err, ErrNoRows) {
			t.Errorf("%s: got %v, want ErrNoRows", format, err)
		}
		if _, err := Export([]Row{}, format, "Empty"); !errors.Is(err, ErrNoRows) {
			t.Errorf("%s: got %v, want ErrNoRows", format, err)
		}
	}
}

func TestFirstRowDefinesSchema(t *testing.T) {
	rows := []Row{
		{{Label: "A", Value: "a1"}, {Label: "B", Value: "b1"}},
		{{Label: "A", Value: "a2"}, {Label: "C", Value: "dropped"}}, // missing B, extra C
	}
	artifact, err := Export(rows, FormatCsv, "Sheet")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records := parseCsv(t, artifact)
	if len(records[0]) != 2 {
		t.Fatalf("header width = %d, want 2", len(records[0]))
	}
	if records[2][0] != "a2" || records[2][1] != "" {
		t.Errorf("second row = %v", records[2])
	}
	for _, cell := range records[2] {
		if cell == "dropped" {
			t.Errorf("extra label leaked into output")
		}
	}
}

func TestXlsxReadBack(t *testing.T) {
	rows := sampleRows()
	artifact, err := Export(rows, FormatXlsx, "Products")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(artifact))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows("Products")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(got) != len(rows)+1 {
		t.Fatalf("got %d rows, want %d", len(got), len(rows)+1)
	}
	wantHeader := []string{"Name", "Unit Price", "Active"}
	for i, h := range wantHeader {
		if got[0][i] != h {
			t.Errorf("header %d = %q, want %q", i, got[0][i], h)
		}
	}
	if got[1][0] != "Rice 25kg" {
		t.Errorf("data cell = %q", got[1][0])
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	if got := Filename("orders", FormatXlsx, at); got != "orders_2026-08-31.xlsx" {
		t.Errorf("got %q", got)
	}
	if got := Filename("customers", FormatCsv, at); got != "customers_2026-08-31.csv" {
		t.Errorf("got %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("csv"); err != nil || f != FormatCsv {
		t.Errorf("csv: %v %v", f, err)
	}
	if f, err := ParseFormat("xlsx"); err != nil || f != FormatXlsx {
		t.Errorf("xlsx: %v %v", f, err)
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Errorf("expected error for pdf")
	}
}

func TestStringify(t *testing.T) {
	date := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"plain", "plain"},
		{decimal.RequireFromString("12.34"), "12.34"},
		{date, "2026-01-02"},
		{true, "Yes"},
		{false, "No"},
		{7, "7"},
	}
	for _, tc := range cases {
		if got := stringify(tc.in); got != tc.want {
			t.Errorf("stringify(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
