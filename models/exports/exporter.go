package exports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrNoRows is returned when an export is requested for an empty data set.
// No artifact is produced in that case.
var ErrNoRows = errors.New("no rows to export")

type Format string

const (
	FormatCsv  Format = "csv"
	FormatXlsx Format = "xlsx"
)

const (
	MimeCsv  = "text/csv;charset=utf-8"
	MimeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// utf-8 byte order mark so Excel opens the csv with the right encoding
var csvBom = []byte{0xEF, 0xBB, 0xBF}

const xlsxColumnWidth = 20

func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatCsv:
		return FormatCsv, nil
	case FormatXlsx:
		return FormatXlsx, nil
	}
	return "", fmt.Errorf("unknown export format: %s", value)
}

func (f Format) Extension() string {
	return string(f)
}

func (f Format) ContentType() string {
	if f == FormatXlsx {
		return MimeXlsx
	}
	return MimeCsv
}

// Cell is one labelled value of a flat export row.
type Cell struct {
	Label string
	Value interface{}
}

// Row is an ordered label -> value record. The first row of an export call
// defines the header set and column order; later rows contribute only the
// labels they share with it. Missing labels become empty cells and extra
// labels are dropped.
type Row []Cell

// Filename stamps the invocation date onto the adapter's prefix,
// e.g. "orders_2026-08-31.xlsx".
func Filename(prefix string, format Format, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, at.Format("2006-01-02"), format.Extension())
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return v.Format("2006-01-02")
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprint(v)
	}
}

// buildTable is the format-agnostic column-inference step shared by both
// encoders.
func buildTable(rows []Row) (headers []string, data [][]string, err error) {
	if len(rows) == 0 {
		return nil, nil, ErrNoRows
	}

	headers = make([]string, 0, len(rows[0]))
	for _, cell := range rows[0] {
		headers = append(headers, cell.Label)
	}

	data = make([][]string, 0, len(rows))
	for _, row := range rows {
		byLabel := make(map[string]interface{}, len(row))
		for _, cell := range row {
			byLabel[cell.Label] = cell.Value
		}
		line := make([]string, len(headers))
		for i, label := range headers {
			if value, ok := byLabel[label]; ok {
				line[i] = stringify(value)
			}
		}
		data = append(data, line)
	}
	return headers, data, nil
}

func exportCsv(rows []Row) ([]byte, error) {
	headers, data, err := buildTable(rows)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(csvBom)
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, line := range data {
		if err := w.Write(line); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportXlsx(rows []Row, sheetName string) ([]byte, error) {
	headers, data, err := buildTable(rows)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, xlsxColumnWidth); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	for rowNo, line := range data {
		for i, value := range line {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNo+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export serializes rows into the requested format. The column inference is
// shared; only the final encode step branches on format.
func Export(rows []Row, format Format, sheetName string) ([]byte, error) {
	switch format {
	case FormatXlsx:
		return exportXlsx(rows, sheetName)
	default:
		return exportCsv(rows)
	}
}
