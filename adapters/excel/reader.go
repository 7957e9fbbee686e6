package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pbihub/domain/sales"
	"pbihub/internal/errors"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

// DataReader reads a replacement sales dataset from an Excel, CSV or JSON file.
type DataReader struct {
	name     string
	fileType string // "xlsx", "csv" or "json"
}

// NewDataReader picks the file type from name's extension; unknown extensions
// are treated as xlsx.
func NewDataReader(name string) *DataReader {
	fileType := "xlsx"
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		fileType = "csv"
	case ".json":
		fileType = "json"
	}
	return &DataReader{name: name, fileType: fileType}
}

// ReadFile opens the reader's file from disk.
func (r *DataReader) ReadFile() ([]sales.Record, error) {
	f, err := os.Open(r.name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.name))
		}
		return nil, errors.Wrap(err, "failed to open dataset file")
	}
	defer f.Close()
	return r.Read(f)
}

// Read parses a dataset from src. Revenue in the source is ignored and
// recomputed from units and price.
func (r *DataReader) Read(src io.Reader) ([]sales.Record, error) {
	start := time.Now()
	var (
		records []sales.Record
		err     error
	)
	switch r.fileType {
	case "csv":
		records, err = r.readCSV(src)
	case "json":
		records, err = r.readJSON(src)
	default:
		records, err = r.readExcel(src)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[DataReader] %s %s parsed in %.2fms (%d rows)",
		strings.ToUpper(r.fileType), r.name, float64(time.Since(start).Nanoseconds())/1e6, len(records))
	return records, nil
}

// readExcel reads the first sheet of a workbook.
func (r *DataReader) readExcel(src io.Reader) ([]sales.Record, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	return processRows(rows)
}

func (r *DataReader) readCSV(src io.Reader) ([]sales.Record, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read CSV file: %w", err))
	}
	return processRows(rows)
}

// readJSON accepts either a top-level array of rows or an object with a
// "records" array. Keys may be lower-case or capitalised.
func (r *DataReader) readJSON(src io.Reader) ([]sales.Record, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read JSON file")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidInput("invalid JSON dataset")
	}
	root := gjson.ParseBytes(bytes.TrimSpace(data))
	if !root.IsArray() {
		root = root.Get("records")
	}
	if !root.IsArray() {
		return nil, errors.InvalidInput("JSON dataset must be an array or contain a records array")
	}

	var rows []sales.Record
	root.ForEach(func(_, item gjson.Result) bool {
		rows = append(rows, sales.Record{
			Month:  jsonField(item, "month").String(),
			Person: jsonField(item, "person").String(),
			Region: jsonField(item, "region").String(),
			Units:  int(jsonField(item, "units").Int()),
			Price:  jsonField(item, "price").Float(),
		})
		return true
	})
	if len(rows) == 0 {
		return nil, errors.InvalidInput("JSON dataset has no rows")
	}
	return sales.Rebuild(rows)
}

func jsonField(item gjson.Result, key string) gjson.Result {
	if v := item.Get(key); v.Exists() {
		return v
	}
	return item.Get(strings.ToUpper(key[:1]) + key[1:])
}

// processRows maps a header row plus data rows onto records. Columns are found
// by header name, case-insensitively; Revenue is optional.
func processRows(rows [][]string) ([]sales.Record, error) {
	if len(rows) < 2 {
		return nil, errors.InvalidInput("dataset must have a header row and at least one data row")
	}

	col := map[string]int{}
	for i, header := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{"month", "person", "units", "price"} {
		if _, ok := col[required]; !ok {
			return nil, errors.InvalidInputf("dataset is missing the %s column", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]sales.Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := n + 2
		units, err := strconv.Atoi(cell(row, "units"))
		if err != nil {
			return nil, errors.InvalidInputf("row %d: units %q is not a whole number", line, cell(row, "units"))
		}
		price, err := strconv.ParseFloat(cell(row, "price"), 64)
		if err != nil {
			return nil, errors.InvalidInputf("row %d: price %q is not a number", line, cell(row, "price"))
		}
		records = append(records, sales.Record{
			Month:  unescapeText(cell(row, "month")),
			Person: unescapeText(cell(row, "person")),
			Region: unescapeText(cell(row, "region")),
			Units:  units,
			Price:  price,
		})
	}
	if len(records) == 0 {
		return nil, errors.InvalidInput("dataset has no data rows")
	}
	return sales.Rebuild(records)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
