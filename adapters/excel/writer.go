package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pbihub/domain/hr"
	"pbihub/domain/sales"
	"pbihub/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	SalesSheet     = "Sales"
	EmployeesSheet = "Employees"
	SummarySheet   = "Summary"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	CSVContentType  = "text/csv"
)

// formulaTriggers are the leading characters a spreadsheet evaluates as a formula.
const formulaTriggers = "=+-@\t\r"

// escapeText quotes text that a spreadsheet would otherwise run as a formula
// when the CSV is opened.
func escapeText(s string) string {
	if s != "" && strings.ContainsRune(formulaTriggers, rune(s[0])) {
		return "'" + s
	}
	return s
}

// unescapeText reverses escapeText.
func unescapeText(s string) string {
	if len(s) > 1 && s[0] == '\'' && strings.ContainsRune(formulaTriggers, rune(s[1])) {
		return s[1:]
	}
	return s
}

// WriteCSV writes records with the standard header row. Text cells are
// escaped so uploaded values cannot become live formulas.
func WriteCSV(w io.Writer, records []sales.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sales.Columns); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	for _, r := range records {
		row := []string{
			escapeText(r.Month),
			escapeText(r.Person),
			escapeText(r.Region),
			strconv.Itoa(r.Units),
			strconv.FormatFloat(r.Price, 'f', -1, 64),
			strconv.FormatFloat(r.Revenue, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush CSV")
}

// Workbook is the content of an exported sample workbook. Employees is optional.
type Workbook struct {
	Sales     []sales.Record
	Employees []hr.Employee
}

// WriteXLSX writes the workbook: the sales table first (so it round-trips
// through DataReader), an optional employees sheet, and a summary sheet of
// live formulas over the sales table.
func WriteXLSX(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SalesSheet); err != nil {
		return errors.Wrap(err, "failed to name sales sheet")
	}
	if err := writeSales(f, wb.Sales); err != nil {
		return err
	}
	if len(wb.Employees) > 0 {
		if err := writeEmployees(f, wb.Employees); err != nil {
			return err
		}
	}
	if err := writeSummary(f, len(wb.Sales)); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "failed to address row")
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "failed to write %s row %d", sheet, row)
	}
	return nil
}

// writeSales stores text as typed string cells; excelize never turns them into
// formulas, so no escaping is needed.
func writeSales(f *excelize.File, records []sales.Record) error {
	header := make([]interface{}, len(sales.Columns))
	for i, c := range sales.Columns {
		header[i] = c
	}
	if err := setRow(f, SalesSheet, 1, header); err != nil {
		return err
	}
	for i, r := range records {
		if err := setRow(f, SalesSheet, i+2, []interface{}{r.Month, r.Person, r.Region, r.Units, r.Price, r.Revenue}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SalesSheet, "A", "F", 12); err != nil {
		return errors.Wrap(err, "failed to size sales columns")
	}
	return nil
}

func writeEmployees(f *excelize.File, employees []hr.Employee) error {
	if _, err := f.NewSheet(EmployeesSheet); err != nil {
		return errors.Wrap(err, "failed to add employees sheet")
	}
	if err := setRow(f, EmployeesSheet, 1, []interface{}{"Employee", "Dept", "Level", "Salary", "JoinDate", "Performance"}); err != nil {
		return err
	}
	for i, e := range employees {
		row := []interface{}{e.ID, e.Dept, e.Level, e.Salary, e.JoinDate.Format("2006-01-02"), e.Performance}
		if err := setRow(f, EmployeesSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeSummary adds SUM/AVERAGE/COUNTA formulas so learners can inspect them.
func writeSummary(f *excelize.File, rows int) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return errors.Wrap(err, "failed to add summary sheet")
	}
	last := rows + 1
	if last < 2 {
		last = 2
	}
	formulas := []struct {
		label   string
		formula string
	}{
		{"Rows", fmt.Sprintf("COUNTA(%s!A2:A%d)", SalesSheet, last)},
		{"Total Units", fmt.Sprintf("SUM(%s!D2:D%d)", SalesSheet, last)},
		{"Total Revenue", fmt.Sprintf("SUM(%s!F2:F%d)", SalesSheet, last)},
		{"Average Price", fmt.Sprintf("IFERROR(AVERAGE(%s!E2:E%d),0)", SalesSheet, last)},
	}
	for i, item := range formulas {
		row := i + 1
		if err := f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), item.label); err != nil {
			return errors.Wrap(err, "failed to write summary label")
		}
		if err := f.SetCellFormula(SummarySheet, fmt.Sprintf("B%d", row), item.formula); err != nil {
			return errors.Wrap(err, "failed to write summary formula")
		}
	}
	return nil
}
