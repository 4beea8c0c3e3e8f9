package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"supply-service/internal/stock"
)

const (
	sheetReport     = "Low Stock"
	sheetSummary    = "Summary"
	defaultSheet    = "Sheet1"
	columnWidth     = 18
	headerFillColor = "#D3D3D3"
)

// XLSXContentType is the MIME type of WriteXLSX output
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var reportHeaders = []string{"Name", "Category", "Subcategory", "Quantity", "Unit", "Min Quantity", "Status"}

var statusFill = map[stock.Status]string{
	stock.StatusLow:      "#FEE2E2",
	stock.StatusModerate: "#FEF9C3",
	stock.StatusHigh:     "#DCFCE7",
}

// Filename returns the download name for a report
func Filename(r Report) string {
	return fmt.Sprintf("low-stock-report-%s.xlsx", r.GeneratedAt.Format("2006-01-02"))
}

// WriteXLSX renders r as a workbook with a report sheet and a summary sheet
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheetReport); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	statusStyles := make(map[stock.Status]int, len(statusFill))
	for status, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("create status style: %w", err)
		}
		statusStyles[status] = id
	}

	if err := writeRow(f, sheetReport, 1, toAny(reportHeaders)); err != nil {
		return err
	}
	if err := styleRow(f, sheetReport, 1, len(reportHeaders), headerStyle); err != nil {
		return err
	}

	for i, row := range r.Rows {
		rowNum := i + 2
		values := []any{
			row.Name,
			row.CategoryLabel,
			row.SubcategoryLabel,
			row.Quantity,
			row.Unit,
			row.Thresholds.Low,
			string(row.Status),
		}
		if err := writeRow(f, sheetReport, rowNum, values); err != nil {
			return err
		}
		statusCell, _ := excelize.CoordinatesToCellName(len(values), rowNum)
		if err := f.SetCellStyle(sheetReport, statusCell, statusCell, statusStyles[row.Status]); err != nil {
			return fmt.Errorf("style status cell: %w", err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(reportHeaders))
	if err := f.SetColWidth(sheetReport, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := writeSummary(f, r, headerStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, r Report, headerStyle int) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04 MST")},
		{"Filter", string(r.Filter)},
		{"Total Items", r.ItemCount},
	}
	for _, s := range stock.AllStatuses {
		rows = append(rows, []any{string(s) + " Stock", r.Totals[s]})
	}

	for i, values := range rows {
		if err := writeRow(f, sheetSummary, i+1, values); err != nil {
			return err
		}
	}
	if err := styleRow(f, sheetSummary, 1, 2, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheetSummary, "A", "B", columnWidth)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
