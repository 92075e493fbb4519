// Package export renders submitted reports as Excel workbooks for the
// accounting side. Workbooks are derived entirely from the immutable
// report snapshot; nothing here feeds back into form state.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mvillanueva/travel-expense/internal/report"
)

const sheetName = "Travel Expense Report"

// Layout rows
const (
	rowTitle       = 1
	rowEmployee    = 3
	rowPosition    = 4
	rowPurpose     = 5
	rowStartDate   = 6
	rowHeader      = 8
	rowLocation    = 9
	rowFirstItem   = 10 // 16 expense types occupy rows 10-25
	rowDayTotal    = 26
	rowGrandTotal  = 27
	totalColumn    = 9 // column I, after the 7 day columns
	firstDayColumn = 2 // column B
)

var pesoNumFmt = "\"₱\"#,##0.00"

// Exporter writes report workbooks into the configured output directory.
type Exporter struct {
	outputDir string
	logger    *zap.Logger
}

// NewExporter creates an exporter, making sure the output directory exists.
func NewExporter(outputDir string, logger *zap.Logger) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Exporter{
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// Export writes the workbook for a recorded submission and returns the
// file path.
func (e *Exporter) Export(r *report.Report, submissionID int64) (string, error) {
	f, err := BuildWorkbook(r)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(e.outputDir, fmt.Sprintf("travel_expense_%d_%s.xlsx", submissionID, r.StartDate))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("Report exported",
		zap.Int64("submission_id", submissionID),
		zap.String("path", path))
	return path, nil
}

// BuildWorkbook lays out one report as a workbook: header fields, one
// column per week day with its location, one row per expense type in
// catalog order, then per-day totals and the grand total.
func BuildWorkbook(r *report.Report) (*excelize.File, error) {
	week, err := report.NewWeek(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("report has an invalid start date: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pesoNumFmt})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &pesoNumFmt,
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	set := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheetName, cell, value)
	}
	style := func(col, row, styleID int) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellStyle(sheetName, cell, cell, styleID)
	}

	// Title and header fields
	set(1, rowTitle, "TRAVEL EXPENSE REQUEST FORM")
	style(1, rowTitle, boldStyle)
	lastCell, _ := excelize.CoordinatesToCellName(totalColumn, rowTitle)
	_ = f.MergeCell(sheetName, "A1", lastCell)

	set(1, rowEmployee, "Employee")
	set(2, rowEmployee, r.EmployeeName)
	set(1, rowPosition, "Position")
	set(2, rowPosition, r.Position)
	set(1, rowPurpose, "Purpose")
	set(2, rowPurpose, r.Purpose)
	set(1, rowStartDate, "Week Starting")
	set(2, rowStartDate, r.StartDate)

	// Day columns
	set(1, rowHeader, "EXPENSE TYPE")
	style(1, rowHeader, boldStyle)
	set(1, rowLocation, "LOCATION")
	for i, slot := range week {
		col := firstDayColumn + i
		set(col, rowHeader, slot.Label)
		style(col, rowHeader, boldStyle)
		if record, ok := r.Expenses[slot.Key]; ok {
			set(col, rowLocation, record.Location)
		}
	}
	set(totalColumn, rowHeader, "TOTAL")
	style(totalColumn, rowHeader, boldStyle)

	// One row per expense type, amounts per day, row totals
	for i, expenseType := range report.ExpenseTypes {
		row := rowFirstItem + i
		set(1, row, expenseType.Label())

		rowTotal := 0.0
		seen := false
		for j, slot := range week {
			record, ok := r.Expenses[slot.Key]
			if !ok {
				continue
			}
			item, ok := record.Items[expenseType]
			if !ok {
				continue
			}
			col := firstDayColumn + j
			set(col, row, item.Amount)
			style(col, row, amountStyle)
			rowTotal += item.Amount
			seen = true
		}
		if seen {
			set(totalColumn, row, rowTotal)
			style(totalColumn, row, amountStyle)
		}
	}

	// Day totals and grand total
	set(1, rowDayTotal, "DAY TOTAL")
	style(1, rowDayTotal, boldStyle)
	for i, slot := range week {
		col := firstDayColumn + i
		set(col, rowDayTotal, r.Expenses.DayTotal(slot.Key))
		style(col, rowDayTotal, totalStyle)
	}

	set(1, rowGrandTotal, "GRAND TOTAL")
	style(1, rowGrandTotal, boldStyle)
	set(totalColumn, rowGrandTotal, r.GrandTotal)
	style(totalColumn, rowGrandTotal, totalStyle)

	_ = f.SetColWidth(sheetName, "A", "A", 34)
	lastDayCol, _ := excelize.ColumnNumberToName(totalColumn)
	firstDayCol, _ := excelize.ColumnNumberToName(firstDayColumn)
	_ = f.SetColWidth(sheetName, firstDayCol, lastDayCol, 18)

	return f, nil
}
