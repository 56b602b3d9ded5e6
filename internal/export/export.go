// Package export renders the collection and its leaderboards into an XLSX
// workbook: one sheet of raw records, one ranked sheet per dimension, and a
// by-count spender sheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"spendboard/internal/core"
)

const recordsSheet = "Records"

var leaderboardSheets = []struct {
	name string
	dim  core.Dimension
	key  core.SortKey
}{
	{"Top Spenders", core.ByPayer, core.SortByTotal},
	{"Most Frequent Spenders", core.ByPayer, core.SortByCount},
	{"Categories", core.ByCategory, core.SortByTotal},
	{"Payment Methods", core.ByPaymentMethod, core.SortByTotal},
	{"Card Types", core.ByCardType, core.SortByTotal},
}

// Workbook builds the export workbook. Callers own closing the file.
func Workbook(records []core.ExpenseRecord, topN int) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", recordsSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeRecordsSheet(f, records, headerStyle); err != nil {
		return nil, err
	}
	for _, sheet := range leaderboardSheets {
		entries := core.Rank(core.GroupBy(records, sheet.dim), sheet.key, topN)
		if err := writeLeaderboardSheet(f, sheet.name, entries, headerStyle); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteTo streams the workbook to w (the HTTP download path).
func WriteTo(w io.Writer, records []core.ExpenseRecord, topN int) error {
	f, err := Workbook(records, topN)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook snapshot to path (the worker path).
func WriteFile(path string, records []core.ExpenseRecord, topN int) error {
	f, err := Workbook(records, topN)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRecordsSheet(f *excelize.File, records []core.ExpenseRecord, headerStyle int) error {
	headers := []string{"Name", "Amount", "Date", "Payment Method", "Category", "Card Type"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(recordsSheet, cell, h); err != nil {
			return fmt.Errorf("write records header: %w", err)
		}
	}
	end, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(recordsSheet, "A1", end, headerStyle); err != nil {
		return fmt.Errorf("style records header: %w", err)
	}

	for i, rec := range records {
		row := i + 2
		values := []any{
			rec.Payer,
			rec.Amount.Dollars(),
			rec.Date.String(),
			string(rec.Method),
			rec.Category,
			rec.CardType,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(recordsSheet, cell, v); err != nil {
				return fmt.Errorf("write record row %d: %w", row, err)
			}
		}
	}
	return nil
}

func writeLeaderboardSheet(f *excelize.File, name string, entries []core.RankedEntry, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	headers := []string{"Rank", "Name", "Total Spent", "Transactions", "Average"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("write %s header: %w", name, err)
		}
	}
	end, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(name, "A1", end, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", name, err)
	}

	for i, e := range entries {
		row := i + 2
		values := []any{
			e.Rank,
			e.Row.Key,
			e.Row.Total.Dollars(),
			e.Row.Count,
			e.Row.Average().Dollars(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("write %s row %d: %w", name, row, err)
			}
		}
	}
	return nil
}
