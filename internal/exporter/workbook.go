package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ftscli/internal/errors"
	"ftscli/internal/fts"
)

// Sheet pairs a table with its workbook sheet name
type Sheet struct {
	Name  string
	Table *fts.Table
}

// WorkbookWriter bundles a run's tables into a single XLSX workbook,
// one sheet per table, for consumers who prefer a workbook over loose CSVs.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer instance
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger.With("component", "exporter.workbook")}
}

// WriteWorkbook writes the sheets to an XLSX file at the given path
func (w *WorkbookWriter) WriteWorkbook(filePath string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return errors.NewValidationError("workbook needs at least one sheet")
	}

	w.logger.Info("writing XLSX workbook",
		slog.String("path", filePath),
		slog.Int("sheets", len(sheets)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create directory %s", dir), err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return errors.NewStorageError(fmt.Sprintf("failed to name sheet %s", sheet.Name), err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return errors.NewStorageError(fmt.Sprintf("failed to create sheet %s", sheet.Name), err)
			}
		}

		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to save workbook %s", filePath), err)
	}
	return nil
}

// writeSheet fills one sheet: header row first, then one row per table row
func writeSheet(f *excelize.File, sheet Sheet) error {
	header := toInterfaceRow(headerRow(sheet.Table))
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write header of sheet %s", sheet.Name), err)
	}

	for i := range sheet.Table.Rows {
		row := toInterfaceRow(dataRow(sheet.Table, i))
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return errors.NewStorageError(
				fmt.Sprintf("failed to write row %d of sheet %s", i, sheet.Name), err)
		}
	}

	return nil
}

func toInterfaceRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}
