package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"ftscli/internal/errors"
	"ftscli/internal/fts"
)

// CSVWriter provides CSV export functionality for fetched tables
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With("component", "exporter.csv")}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes non-ASCII place and
	// organization names.
	BOMPrefix bool
}

// WriteTable writes a table to a CSV file at the given path. The row index
// is always included as the first column: the promoted id (or alias) for
// indexed tables, the row position otherwise. The header row carries the
// index name in its first cell, empty for positional tables.
func (w *CSVWriter) WriteTable(filePath string, table *fts.Table, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("path", filePath),
		slog.Int("rows", table.Len()))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create directory %s", dir), err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to open file %s", filePath), err)
	}
	defer file.Close()

	if err := w.Write(file, table, options); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write %s", filePath), err)
	}
	return nil
}

// Write serializes a table as CSV to any writer, for callers that print to
// stdout instead of a file.
func (w *CSVWriter) Write(out io.Writer, table *fts.Table, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write(headerRow(table)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range table.Rows {
		if err := writer.Write(dataRow(table, i)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// headerRow builds the header: index name first, then the column names
func headerRow(table *fts.Table) []string {
	header := make([]string, 0, len(table.Columns)+1)
	header = append(header, table.IndexName)
	header = append(header, table.Columns...)
	return header
}

// dataRow renders one row with its index value leading
func dataRow(table *fts.Table, rowNum int) []string {
	record := make([]string, 0, len(table.Columns)+1)
	if table.Index != nil {
		record = append(record, formatCell(table.Index[rowNum]))
	} else {
		record = append(record, strconv.Itoa(rowNum))
	}
	for _, cell := range table.Rows[rowNum] {
		record = append(record, formatCell(cell))
	}
	return record
}
