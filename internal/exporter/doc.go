// Package exporter serializes fetched FTS tables to disk for CKAN ingestion.
//
// This package contains three main components:
//
// CSVWriter: writes one table per CSV file, index first, UTF-8 with an
// optional BOM for Excel compatibility.
//
// WorkbookWriter: optionally bundles a country's exported tables into a
// single XLSX workbook, one sheet per table.
//
// Producer: orchestrates export runs against the FTS client. The global run
// covers sectors, countries and organizations; a per-country run covers
// emergencies, appeals, projects (gathered across all of the country's
// appeals) and contributions (gathered across all of its emergencies).
package exporter
