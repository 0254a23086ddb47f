// Package exporter writes the pipeline's output files.
//
// This package contains four main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, appending, and UTF-8 BOM for Excel compatibility.
//
// EnrichedExporter: Writes the enriched dataset CSV (raw columns plus all
// derived columns) and the rejection audit file.
//
// ReportExporter: Renders the KPI report as indented JSON with a schema
// envelope, and as a fixed-width plain-text summary.
//
// ExcelExporter: Writes the KPI report as an xlsx workbook with one sheet
// per grouping dimension.
//
// Relative output paths resolve against the configured reports directory;
// paths prefixed raw/ or processed/ resolve against those directories
// instead.
package exporter
