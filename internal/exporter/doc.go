// Package exporter writes tables as delimited text.
//
// CSVWriter is the persister used for the cleaned, merged and dashboard
// tables. Files are written to a temporary sibling and renamed into place, so
// a failed write leaves the previous file untouched.
//
// Cells are written so that a reload recovers the same table:
//
//   - missing cells are empty
//   - floats use the shortest representation and keep a ".0" when integral
//   - ints, bools and strings are written verbatim
//
// DashboardExporter writes the curated subset of the merged table that feeds
// the BI dashboard.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths, logger)
//	err := writer.WriteTable(paths.CompleteCSV, complete, exporter.WriteOptions{Delimiter: ','})
package exporter
