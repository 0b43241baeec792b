// Package charts renders report artifacts as Excel workbooks.
//
// Every chart is written next to the data it plots: a Workbook holds one
// sheet per chart, the aggregated table at A1 and a native excelize chart
// anchored to the right of it. The package knows nothing about where the data
// came from; callers hand it labels, series and summaries.
//
// Usage:
//
//	wb := charts.NewWorkbook(logger)
//	defer wb.Close()
//	err := wb.Bar("Media", charts.Options{Title: "Média por UF"}, labels,
//	    charts.Series{Name: "MEDIA_NOTAS", Values: means})
//	err = wb.Save(path)
package charts
