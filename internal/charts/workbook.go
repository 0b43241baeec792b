package charts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/errors"
)

const (
	defaultWidth  = 720
	defaultHeight = 420

	// sheetNameLimit is the longest sheet name Excel accepts.
	sheetNameLimit = 31
)

// Options are the presentation settings shared by every chart type.
type Options struct {
	Title  string
	XTitle string
	YTitle string
	// YMin and YMax fix the value axis range when set.
	YMin *float64
	YMax *float64
	// Horizontal draws bar charts with horizontal bars.
	Horizontal bool
	Width      uint
	Height     uint
}

// Series is one named list of values aligned with the chart categories.
type Series struct {
	Name   string
	Values []float64
}

// Workbook accumulates chart sheets until Save is called.
type Workbook struct {
	file   *excelize.File
	sheets []string
	logger *slog.Logger
}

// NewWorkbook creates an empty workbook.
func NewWorkbook(logger *slog.Logger) *Workbook {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workbook{file: excelize.NewFile(), logger: logger}
}

// Sheets returns the sheet names added so far, in order.
func (w *Workbook) Sheets() []string {
	return append([]string(nil), w.sheets...)
}

// Close releases the underlying workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Save writes the workbook to path, replacing any previous file only once the
// new one is complete.
func (w *Workbook) Save(path string) error {
	if len(w.sheets) == 0 {
		return apperrors.NewRenderError("workbook has no sheets", nil).WithContext("path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).WithContext("path", path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.xlsx")
	if err != nil {
		return apperrors.NewStorageError("failed to create file", err).WithContext("path", path)
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	if err := w.file.SaveAs(tmpName); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return apperrors.NewStorageError("failed to set permissions", err).WithContext("path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return apperrors.NewStorageError("failed to replace file", err).WithContext("path", path)
	}

	attrs := []any{
		slog.String("path", path),
		slog.Any("sheets", w.sheets),
	}
	if info, err := os.Stat(path); err == nil {
		attrs = append(attrs, slog.String("size", humanize.Bytes(uint64(info.Size()))))
	}
	w.logger.Info("Chart workbook written", attrs...)
	return nil
}

// addSheet creates the next sheet. The default sheet of a new file is renamed
// for the first chart.
func (w *Workbook) addSheet(name string) (string, error) {
	if r := []rune(name); len(r) > sheetNameLimit {
		name = string(r[:sheetNameLimit])
	}
	for _, s := range w.sheets {
		if s == name {
			return "", apperrors.NewRenderError("duplicate sheet", nil).WithContext("sheet", name)
		}
	}

	if len(w.sheets) == 0 {
		first := w.file.GetSheetList()[0]
		if err := w.file.SetSheetName(first, name); err != nil {
			return "", apperrors.NewRenderError("invalid sheet name", err).WithContext("sheet", name)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return "", apperrors.NewRenderError("invalid sheet name", err).WithContext("sheet", name)
	}

	w.sheets = append(w.sheets, name)
	return name, nil
}

// writeTable writes header at A1 followed by rows.
func (w *Workbook) writeTable(sheet string, header []string, rows [][]interface{}) error {
	if err := w.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.NewRenderError("failed to write header", err).WithContext("sheet", sheet)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewRenderError("invalid cell", err).WithContext("sheet", sheet)
		}
		if err := w.file.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.NewRenderError("failed to write row", err).WithContext("sheet", sheet)
		}
	}
	return nil
}

// categoryTable lays out labels in column A and one column per series.
func categoryTable(labels []string, series []Series) ([]string, [][]interface{}, error) {
	header := []string{""}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return nil, nil, fmt.Errorf("series %q has %d values for %d categories", s.Name, len(s.Values), len(labels))
		}
		header = append(header, s.Name)
	}

	rows := make([][]interface{}, len(labels))
	for i, label := range labels {
		row := []interface{}{label}
		for _, s := range series {
			row = append(row, cellValue(s.Values[i]))
		}
		rows[i] = row
	}
	return header, rows, nil
}

// addChart anchors chart two columns right of a table with dataCols columns.
// Sheets with no data rows keep the table only.
func (w *Workbook) addChart(sheet string, dataCols, dataRows int, chart *excelize.Chart) error {
	if dataRows == 0 {
		w.logger.Debug("Chart skipped, no data rows", slog.String("sheet", sheet))
		return nil
	}
	anchor, err := excelize.CoordinatesToCellName(dataCols+2, 1)
	if err != nil {
		return apperrors.NewRenderError("invalid anchor", err).WithContext("sheet", sheet)
	}
	if err := w.file.AddChart(sheet, anchor, chart); err != nil {
		return apperrors.NewRenderError("failed to add chart", err).WithContext("sheet", sheet)
	}
	return nil
}

// baseChart applies Options to a new chart of the given type.
func baseChart(t excelize.ChartType, opts Options) *excelize.Chart {
	chart := &excelize.Chart{
		Type: t,
		Dimension: excelize.ChartDimension{
			Width:  opts.Width,
			Height: opts.Height,
		},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	if chart.Dimension.Width == 0 {
		chart.Dimension.Width = defaultWidth
	}
	if chart.Dimension.Height == 0 {
		chart.Dimension.Height = defaultHeight
	}
	if opts.Title != "" {
		chart.Title = []excelize.RichTextRun{{Text: opts.Title}}
	}
	if opts.XTitle != "" {
		chart.XAxis.Title = []excelize.RichTextRun{{Text: opts.XTitle}}
	}
	if opts.YTitle != "" {
		chart.YAxis.Title = []excelize.RichTextRun{{Text: opts.YTitle}}
	}
	chart.YAxis.MajorGridLines = true
	chart.YAxis.Minimum = opts.YMin
	chart.YAxis.Maximum = opts.YMax
	return chart
}

// columnRef is the absolute reference of rows [first, last] in column col.
func columnRef(sheet string, col, first, last int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, name, first, name, last)
}

// cellRef is the absolute reference of one cell.
func cellRef(sheet string, col, row int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("'%s'!$%s$%d", sheet, name, row)
}

func boolPtr(b bool) *bool { return &b }
