package charts

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/dataprocessing"
	apperrors "github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/errors"
)

// Heatmap colour scale, low to high.
const (
	heatLow  = "#3B4CC0"
	heatMid  = "#F7F7F7"
	heatHigh = "#B40426"
)

// ScatterData holds the points of a scatter or bubble chart. Size and Groups
// are optional; when set they must have one entry per point.
type ScatterData struct {
	XName    string
	YName    string
	SizeName string
	X        []float64
	Y        []float64
	Size     []float64
	Groups   []string
}

// Bar writes a column chart, or a bar chart when opts.Horizontal is set.
func (w *Workbook) Bar(sheet string, opts Options, labels []string, series ...Series) error {
	t := excelize.Col
	if opts.Horizontal {
		t = excelize.Bar
	}
	chart := baseChart(t, opts)
	chart.VaryColors = boolPtr(false)
	return w.categoryChart(sheet, labels, series, chart, nil)
}

// Line writes one line per series over the labels.
func (w *Workbook) Line(sheet string, opts Options, labels []string, series ...Series) error {
	chart := baseChart(excelize.Line, opts)
	chart.VaryColors = boolPtr(false)
	return w.categoryChart(sheet, labels, series, chart, func(s *excelize.ChartSeries) {
		s.Marker = excelize.ChartMarker{Symbol: "circle", Size: 6}
	})
}

// Pie writes a pie chart of values with percentage labels.
func (w *Workbook) Pie(sheet string, opts Options, labels []string, values Series) error {
	chart := baseChart(excelize.Pie, opts)
	chart.YAxis = excelize.ChartAxis{}
	chart.Legend.Position = "right"
	chart.PlotArea = excelize.ChartPlotArea{ShowPercent: true}
	return w.categoryChart(sheet, labels, []Series{values}, chart, nil)
}

// Radar writes a radar chart with one polygon per series over the axes.
func (w *Workbook) Radar(sheet string, opts Options, axes []string, series ...Series) error {
	chart := baseChart(excelize.Radar, opts)
	chart.VaryColors = boolPtr(false)
	return w.categoryChart(sheet, axes, series, chart, nil)
}

// Histogram writes bin counts as a gapless column chart.
func (w *Workbook) Histogram(sheet string, opts Options, h dataprocessing.HistogramBins) error {
	if len(h.Edges) != len(h.Counts)+1 {
		return apperrors.NewRenderError("histogram edges do not match counts", nil).WithContext("sheet", sheet)
	}

	labels := make([]string, len(h.Counts))
	for i := range h.Counts {
		labels[i] = fmt.Sprintf("%.1f a %.1f", h.Edges[i], h.Edges[i+1])
	}

	name := opts.YTitle
	if name == "" {
		name = "Frequência"
	}

	chart := baseChart(excelize.Col, opts)
	chart.VaryColors = boolPtr(false)
	gap := uint(0)
	chart.GapWidth = &gap
	chart.Legend.Position = "none"
	return w.categoryChart(sheet, labels, []Series{{Name: name, Values: h.Counts}}, chart, nil)
}

// Box writes the five-number summary per group as a table and draws it as
// marker-only lines, one per statistic.
func (w *Workbook) Box(sheet string, opts Options, boxes []dataprocessing.BoxSummary) error {
	name, err := w.addSheet(sheet)
	if err != nil {
		return err
	}

	header := []string{"GRUPO", "N", "MINIMO", "Q1", "MEDIANA", "Q3", "MAXIMO"}
	rows := make([][]interface{}, len(boxes))
	for i, b := range boxes {
		rows[i] = []interface{}{b.Group, b.Count,
			cellValue(b.Min), cellValue(b.Q1), cellValue(b.Median), cellValue(b.Q3), cellValue(b.Max)}
	}
	if err := w.writeTable(name, header, rows); err != nil {
		return err
	}

	symbols := []string{"dash", "square", "diamond", "square", "dash"}
	chart := baseChart(excelize.Line, opts)
	chart.VaryColors = boolPtr(false)
	last := len(boxes) + 1
	for i, symbol := range symbols {
		col := i + 3
		chart.Series = append(chart.Series, excelize.ChartSeries{
			Name:       cellRef(name, col, 1),
			Categories: columnRef(name, 1, 2, last),
			Values:     columnRef(name, col, 2, last),
			Line:       excelize.ChartLine{Type: excelize.ChartLineNone},
			Marker:     excelize.ChartMarker{Symbol: symbol, Size: 8},
		})
	}
	return w.addChart(name, len(header), len(boxes), chart)
}

// Heatmap writes a labelled matrix and colours its cells with a three-colour
// scale fixed at -1, 0 and 1.
func (w *Workbook) Heatmap(sheet string, opts Options, m dataprocessing.Matrix) error {
	n := len(m.Labels)
	if len(m.Values) != n {
		return apperrors.NewRenderError("matrix is not square", nil).WithContext("sheet", sheet)
	}

	name, err := w.addSheet(sheet)
	if err != nil {
		return err
	}

	header := append([]string{opts.Title}, m.Labels...)
	rows := make([][]interface{}, n)
	for i, label := range m.Labels {
		if len(m.Values[i]) != n {
			return apperrors.NewRenderError("matrix is not square", nil).WithContext("sheet", sheet)
		}
		row := []interface{}{label}
		for _, v := range m.Values[i] {
			row = append(row, cellValue(v))
		}
		rows[i] = row
	}
	if err := w.writeTable(name, header, rows); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	topLeft, _ := excelize.CoordinatesToCellName(2, 2)
	bottomRight, _ := excelize.CoordinatesToCellName(n+1, n+1)

	style, err := w.file.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return apperrors.NewRenderError("failed to create style", err).WithContext("sheet", name)
	}
	if err := w.file.SetCellStyle(name, topLeft, bottomRight, style); err != nil {
		return apperrors.NewRenderError("failed to style matrix", err).WithContext("sheet", name)
	}

	err = w.file.SetConditionalFormat(name, topLeft+":"+bottomRight, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "num",
		MinValue: "-1",
		MidType:  "num",
		MidValue: "0",
		MaxType:  "num",
		MaxValue: "1",
		MinColor: heatLow,
		MidColor: heatMid,
		MaxColor: heatHigh,
	}})
	if err != nil {
		return apperrors.NewRenderError("failed to apply colour scale", err).WithContext("sheet", name)
	}
	return nil
}

// Scatter writes a scatter chart, or a bubble chart when sizes are given.
// Points are grouped into one series per group in first-appearance order;
// points with a missing coordinate or size are left out.
func (w *Workbook) Scatter(sheet string, opts Options, data ScatterData) error {
	if len(data.X) != len(data.Y) ||
		(data.Size != nil && len(data.Size) != len(data.X)) ||
		(data.Groups != nil && len(data.Groups) != len(data.X)) {
		return apperrors.NewRenderError("scatter columns differ in length", nil).WithContext("sheet", sheet)
	}

	name, err := w.addSheet(sheet)
	if err != nil {
		return err
	}

	var order []string
	byGroup := make(map[string][]int)
	for i := range data.X {
		if math.IsNaN(data.X[i]) || math.IsNaN(data.Y[i]) {
			continue
		}
		if data.Size != nil && math.IsNaN(data.Size[i]) {
			continue
		}
		g := ""
		if data.Groups != nil {
			g = data.Groups[i]
		}
		if _, ok := byGroup[g]; !ok {
			order = append(order, g)
		}
		byGroup[g] = append(byGroup[g], i)
	}

	header := []string{data.XName, data.YName}
	if data.Size != nil {
		header = append(header, data.SizeName)
	}
	if data.Groups != nil {
		header = append(header, "GRUPO")
	}

	t := excelize.Scatter
	if data.Size != nil {
		t = excelize.Bubble
	}
	chart := baseChart(t, opts)
	chart.VaryColors = boolPtr(false)
	if data.Groups == nil {
		chart.Legend.Position = "none"
	}

	var rows [][]interface{}
	for _, g := range order {
		first := len(rows) + 2
		for _, i := range byGroup[g] {
			row := []interface{}{data.X[i], data.Y[i]}
			if data.Size != nil {
				row = append(row, data.Size[i])
			}
			if data.Groups != nil {
				row = append(row, g)
			}
			rows = append(rows, row)
		}
		last := len(rows) + 1

		s := excelize.ChartSeries{
			Name:       cellRef(name, 2, 1),
			Categories: columnRef(name, 1, first, last),
			Values:     columnRef(name, 2, first, last),
		}
		if data.Groups != nil {
			s.Name = cellRef(name, len(header), first)
		}
		if data.Size != nil {
			s.Sizes = columnRef(name, 3, first, last)
		} else {
			s.Line = excelize.ChartLine{Type: excelize.ChartLineNone}
			s.Marker = excelize.ChartMarker{Symbol: "circle", Size: 5}
		}
		chart.Series = append(chart.Series, s)
	}

	if err := w.writeTable(name, header, rows); err != nil {
		return err
	}
	return w.addChart(name, len(header), len(rows), chart)
}

// categoryChart writes labels and series as a table and plots every series
// against the label column.
func (w *Workbook) categoryChart(sheet string, labels []string, series []Series, chart *excelize.Chart, decorate func(*excelize.ChartSeries)) error {
	header, rows, err := categoryTable(labels, series)
	if err != nil {
		return apperrors.NewRenderError("invalid chart data", err).WithContext("sheet", sheet)
	}

	name, err := w.addSheet(sheet)
	if err != nil {
		return err
	}
	if err := w.writeTable(name, header, rows); err != nil {
		return err
	}

	last := len(labels) + 1
	for i := range series {
		col := i + 2
		s := excelize.ChartSeries{
			Name:       cellRef(name, col, 1),
			Categories: columnRef(name, 1, 2, last),
			Values:     columnRef(name, col, 2, last),
		}
		if decorate != nil {
			decorate(&s)
		}
		chart.Series = append(chart.Series, s)
	}
	return w.addChart(name, len(header), len(labels), chart)
}

// cellValue leaves missing values as empty cells.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
