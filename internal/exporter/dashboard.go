package exporter

import (
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/dataprocessing"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/pkg/contracts/domain"
)

// DashboardExporter writes the curated dashboard table
type DashboardExporter struct {
	writer *CSVWriter
	logger *slog.Logger
}

// NewDashboardExporter creates a dashboard exporter
func NewDashboardExporter(writer *CSVWriter, logger *slog.Logger) *DashboardExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardExporter{writer: writer, logger: logger}
}

// Select restricts complete to the dashboard columns it has, in dashboard
// order. TIPO_ESCOLA is derived from TP_ESCOLA first. The outcome is skipped
// only when no dashboard column exists; otherwise Missing lists the absent ones.
func (d *DashboardExporter) Select(complete dataframe.DataFrame) (dataprocessing.Outcome[dataframe.DataFrame], error) {
	labelled, err := dataprocessing.DeriveSchoolTypeLabel(complete)
	if err != nil {
		return dataprocessing.Outcome[dataframe.DataFrame]{}, err
	}
	table := labelled.Value

	present := dataprocessing.PresentColumns(table, domain.DashboardColumns)
	missing := dataprocessing.MissingColumns(table, domain.DashboardColumns)
	if len(present) == 0 {
		return dataprocessing.Skip(table, missing), nil
	}

	out := dataprocessing.Done(table.Select(present))
	out.Missing = missing
	return out, out.Value.Err
}

// Export writes the dashboard table to path.
func (d *DashboardExporter) Export(path string, complete dataframe.DataFrame, options WriteOptions) (dataprocessing.Outcome[dataframe.DataFrame], error) {
	sel, err := d.Select(complete)
	if err != nil || sel.Skipped {
		return sel, err
	}

	if len(sel.Missing) > 0 {
		d.logger.Warn("Dashboard export without some columns", slog.Any("missing", sel.Missing))
	}

	if err := d.writer.WriteTable(path, sel.Value, options); err != nil {
		return sel, err
	}
	d.logger.Info("Dashboard data exported",
		slog.String("path", path),
		slog.Int("rows", sel.Value.Nrow()),
		slog.Int("columns", sel.Value.Ncol()))
	return sel, nil
}
