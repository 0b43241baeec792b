package exporter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/config"
	apperrors "github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/errors"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance. Relative paths are resolved
// against paths.BaseDir; paths may be nil.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Delimiter rune
	BOMPrefix bool // UTF-8 BOM for Excel
}

// WriteCSV creates or truncates filePath with the given header and records.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).WithContext("path", fullPath)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return apperrors.NewStorageError("failed to create file", err).WithContext("path", fullPath)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writeRecords(tmp, options); err != nil {
		tmp.Close()
		return apperrors.NewStorageError("failed to write records", err).WithContext("path", fullPath)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewStorageError("failed to close file", err).WithContext("path", fullPath)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return apperrors.NewStorageError("failed to set permissions", err).WithContext("path", fullPath)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		return apperrors.NewStorageError("failed to replace file", err).WithContext("path", fullPath)
	}

	attrs := []any{
		slog.String("path", fullPath),
		slog.Int("records", len(options.Records)),
		slog.Int("columns", len(options.Headers)),
	}
	if info, err := os.Stat(fullPath); err == nil {
		attrs = append(attrs, slog.String("size", humanize.Bytes(uint64(info.Size()))))
	}
	w.logger.Info("CSV file written", attrs...)
	return nil
}

func writeRecords(f *os.File, options WriteOptions) error {
	buf := bufio.NewWriter(f)

	if options.BOMPrefix {
		if _, err := buf.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(buf)
	if options.Delimiter != 0 {
		writer.Comma = options.Delimiter
	}

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return buf.Flush()
}

// WriteTable writes df with a header row in column order and no index column.
// Headers and Records in options are ignored.
func (w *CSVWriter) WriteTable(filePath string, df dataframe.DataFrame, options WriteOptions) error {
	if df.Err != nil {
		return apperrors.NewStorageError("cannot write invalid table", df.Err).WithContext("path", filePath)
	}
	options.Headers = df.Names()
	options.Records = TableRecords(df)
	return w.WriteCSV(filePath, options)
}

// TableRecords formats every row of df with FormatCell.
func TableRecords(df dataframe.DataFrame) [][]string {
	cols := make([]series.Series, df.Ncol())
	for i, name := range df.Names() {
		cols[i] = df.Col(name)
	}

	records := make([][]string, df.Nrow())
	for r := range records {
		row := make([]string, len(cols))
		for c, s := range cols {
			row[c] = FormatCell(s.Elem(r))
		}
		records[r] = row
	}
	return records
}

// FormatCell renders one cell so that reloading keeps its type.
func FormatCell(e series.Element) string {
	if e.IsNA() {
		return ""
	}
	if e.Type() == series.Float {
		return formatFloat(e.Float())
	}
	return e.String()
}

func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// resolvePath resolves a relative path against the base directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil || w.paths.BaseDir == "" {
		return filePath
	}
	return filepath.Join(w.paths.BaseDir, filePath)
}
