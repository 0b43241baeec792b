package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/errors"
)

// NullValues are the cell values read as missing.
var NullValues = []string{"", "NA", "NaN", "nan", "null"}

// commonDelimiters are checked when a header parses into a single column.
var commonDelimiters = []rune{';', ',', '\t', '|'}

// LoadOptions configures how a delimited file is read
type LoadOptions struct {
	Delimiter rune
	Encoding  string
}

// DefaultLoadOptions matches the raw INEP/IBGE exports
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Delimiter: ';', Encoding: "latin1"}
}

// Load reads a delimited file into a table. Any problem reading or parsing the
// file is returned as a MalformedInput error and no partial table is produced.
func Load(path string, opts LoadOptions) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewMalformedInputError(path, "cannot open input file", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		slog.Info("Loading input file",
			slog.String("path", path),
			slog.String("size", humanize.Bytes(uint64(info.Size()))),
			slog.String("encoding", opts.Encoding),
			slog.String("delimiter", string(opts.Delimiter)))
	}

	return LoadReader(f, path, opts)
}

// LoadReader reads a delimited table from r. name identifies the source in errors.
func LoadReader(r io.Reader, name string, opts LoadOptions) (dataframe.DataFrame, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ';'
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewMalformedInputError(name, "cannot read input", err)
	}

	text, err := decode(raw, opts.Encoding)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewMalformedInputError(name, "cannot decode input", err)
	}

	records, err := parseRecords(text, opts.Delimiter)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewMalformedInputError(name, "cannot parse delimited text", err)
	}

	if err := checkHeader(records[0], opts.Delimiter); err != nil {
		return dataframe.DataFrame{}, apperrors.NewMalformedInputError(name, "invalid header", err)
	}

	if len(records) == 1 {
		return emptyTable(records[0]), nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(NullValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, apperrors.NewMalformedInputError(name, "cannot build table", df.Err)
	}

	return df, nil
}

// decode converts raw bytes to UTF-8. A leading UTF-8 byte order mark always
// wins over the configured encoding and is stripped.
func decode(raw []byte, enc string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(enc))

	if name == "" || name == "utf-8" || name == "utf8" {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("input is not valid UTF-8")
		}
		return string(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))), nil
	}

	var e encoding.Encoding
	switch name {
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		e = charmap.ISO8859_1
	case "cp1252", "windows-1252":
		e = charmap.Windows1252
	default:
		var err error
		e, err = htmlindex.Get(name)
		if err != nil {
			return "", fmt.Errorf("unknown encoding %q: %w", enc, err)
		}
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(e.NewDecoder()), raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(out), nil
}

func parseRecords(text string, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = 0

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input is empty")
	}
	return records, nil
}

func checkHeader(header []string, delimiter rune) error {
	if len(header) == 1 {
		for _, d := range commonDelimiters {
			if d != delimiter && strings.ContainsRune(header[0], d) {
				return fmt.Errorf("single column header contains %q, wrong delimiter %q", d, delimiter)
			}
		}
	}

	seen := make(map[string]bool, len(header))
	for i, col := range header {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("column %d has an empty name", i+1)
		}
		if seen[col] {
			return fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = true
	}
	return nil
}

// emptyTable builds a table with the given header and no rows.
func emptyTable(header []string) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(cols...)
}

// LogProfile logs the shape of a table and its null counts per column.
func LogProfile(logger *slog.Logger, table string, df dataframe.DataFrame) {
	nulls := make(map[string]int)
	for _, name := range df.Names() {
		col := df.Col(name)
		n := 0
		for i := 0; i < col.Len(); i++ {
			if col.Elem(i).IsNA() {
				n++
			}
		}
		if n > 0 {
			nulls[name] = n
		}
	}

	logger.Info("Dataset profile",
		slog.String("table", table),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()),
		slog.Any("nulls", nulls))
}
