// Package dataset loads the per-state indicator table into StateRecords.
package dataset

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/state-scatter/internal/fetcher"
	"github.com/sells-group/state-scatter/internal/model"
)

// Supported table formats.
const (
	FormatAuto = ""
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// RequiredColumns are the header names every dataset must carry.
var RequiredColumns = []string{"state", "abbr", "poverty", "age", "income", "healthcare", "obesity", "smokes"}

// Options configures Load.
type Options struct {
	Location  string // path or file/http(s)/ftp URL
	Format    string // FormatAuto picks from the location's extension
	Delimiter rune   // CSV only; default ','
	Encoding  string // CSV only; WHATWG charset label, default UTF-8
	Sheet     string // XLSX only; default first sheet
	Timeout   time.Duration
	Fetch     fetcher.Options
}

// rawRecord mirrors one table row before numeric coercion.
type rawRecord struct {
	State      string `csv:"state"`
	Abbr       string `csv:"abbr"`
	Poverty    string `csv:"poverty"`
	Age        string `csv:"age"`
	Income     string `csv:"income"`
	Healthcare string `csv:"healthcare"`
	Smokes     string `csv:"smokes"`
	Obesity    string `csv:"obesity"`
}

func (r rawRecord) record() model.StateRecord {
	return model.StateRecord{
		State:      r.State,
		Abbr:       r.Abbr,
		Poverty:    ParseNumber(r.Poverty),
		Age:        ParseNumber(r.Age),
		Income:     ParseNumber(r.Income),
		Healthcare: ParseNumber(r.Healthcare),
		Smokes:     ParseNumber(r.Smokes),
		Obesity:    ParseNumber(r.Obesity),
	}
}

// Load fetches and parses the dataset. Any failure is a *LoadError.
func Load(ctx context.Context, opts Options) ([]model.StateRecord, error) {
	fetchOpts := opts.Fetch
	if fetchOpts.Timeout == 0 {
		fetchOpts.Timeout = opts.Timeout
	}

	rc, err := fetcher.Open(ctx, opts.Location, fetchOpts)
	if err != nil {
		return nil, newLoadError(opts.Location, err)
	}
	defer rc.Close() //nolint:errcheck

	var rows fetcher.RowReader
	switch format := ResolveFormat(opts.Location, opts.Format); format {
	case FormatXLSX:
		cells, err := fetcher.ReadXLSX(rc, fetcher.XLSXOptions{SheetName: opts.Sheet})
		if err != nil {
			return nil, newLoadError(opts.Location, err)
		}
		rows = fetcher.NewSliceRows(cells)
	case FormatCSV:
		r, err := fetcher.DecodeCharset(rc, opts.Encoding)
		if err != nil {
			return nil, newLoadError(opts.Location, err)
		}
		rows = fetcher.NewCSVReader(r, fetcher.CSVOptions{Delimiter: opts.Delimiter})
	default:
		return nil, newLoadError(opts.Location, eris.Errorf("unsupported format %q", format))
	}

	records, err := Decode(rows)
	if err != nil {
		return nil, newLoadError(opts.Location, err)
	}

	zap.L().Info("dataset: loaded",
		zap.String("source", opts.Location),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// ResolveFormat returns the explicit format, or infers it from the
// location's extension (".xlsx" → xlsx, anything else → csv).
func ResolveFormat(location, format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatAuto {
		return format
	}
	p := location
	if i := strings.IndexAny(p, "?#"); i >= 0 && fetcher.Scheme(location) != "" {
		p = p[:i]
	}
	if strings.EqualFold(path.Ext(p), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Decode reads a header row followed by data rows and returns one record
// per data row, in row order.
func Decode(rows fetcher.RowReader) ([]model.StateRecord, error) {
	header, err := rows.Read()
	if err == io.EOF {
		return nil, eris.New("empty table: no header row")
	}
	if err != nil {
		return nil, eris.Wrap(err, "read header")
	}

	header = normalizeHeader(header)
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, eris.Errorf("header missing columns: %s", strings.Join(missing, ", "))
	}

	dec, err := csvutil.NewDecoder(&paddedRows{src: rows, width: len(header)}, header...)
	if err != nil {
		return nil, eris.Wrap(err, "init decoder")
	}

	var records []model.StateRecord
	for {
		var raw rawRecord
		if err := dec.Decode(&raw); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "decode row %d", len(records)+1)
		}
		records = append(records, raw.record())
	}
	return records, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

func missingColumns(header []string) []string {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// paddedRows pads short rows with empty cells and truncates long ones so
// every row matches the header width.
type paddedRows struct {
	src   fetcher.RowReader
	width int
}

func (p *paddedRows) Read() ([]string, error) {
	row, err := p.src.Read()
	if err != nil {
		return nil, err
	}
	if len(row) == p.width {
		return row, nil
	}
	out := make([]string, p.width)
	copy(out, row)
	return out, nil
}
