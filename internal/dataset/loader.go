package dataset

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	applog "github.com/KaramelBytes/happiness-cli/internal/log"
)

// ErrSourceNotFound is returned when none of the candidate paths exist.
var ErrSourceNotFound = errors.New("data source not found")

// headerAliases maps source header variants to canonical names. Matching is
// exact: "Happiness score" is not an alias of HappinessScore.
var headerAliases = map[string]Field{
	"Happiness Score":               FieldHappinessScore,
	"Happiness Rank":                FieldHappinessRank,
	"Economy (GDP per Capita)":      FieldEconomy,
	"Health (Life Expectancy)":      FieldHealth,
	"Trust (Government Corruption)": FieldTrust,
	"year":                          FieldYear,
	"Standard Error":                FieldStandardError,
	"Dystopia Residual":             FieldDystopiaResidual,
}

var canonicalFields = map[Field]bool{
	FieldCountry: true, FieldRegion: true, FieldYear: true,
	FieldHappinessScore: true, FieldHappinessRank: true, FieldStandardError: true,
	FieldEconomy: true, FieldFamily: true, FieldHealth: true, FieldFreedom: true,
	FieldTrust: true, FieldGenerosity: true, FieldDystopiaResidual: true,
}

// NormalizeHeader maps a source header to its canonical field. The header is
// matched as written, surrounding whitespace included. The second result is
// false for headers without a canonical field.
func NormalizeHeader(h string) (Field, bool) {
	if f, ok := headerAliases[h]; ok {
		return f, true
	}
	if canonicalFields[Field(h)] {
		return Field(h), true
	}
	return "", false
}

func isIndexColumn(h string) bool {
	h = strings.TrimSpace(h)
	return h == "" || h == "Unnamed: 0"
}

// Loader reads and normalizes the dataset. Tables are memoized per resolved
// path for the life of the Loader and are never invalidated.
type Loader struct {
	opt    ReadOptions
	logger *applog.Logger

	mu     sync.Mutex
	tables map[string]*Table
	group  singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSheet selects the XLSX worksheet to read.
func WithSheet(name string) LoaderOption {
	return func(l *Loader) { l.opt.Sheet = name }
}

// WithLogger sets the logger used for load events.
func WithLogger(logger *applog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader constructs a Loader with an empty cache.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{tables: make(map[string]*Table)}
	for _, o := range opts {
		o(l)
	}
	if l.logger == nil {
		l.logger = applog.Discard()
	}
	l.logger = l.logger.WithComponent(applog.ComponentDataset)
	return l
}

// Resolve returns the absolute path of the first candidate that exists as a
// regular file.
func Resolve(candidates []string) (string, error) {
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		info, err := os.Stat(c)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", c, err)
		}
		return abs, nil
	}
	return "", fmt.Errorf("%w (tried %s)", ErrSourceNotFound, strings.Join(candidates, ", "))
}

// Load resolves the first existing candidate and returns its table, reading
// the file only on the first call for that path.
func (l *Loader) Load(candidates []string) (*Table, error) {
	path, err := Resolve(candidates)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	t, ok := l.tables[path]
	l.mu.Unlock()
	if ok {
		return t, nil
	}
	v, err, _ := l.group.Do(path, func() (any, error) {
		l.mu.Lock()
		cached, ok := l.tables[path]
		l.mu.Unlock()
		if ok {
			return cached, nil
		}
		start := time.Now()
		t, err := ReadTable(path, l.opt)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.tables[path] = t
		l.mu.Unlock()
		l.logger.Info("dataset loaded",
			applog.FieldPath, path,
			applog.FieldRows, t.Len(),
			applog.FieldDropped, t.Dropped,
			applog.FieldDuration, time.Since(start).Milliseconds())
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

// ReadTable reads and normalizes a dataset file without caching.
func ReadTable(path string, opt ReadOptions) (*Table, error) {
	header, rows, err := sourceFor(path).Read(path, opt)
	if err != nil {
		return nil, err
	}
	t := &Table{Path: path, RowsRead: len(rows)}
	if len(header) == 0 {
		return t, nil
	}
	cols := mapColumns(header)
	for _, row := range rows {
		rec, ok := buildRecord(row, cols)
		if !ok {
			t.Dropped++
			continue
		}
		t.records = append(t.records, rec)
	}
	return t, nil
}

type column struct {
	field  Field
	header string
	skip   bool
}

// mapColumns assigns each header position a canonical field. The anonymous
// index column is skipped, and when two headers map to the same field only
// the first is used.
func mapColumns(header []string) []column {
	cols := make([]column, len(header))
	seen := map[Field]bool{}
	for i, h := range header {
		if isIndexColumn(h) {
			cols[i] = column{skip: true}
			continue
		}
		f, ok := NormalizeHeader(h)
		if !ok {
			cols[i] = column{header: strings.TrimSpace(h)}
			continue
		}
		if seen[f] {
			cols[i] = column{skip: true}
			continue
		}
		seen[f] = true
		cols[i] = column{field: f, header: h}
	}
	return cols
}

func buildRecord(row []string, cols []column) (Record, bool) {
	var rec Record
	var score Num
	for i, c := range cols {
		if c.skip {
			continue
		}
		val := ""
		if i < len(row) {
			val = strings.TrimSpace(row[i])
		}
		switch c.field {
		case "":
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[c.header] = val
		case FieldCountry:
			rec.Country = val
		case FieldRegion:
			if val != "" {
				rec.Region = SomeStr(val)
			}
		case FieldYear:
			rec.Year = parseInt(val)
		case FieldHappinessRank:
			rec.HappinessRank = parseInt(val)
		case FieldHappinessScore:
			score = parseNum(val)
		default:
			rec.setNum(c.field, parseNum(val))
		}
	}
	if !score.Valid || rec.Country == "" {
		return Record{}, false
	}
	rec.HappinessScore = score.Value
	return rec, true
}

// maxIntCell bounds integer cells so the int conversion is always exact.
const maxIntCell = math.MaxInt32

// parseNum coerces a cell to a finite decimal number; anything else,
// including NaN, infinities and hex floats, is missing.
func parseNum(s string) Num {
	if s == "" || isHexFloat(s) {
		return Num{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Num{}
	}
	return Some(f)
}

func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// parseInt accepts integers and integral floats such as "2015.0" within
// the int32 range.
func parseInt(s string) Int {
	n := parseNum(s)
	if !n.Valid || n.Value != math.Trunc(n.Value) || math.Abs(n.Value) > maxIntCell {
		return Int{}
	}
	return SomeInt(int(n.Value))
}
