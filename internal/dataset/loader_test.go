package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"
)

var legacyCSV = []string{
	",Country,Region,Happiness Rank,Happiness Score,Standard Error,Economy (GDP per Capita),Family,Health (Life Expectancy),Freedom,Trust (Government Corruption),Generosity,Dystopia Residual,year",
	"0,Switzerland,Western Europe,1,7.587,0.03411,1.39651,1.34951,0.94143,0.66557,0.41978,0.29678,2.51738,2015",
	"1,Iceland,Western Europe,2,7.561,0.04884,1.30232,1.40223,0.94784,0.62877,0.14145,0.4363,2.70201,2015",
	"2,Togo,Sub-Saharan Africa,158,2.839,0.06727,0.20868,0.13995,0.28443,0.36453,0.10731,0.16681,1.56726,2015",
	"3,Iceland,Western Europe,3,7.501,,1.42666,1.18326,0.86733,0.56624,0.14975,0.47678,,2016",
}

var canonicalCSV = []string{
	"Country,Region,HappinessRank,HappinessScore,StandardError,Economy,Family,Health,Freedom,Trust,Generosity,DystopiaResidual,Year",
	"Switzerland,Western Europe,1,7.587,0.03411,1.39651,1.34951,0.94143,0.66557,0.41978,0.29678,2.51738,2015",
	"Iceland,Western Europe,2,7.561,0.04884,1.30232,1.40223,0.94784,0.62877,0.14145,0.4363,2.70201,2015",
	"Togo,Sub-Saharan Africa,158,2.839,0.06727,0.20868,0.13995,0.28443,0.36453,0.10731,0.16681,1.56726,2015",
	"Iceland,Western Europe,3,7.501,,1.42666,1.18326,0.86733,0.56624,0.14975,0.47678,,2016",
}

func writeFile(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadNormalizesLegacyHeaders(t *testing.T) {
	dir := t.TempDir()
	legacy, err := ReadTable(writeFile(t, dir, "legacy.csv", legacyCSV), ReadOptions{})
	if err != nil {
		t.Fatalf("read legacy: %v", err)
	}
	canon, err := ReadTable(writeFile(t, dir, "canon.csv", canonicalCSV), ReadOptions{})
	if err != nil {
		t.Fatalf("read canonical: %v", err)
	}
	if legacy.Len() != 4 || canon.Len() != 4 {
		t.Fatalf("rows: legacy=%d canonical=%d, want 4", legacy.Len(), canon.Len())
	}
	if !reflect.DeepEqual(legacy.Records(), canon.Records()) {
		t.Fatalf("legacy and canonical tables differ:\n%+v\n%+v", legacy.Records(), canon.Records())
	}
	r := legacy.At(0)
	if r.Country != "Switzerland" || r.Region.Value != "Western Europe" || r.Year.Value != 2015 {
		t.Fatalf("unexpected first record: %+v", r)
	}
	if r.HappinessRank.Value != 1 || r.Economy.Value != 1.39651 || r.Trust.Value != 0.41978 {
		t.Fatalf("unexpected numeric fields: %+v", r)
	}
	if r.Extra != nil {
		t.Fatalf("anonymous index column should be dropped, got extra %v", r.Extra)
	}
	last := legacy.At(3)
	if last.StandardError.Valid || last.DystopiaResidual.Valid {
		t.Fatalf("empty cells should be missing: %+v", last)
	}
}

func TestLoadCoercesAndDropsRequiredFields(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "messy.csv", []string{
		"Country,Region,Happiness Score,Economy,Family,year,Notes",
		"Aland,North,7.1,n/a,1.2,2015,first",
		",North,6.0,1.0,1.0,2015,no country",
		"Borduria,,abc,1.0,1.0,2015,bad score",
		"Carpania,South,5.5,0.9,,2015.0,ok",
		"Dorne,South,NaN,0.9,0.8,2015,nan score",
		"Elbonia,South,4.0,0.5,0.4,unknown,no year",
	})
	tbl, err := ReadTable(p, ReadOptions{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tbl.Len() != 3 || tbl.Dropped != 3 || tbl.RowsRead != 6 {
		t.Fatalf("len=%d dropped=%d read=%d", tbl.Len(), tbl.Dropped, tbl.RowsRead)
	}
	for i := 0; i < tbl.Len(); i++ {
		r := tbl.At(i)
		if r.Country == "" || math.IsNaN(r.HappinessScore) {
			t.Fatalf("required-field invariant violated: %+v", r)
		}
	}
	a := tbl.At(0)
	if a.Economy.Valid {
		t.Fatalf("unparseable economy should be missing: %+v", a.Economy)
	}
	if a.Extra["Notes"] != "first" {
		t.Fatalf("unknown columns should be preserved, got %v", a.Extra)
	}
	c := tbl.At(1)
	if !c.Year.Valid || c.Year.Value != 2015 || c.Family.Valid {
		t.Fatalf("unexpected carpania: %+v", c)
	}
	e := tbl.At(2)
	if e.Year.Valid || !e.Region.Valid {
		t.Fatalf("expected missing year but present region: %+v", e)
	}
}

func TestLoaderCachesAndFallsBack(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "world_happiness_report.csv", canonicalCSV)
	missing := filepath.Join(dir, "nested", "world_happiness_report.csv")

	l := NewLoader()
	first, err := l.Load([]string{missing, p})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if abs, _ := filepath.Abs(p); first.Path != abs {
		t.Fatalf("path = %s, want %s", first.Path, abs)
	}
	// Rewriting the file must not change the cached table.
	if err := os.WriteFile(p, []byte("Country,HappinessScore\nX,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := l.Load([]string{missing, p})
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatalf("expected the cached table pointer")
	}
	if second.Len() != 4 {
		t.Fatalf("cached table changed: %d rows", second.Len())
	}
}

func TestLoaderConcurrentMisses(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "data.csv", canonicalCSV)
	l := NewLoader()

	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, err := l.Load([]string{p})
			if err != nil {
				t.Errorf("load %d: %v", i, err)
				return
			}
			tables[i] = tbl
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(tables); i++ {
		if tables[i] != tables[0] {
			t.Fatalf("load %d returned a different table", i)
		}
	}
}

func TestLoadIdempotentAcrossLoaders(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "data.csv", legacyCSV)
	a, err := NewLoader().Load([]string{p})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewLoader().Load([]string{p})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Records(), b.Records()) {
		t.Fatalf("tables differ between loads")
	}
}

func TestLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader().Load([]string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")})
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	// A directory is not a data source.
	if _, err := Resolve([]string{dir}); !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound for directory, got %v", err)
	}
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "happiness.xlsx")
	f := excelize.NewFile()
	rows := [][]any{
		{"Country", "Region", "Happiness Score", "Economy (GDP per Capita)", "year"},
		{"Finland", "Western Europe", 7.5, 1.3, 2015},
		{"Finland", "Western Europe", 7.4, 1.35, 2016},
		{"Nowhere", "", "", 1.0, 2016},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		row := row
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	_ = f.Close()

	tbl, err := NewLoader().Load([]string{p})
	if err != nil {
		t.Fatalf("load xlsx: %v", err)
	}
	if tbl.Len() != 2 || tbl.Dropped != 1 {
		t.Fatalf("len=%d dropped=%d", tbl.Len(), tbl.Dropped)
	}
	if got := tbl.At(1); got.HappinessScore != 7.4 || got.Year.Value != 2016 || got.Economy.Value != 1.35 {
		t.Fatalf("unexpected record: %+v", got)
	}

	if _, err := NewLoader(WithSheet("Missing")).Load([]string{p}); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
}

func TestNormalizeHeaderIsExact(t *testing.T) {
	cases := map[string]Field{
		"Happiness Score":          FieldHappinessScore,
		"HappinessScore":           FieldHappinessScore,
		"year":                     FieldYear,
		"Year":                     FieldYear,
		"Economy (GDP per Capita)": FieldEconomy,
	}
	for in, want := range cases {
		got, ok := NormalizeHeader(in)
		if !ok || got != want {
			t.Errorf("NormalizeHeader(%q) = %q,%v want %q", in, got, ok, want)
		}
	}
	for _, in := range []string{"happiness score", "YEAR", "Economy (GDP per capita)", " Happiness Score", "Country "} {
		if _, ok := NormalizeHeader(in); ok {
			t.Errorf("NormalizeHeader(%q) should not match", in)
		}
	}
}

func TestLoadRejectsNonFiniteAndHexNumbers(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "odd.csv", []string{
		"Country,Region,Happiness Score,Economy,year",
		"Aland,North,inf,1.0,2015",
		"Borduria,North,-Infinity,1.0,2015",
		"Carpania,North,0x1p2,1.0,2015",
		"Dorne,North,1e400,1.0,2015",
		"Elbonia,North,5.5,+Inf,2015",
		"Freedonia,North,6.5,0X1P-2,1e300",
		"Genovia,North,7.0,0.5,-2015",
	})
	tbl, err := ReadTable(p, ReadOptions{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tbl.Len() != 3 || tbl.Dropped != 4 {
		t.Fatalf("len=%d dropped=%d, want 3 and 4", tbl.Len(), tbl.Dropped)
	}
	for i := 0; i < tbl.Len(); i++ {
		if r := tbl.At(i); math.IsInf(r.HappinessScore, 0) {
			t.Fatalf("infinite score kept: %+v", r)
		}
	}
	if e := tbl.At(0); e.Country != "Elbonia" || e.Economy.Valid {
		t.Fatalf("infinite economy should be missing: %+v", e)
	}
	f := tbl.At(1)
	if f.Economy.Valid || f.Year.Valid {
		t.Fatalf("hex economy and out-of-range year should be missing: %+v", f)
	}
	if g := tbl.At(2); !g.Year.Valid || g.Year.Value != -2015 {
		t.Fatalf("in-range integral year should parse: %+v", g)
	}
}

func TestLoadMatchesRawHeaders(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "spaced.csv", []string{
		"Country, Happiness Score,HappinessScore,year",
		"Aland,1.0,7.0,2015",
	})
	tbl, err := ReadTable(p, ReadOptions{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("len=%d, want 1", tbl.Len())
	}
	r := tbl.At(0)
	if r.HappinessScore != 7.0 {
		t.Fatalf("spaced header must not map to the score, got %v", r.HappinessScore)
	}
	if r.Extra["Happiness Score"] != "1.0" {
		t.Fatalf("spaced header should be kept as an extra column, got %v", r.Extra)
	}
}
