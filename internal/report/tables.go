package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	"github.com/KaramelBytes/happiness-cli/internal/metrics"
)

// Table is a header plus string rows, rendered either for the terminal or
// as a Markdown table.
type Table struct {
	Header []string
	Rows   [][]string
}

// TopTable lists rows with their position in the selection.
func TopTable(rows []dataset.Record) Table {
	t := Table{Header: []string{"#", "Country", "Region", "Score"}}
	for i, r := range rows {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), r.Country, orDash(r.Region.Value), fmt.Sprintf("%.3f", r.HappinessScore)})
	}
	return t
}

// RegionTable lists regional means.
func RegionTable(means []metrics.GroupMean) Table {
	t := Table{Header: []string{"Region", "Average score", "Countries"}}
	for _, m := range means {
		t.Rows = append(t.Rows, []string{m.Region, fmt.Sprintf("%.2f", m.Mean), strconv.Itoa(m.Count)})
	}
	return t
}

// HistogramTable lists bucket ranges and counts.
func HistogramTable(h metrics.Histogram) Table {
	t := Table{Header: []string{"Score range", "Countries", ""}}
	for _, bk := range h.Buckets {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%.2f-%.2f", bk.Lo, bk.Hi),
			strconv.Itoa(bk.Count),
			strings.Repeat("#", bk.Count),
		})
	}
	return t
}

// ProfileTable lists per-column presence and spread.
func ProfileTable(cols []metrics.ColumnProfile) Table {
	t := Table{Header: []string{"Column", "Values", "Missing", "Min", "Max", "Mean", "Std"}}
	for _, c := range cols {
		row := []string{c.Field.Label(), strconv.Itoa(c.NonNull), strconv.Itoa(c.Missing), "-", "-", "-", "-"}
		if c.NonNull > 0 {
			row[3], row[4], row[5] = fmt.Sprintf("%.3f", c.Min), fmt.Sprintf("%.3f", c.Max), fmt.Sprintf("%.3f", c.Mean)
			row[6] = fmt.Sprintf("%.3f", c.Std)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// RankingTable lists factor correlations in rank order.
func RankingTable(ranking []metrics.Correlation) Table {
	t := Table{Header: []string{"Factor", "Correlation", "Countries"}}
	for _, c := range ranking {
		r := "n/a"
		if c.Valid {
			r = fmt.Sprintf("%.2f", c.R)
		}
		t.Rows = append(t.Rows, []string{c.Factor.Label(), r, strconv.Itoa(c.N)})
	}
	return t
}

// SeriesTable lists a country's key factors per year.
func SeriesTable(series []dataset.Record) Table {
	header := []string{"Year", "Rank", "Score"}
	for _, f := range dataset.Factors {
		header = append(header, string(f))
	}
	t := Table{Header: header}
	for _, r := range series {
		row := []string{r.Year.String(), orDash(r.HappinessRank.String()), fmt.Sprintf("%.3f", r.HappinessScore)}
		for _, f := range dataset.Factors {
			row = append(row, formatNum(r.Factor(f)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Write renders the table with box borders for a terminal.
func (t Table) Write(w io.Writer) {
	tw := newWriter(w, t.Header)
	tw.AppendBulk(t.Rows)
	tw.Render()
}

// Markdown renders the table in pipe-table syntax.
func (t Table) Markdown() string {
	var b strings.Builder
	tw := newWriter(&b, t.Header)
	tw.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	tw.SetCenterSeparator("|")
	tw.AppendBulk(t.Rows)
	tw.Render()
	return b.String()
}

func writeMarkdownTable(b *strings.Builder, t Table) {
	b.WriteString(t.Markdown())
	b.WriteString("\n")
}

func newWriter(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	return tw
}

func formatNum(n dataset.Num) string {
	if !n.Valid {
		return "-"
	}
	return fmt.Sprintf("%.3f", n.Value)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
