package server

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/KaramelBytes/happiness-cli/internal/chart"
	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	"github.com/KaramelBytes/happiness-cli/internal/report"
)

const dashboardTitle = "What makes countries happy?"

var chartAlt = map[string]string{
	chart.Top:          "Top countries",
	chart.Regions:      "Average score by region",
	chart.Distribution: "Distribution of scores",
	chart.Factor:       "Factor vs happiness",
	chart.Country:      "Country trend",
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	opt, err := s.options(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rep := report.Build(s.table, opt)

	prelude := s.selectionForm(opt)
	var b strings.Builder
	if rep.Overview.Empty {
		prelude += "<p class=\"notice\">" + html.EscapeString(report.NoDataWarning) + "</p>\n"
	} else {
		q := query(opt)
		for _, name := range chart.Available(rep) {
			fmt.Fprintf(&b, "![%s](/charts/%s.png?%s)\n\n", chartAlt[name], name, q)
		}
	}
	b.WriteString(rep.Markdown())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(report.Page(dashboardTitle, prelude, b.String()))
}

// selectionForm renders the filter controls as HTML.
func (s *Server) selectionForm(opt report.Options) string {
	var b strings.Builder
	b.WriteString("<form method=\"get\" action=\"/\">\n")

	years := make([]string, 0)
	for _, y := range s.table.Years() {
		years = append(years, strconv.Itoa(y))
	}
	writeSelect(&b, "year", "Year", years, nil, strconv.Itoa(opt.Year))
	writeSelect(&b, "region", "Region", s.table.RegionChoices(), nil, opt.Region)

	names := make([]string, len(dataset.Factors))
	labels := make([]string, len(dataset.Factors))
	for i, f := range dataset.Factors {
		names[i], labels[i] = string(f), f.Label()
	}
	writeSelect(&b, "factor", "Factor", names, labels, string(opt.Factor))
	writeSelect(&b, "country", "Country", s.table.Countries(), nil, opt.Country)

	b.WriteString("<button type=\"submit\">Update</button>\n</form>\n")
	return b.String()
}

func writeSelect(b *strings.Builder, name, label string, values, labels []string, selected string) {
	fmt.Fprintf(b, "<label>%s <select name=\"%s\">", html.EscapeString(label), name)
	for i, v := range values {
		text := v
		if labels != nil {
			text = labels[i]
		}
		sel := ""
		if v == selected {
			sel = " selected"
		}
		fmt.Fprintf(b, "<option value=\"%s\"%s>%s</option>", html.EscapeString(v), sel, html.EscapeString(text))
	}
	b.WriteString("</select></label>\n")
}

func query(opt report.Options) string {
	v := url.Values{}
	v.Set("year", strconv.Itoa(opt.Year))
	v.Set("region", opt.Region)
	v.Set("factor", string(opt.Factor))
	v.Set("country", opt.Country)
	v.Set("top", strconv.Itoa(opt.TopN))
	return v.Encode()
}
