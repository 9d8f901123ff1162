package cmd

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	"github.com/KaramelBytes/happiness-cli/internal/report"
	"github.com/KaramelBytes/happiness-cli/internal/utils"
)

// selectionFlags are the filter inputs shared by the analysis commands.
type selectionFlags struct {
	year    int
	region  string
	factor  string
	country string
	top     int
	json    bool
}

func (s *selectionFlags) bindYearRegion(c *cobra.Command) {
	c.Flags().IntVarP(&s.year, "year", "y", 0, "year to analyze (default: first year in the dataset)")
	c.Flags().StringVarP(&s.region, "region", "r", dataset.AllRegions, "region to analyze")
}

func (s *selectionFlags) bindFactor(c *cobra.Command) {
	c.Flags().StringVarP(&s.factor, "factor", "f", string(dataset.FieldEconomy), "factor to compare with happiness (name or label)")
}

func (s *selectionFlags) bindCountry(c *cobra.Command) {
	c.Flags().StringVarP(&s.country, "country", "c", "", "country for the trend section (default: first country)")
}

func (s *selectionFlags) bindTop(c *cobra.Command) {
	c.Flags().IntVarP(&s.top, "top", "n", 0, "number of countries in the top table (default from config)")
}

func (s *selectionFlags) bindJSON(c *cobra.Command) {
	c.Flags().BoolVar(&s.json, "json", false, "print JSON instead of tables")
}

// options merges the flags with config values and dataset defaults.
func (s *selectionFlags) options(c *cobra.Command, t *dataset.Table) (report.Options, error) {
	opt := report.DefaultOptions(t)
	if cfg != nil {
		opt.TopN, opt.Bins = cfg.TopN, cfg.HistBins
	}
	f := c.Flags()
	if f.Lookup("year") != nil && f.Changed("year") {
		opt.Year = s.year
	}
	if s.region != "" {
		opt.Region = s.region
	}
	if f.Lookup("factor") != nil && s.factor != "" {
		factor, err := dataset.ParseFactor(s.factor)
		if err != nil {
			return opt, err
		}
		opt.Factor = factor
	}
	if s.country != "" {
		opt.Country = s.country
	}
	if s.top > 0 {
		opt.TopN = s.top
	}
	return opt, nil
}

func heading(w io.Writer, text string) {
	color.New(color.FgCyan, color.Bold).Fprintln(w, text)
}

func warn(w io.Writer, text string) {
	color.New(color.FgYellow).Fprintln(w, "⚠ "+text)
}

func bullets(w io.Writer, lines []string) {
	for _, l := range lines {
		io.WriteString(w, "- "+plain(l)+"\n")
	}
}

// plain strips Markdown emphasis for terminal output.
func plain(s string) string { return strings.ReplaceAll(s, "**", "") }

func printJSON(w io.Writer, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
