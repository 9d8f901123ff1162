package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happiness-cli/internal/report"
)

var ovSel selectionFlags

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summary metrics, top countries, regional means and score distribution",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		opt, err := ovSel.options(cmd, t)
		if err != nil {
			return err
		}
		o := report.BuildOverview(t, opt)
		w := cmd.OutOrStdout()
		if ovSel.json {
			return printJSON(w, o)
		}
		if o.Empty {
			warn(w, report.NoDataWarning)
			return nil
		}

		heading(w, fmt.Sprintf("World Happiness overview: %d, %s", o.Year, o.Region))
		fmt.Fprintf(w, "Countries in selection: %d\n", o.Summary.Count)
		fmt.Fprintf(w, "Average happiness score (0-10): %.2f\n", o.Summary.MeanScore)
		fmt.Fprintf(w, "Happiest country in %d: %s (%.2f)\n\n", o.Year, o.Summary.Top.Country, o.Summary.Top.HappinessScore)

		heading(w, fmt.Sprintf("Top %d happiest countries in %d", len(o.Top), o.Year))
		report.TopTable(o.Top).Write(w)
		fmt.Fprintln(w)
		heading(w, fmt.Sprintf("Average happiness score by region in %d", o.Year))
		report.RegionTable(o.Regions).Write(w)
		fmt.Fprintln(w)
		if o.Histogram != nil {
			heading(w, "Distribution of happiness scores")
			report.HistogramTable(*o.Histogram).Write(w)
			fmt.Fprintln(w)
		}
		heading(w, "Overview insights")
		bullets(w, report.OverviewInsights(o))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	ovSel.bindYearRegion(overviewCmd)
	ovSel.bindTop(overviewCmd)
	ovSel.bindJSON(overviewCmd)
}
