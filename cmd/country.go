package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happiness-cli/internal/report"
)

var ctrySel selectionFlags

var countryCmd = &cobra.Command{
	Use:   "country [name]",
	Short: "A country's happiness and key factors over time",
	Long:  "Shows the yearly series of one country, how its score changed, which factor moved the most and how it compares with its region in the latest year. Without a name the first country alphabetically is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		opt, err := ctrySel.options(cmd, t)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			opt.Country = args[0]
		}
		c := report.BuildCountry(t, opt.Country)
		w := cmd.OutOrStdout()
		if ctrySel.json {
			return printJSON(w, c)
		}
		if c.Empty() {
			warn(w, fmt.Sprintf("%s (%s)", report.NoCountryData, opt.Country))
			return nil
		}

		heading(w, "Country trends over time: "+c.Country)
		fmt.Fprintln(w, "Key factors over time:")
		report.SeriesTable(c.Series).Write(w)
		fmt.Fprintln(w)
		heading(w, "Country insights")
		bullets(w, report.CountryInsights(c))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countryCmd)
	ctrySel.bindJSON(countryCmd)
}
