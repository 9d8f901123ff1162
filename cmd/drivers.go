package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happiness-cli/internal/report"
)

var drvSel selectionFlags

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "How the factors relate to happiness in a selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		opt, err := drvSel.options(cmd, t)
		if err != nil {
			return err
		}
		d := report.BuildDrivers(t, opt)
		w := cmd.OutOrStdout()
		if drvSel.json {
			return printJSON(w, d)
		}
		if d.Empty {
			warn(w, report.NoDataWarning)
			return nil
		}

		heading(w, fmt.Sprintf("How does %s relate to happiness? (%d, %s)", d.Factor.Factor.Label(), d.Year, d.Region))
		if d.Factor.N == 0 {
			warn(w, report.NoFactorData)
		} else {
			fmt.Fprintln(w, plain(report.CorrelationSentence(d.Factor)))
		}
		fmt.Fprintln(w)

		heading(w, "Which factors correlate most with happiness?")
		fmt.Fprintln(w, "Correlation with happiness score (higher = stronger positive relationship):")
		report.RankingTable(d.Ranking).Write(w)
		fmt.Fprintln(w)
		fmt.Fprintln(w, report.CorrelationCaveat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(driversCmd)
	drvSel.bindYearRegion(driversCmd)
	drvSel.bindFactor(driversCmd)
	drvSel.bindJSON(driversCmd)
}
