package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	"github.com/KaramelBytes/happiness-cli/internal/metrics"
	"github.com/KaramelBytes/happiness-cli/internal/report"
)

var profSel selectionFlags

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Column coverage and spread for the loaded dataset",
	Long:  "Counts present and missing values for every numeric column and reports min, max, mean and standard deviation. With --year or --region only the matching rows are profiled.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		rows := t.Records()
		scope := "all rows"
		if cmd.Flags().Changed("year") {
			rows = dataset.Filter(t, profSel.year, profSel.region).Records()
			scope = fmt.Sprintf("%d, %s", profSel.year, profSel.region)
		} else if profSel.region != dataset.AllRegions {
			rows = t.All().Where(func(r dataset.Record) bool { return r.Region.Value == profSel.region }).Records()
			scope = profSel.region
		}
		prof := metrics.Profile(rows)
		w := cmd.OutOrStdout()
		if profSel.json {
			return printJSON(w, prof)
		}
		if len(rows) == 0 {
			warn(w, report.NoDataWarning)
			return nil
		}
		heading(w, fmt.Sprintf("Column profile (%s, %d rows)", scope, len(rows)))
		report.ProfileTable(prof).Write(w)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profSel.bindYearRegion(profileCmd)
	profSel.bindJSON(profileCmd)
}
