package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happiness-cli/internal/report"
	"github.com/KaramelBytes/happiness-cli/internal/utils"
)

var (
	repSel    selectionFlags
	repOutput string
	repHTML   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the full analysis as Markdown or HTML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		opt, err := repSel.options(cmd, t)
		if err != nil {
			return err
		}
		md := report.Build(t, opt).Markdown()
		asHTML := repHTML || strings.EqualFold(filepath.Ext(repOutput), ".html")
		out := []byte(md)
		if asHTML {
			out = report.HTML("World Happiness report", md)
		}
		if repOutput == "" {
			_, err := cmd.OutOrStdout().Write(out)
			return err
		}
		if err := utils.SafeWriteFile(repOutput, out); err != nil {
			return err
		}
		logger.Info("report written", "file", repOutput, "html", asHTML)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", repOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	repSel.bindYearRegion(reportCmd)
	repSel.bindFactor(reportCmd)
	repSel.bindCountry(reportCmd)
	repSel.bindTop(reportCmd)
	reportCmd.Flags().StringVarP(&repOutput, "output", "o", "", "write to a file instead of stdout (.html implies --html)")
	reportCmd.Flags().BoolVar(&repHTML, "html", false, "render HTML instead of Markdown")
}
