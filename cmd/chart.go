package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happiness-cli/internal/chart"
	"github.com/KaramelBytes/happiness-cli/internal/report"
)

var (
	chSel    selectionFlags
	chOutDir string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render PNG charts for a selection",
	Long:  "Writes top.png, regions.png, distribution.png, factor.png and country.png. Charts without data for the selection are skipped.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		opt, err := chSel.options(cmd, t)
		if err != nil {
			return err
		}
		r := report.Build(t, opt)
		w := cmd.OutOrStdout()
		if r.Overview.Empty {
			warn(w, report.NoDataWarning)
		}
		dir := chOutDir
		if dir == "" {
			dir = cfg.ChartDir
		}
		paths, err := chart.WriteAll(dir, r, chart.SizeInches(cfg.ChartWidthIn, cfg.ChartHeightIn), logger)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(w, "✓ Wrote %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chSel.bindYearRegion(chartCmd)
	chSel.bindFactor(chartCmd)
	chSel.bindCountry(chartCmd)
	chSel.bindTop(chartCmd)
	chartCmd.Flags().StringVarP(&chOutDir, "out-dir", "d", "", "output directory (default from config chart_dir)")
}
