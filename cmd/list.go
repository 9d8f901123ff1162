package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:       "list years|regions|countries|factors",
	Short:     "List the values accepted by --year, --region, country and --factor",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"years", "regions", "countries", "factors"},
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		var values []string
		switch args[0] {
		case "years":
			for _, y := range t.Years() {
				values = append(values, strconv.Itoa(y))
			}
		case "regions":
			values = t.RegionChoices()
		case "countries":
			values = t.Countries()
		case "factors":
			for _, f := range dataset.Factors {
				values = append(values, fmt.Sprintf("%s\t%s", f, f.Label()))
			}
		}
		w := cmd.OutOrStdout()
		if listJSON {
			return printJSON(w, values)
		}
		if len(values) == 0 {
			fmt.Fprintln(w, "(none)")
			return nil
		}
		for _, v := range values {
			fmt.Fprintln(w, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print a JSON array")
}
