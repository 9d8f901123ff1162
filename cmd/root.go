package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/happiness-cli/internal/config"
	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	applog "github.com/KaramelBytes/happiness-cli/internal/log"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	dataPaths []string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = applog.Discard()
	loader *dataset.Loader
)

var rootCmd = &cobra.Command{
	Use:   "happiness",
	Short: "Explore the World Happiness dataset from the terminal",
	Long: `happiness loads a World Happiness CSV (or XLSX) once and lets you filter it by
year and region to see summary statistics, the factors that move with happiness,
country trends, charts and a local dashboard.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.happiness/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringSliceVar(&dataPaths, "data", nil, "dataset file to load; repeat to give fallbacks (overrides data_paths)")
}

func loadConfig() {
	_ = godotenv.Load()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so read-only commands still work
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	lc := applog.DefaultConfig()
	lc.Level = applog.ParseLevel(cfg.LogLevel)
	if debug {
		lc.Level = applog.ParseLevel("debug")
	}
	lc.Format = cfg.LogFormat
	logger = applog.New(lc)
	applog.SetDefault(logger)
}

// loadTable returns the dataset, reading it on first use. --data takes
// precedence over data_paths.
func loadTable() (*dataset.Table, error) {
	if loader == nil {
		loader = dataset.NewLoader(dataset.WithSheet(cfg.XLSXSheet), dataset.WithLogger(logger))
	}
	paths := cfg.DataPaths
	if len(dataPaths) > 0 {
		paths = dataPaths
	}
	return loader.Load(paths)
}
