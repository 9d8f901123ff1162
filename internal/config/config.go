package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user configuration directory under $HOME.
const DirName = ".happiness"

// DefaultDataPaths are the dataset candidates tried when none are configured.
var DefaultDataPaths = []string{"world_happiness_report.csv", "../world_happiness_report.csv"}

// Global configuration structure.
type Global struct {
	// Dataset
	DataPaths []string `mapstructure:"data_paths" yaml:"data_paths"`
	XLSXSheet string   `mapstructure:"xlsx_sheet" yaml:"xlsx_sheet"`

	// Metrics
	TopN     int `mapstructure:"top_n" yaml:"top_n"`
	HistBins int `mapstructure:"hist_bins" yaml:"hist_bins"`

	// Dashboard and charts
	ListenAddr    string  `mapstructure:"listen_addr" yaml:"listen_addr"`
	ChartDir      string  `mapstructure:"chart_dir" yaml:"chart_dir"`
	ChartWidthIn  float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Default returns the built-in settings used before any file or env override.
func Default() *Global {
	return &Global{
		DataPaths:     append([]string(nil), DefaultDataPaths...),
		TopN:          10,
		HistBins:      15,
		ListenAddr:    "127.0.0.1:8501",
		ChartDir:      "charts",
		ChartWidthIn:  8.0,
		ChartHeightIn: 4.5,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.happiness/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HAPPINESS")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("data_paths", d.DataPaths)
	v.SetDefault("xlsx_sheet", d.XLSXSheet)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("hist_bins", d.HistBins)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("chart_dir", d.ChartDir)
	v.SetDefault("chart_width_in", d.ChartWidthIn)
	v.SetDefault("chart_height_in", d.ChartHeightIn)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.DataPaths) == 0 {
		c.DataPaths = d.DataPaths
	}
	if c.TopN <= 0 {
		c.TopN = d.TopN
	}
	if c.HistBins <= 0 {
		c.HistBins = d.HistBins
	}
	return &c, nil
}
