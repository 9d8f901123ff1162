package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(c.DataPaths, DefaultDataPaths) {
		t.Fatalf("data_paths = %v", c.DataPaths)
	}
	if c.TopN != 10 || c.HistBins != 15 {
		t.Fatalf("top_n=%d hist_bins=%d", c.TopN, c.HistBins)
	}
	if c.ListenAddr == "" || c.LogLevel != "info" || c.LogFormat != "text" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		DataPaths: []string{"/data/whr.xlsx"},
		XLSXSheet: "2019",
		TopN:      5,
		HistBins:  20,
		LogLevel:  "debug",
		LogFormat: "json",
	}
	if err := Save(in, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(out.DataPaths, in.DataPaths) || out.XLSXSheet != "2019" || out.TopN != 5 || out.HistBins != 20 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("top_n: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HAPPINESS_TOP_N", "7")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TopN != 7 {
		t.Fatalf("top_n = %d, want env value 7", c.TopN)
	}
}

func TestSaveDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := Save(&Global{TopN: 4}, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, DirName, "config.yaml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.TopN != 4 {
		t.Fatalf("top_n = %d", c.TopN)
	}
}
