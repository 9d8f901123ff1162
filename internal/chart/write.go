package chart

import (
	"errors"
	"path/filepath"

	applog "github.com/KaramelBytes/happiness-cli/internal/log"
	"github.com/KaramelBytes/happiness-cli/internal/report"
)

// WriteAll saves every chart the report can draw into dir as <name>.png and
// returns the written paths. Charts without data are skipped.
func WriteAll(dir string, r *report.Report, size Size, logger *applog.Logger) ([]string, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentChart)
	var written []string
	for _, name := range Names {
		p, err := Build(name, r)
		if errors.Is(err, ErrNoData) {
			logger.Debug("chart skipped", "chart", name)
			continue
		}
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, name+".png")
		if err := SavePNG(path, p, size); err != nil {
			return written, err
		}
		logger.Info("chart written", applog.FieldFile, path)
		written = append(written, path)
	}
	return written, nil
}
