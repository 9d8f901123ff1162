package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KaramelBytes/happiness-cli/internal/chart"
	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	applog "github.com/KaramelBytes/happiness-cli/internal/log"
	"github.com/KaramelBytes/happiness-cli/internal/metrics"
	"github.com/KaramelBytes/happiness-cli/internal/report"
)

type factorInfo struct {
	Name  dataset.Field `json:"name"`
	Label string        `json:"label"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
		"rows":      s.table.Len(),
	})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table.Years())
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table.RegionChoices())
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table.Countries())
}

func (s *Server) handleFactors(w http.ResponseWriter, r *http.Request) {
	out := make([]factorInfo, len(dataset.Factors))
	for i, f := range dataset.Factors {
		out[i] = factorInfo{Name: f, Label: f.Label()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Profile(s.table.Records()))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	opt, err := s.options(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildOverview(s.table, opt))
}

func (s *Server) handleDrivers(w http.ResponseWriter, r *http.Request) {
	opt, err := s.options(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildDrivers(s.table, opt))
}

func (s *Server) handleCountry(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c := report.BuildCountry(s.table, name)
	if c.Empty() {
		writeError(w, http.StatusNotFound, fmt.Errorf("%s (%s)", report.NoCountryData, name))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	opt, err := s.options(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	name := chi.URLParam(r, "name")
	p, err := chart.Build(name, report.Build(s.table, opt))
	switch {
	case errors.Is(err, chart.ErrUnknownChart), errors.Is(err, chart.ErrNoData):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if err := chart.WritePNG(w, p, s.cfg.ChartSize); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "chart render failed", applog.FieldError, err, "chart", name)
	}
}

// options reads the selection from the query string. Missing values fall
// back to report.DefaultOptions; a region or country absent from the table
// is rejected.
func (s *Server) options(r *http.Request) (report.Options, error) {
	opt := report.DefaultOptions(s.table)
	opt.TopN, opt.Bins = s.cfg.TopN, s.cfg.Bins
	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return opt, fmt.Errorf("invalid year %q", v)
		}
		opt.Year = year
	}
	if v := q.Get("region"); v != "" {
		if !slices.Contains(s.table.RegionChoices(), v) {
			return opt, fmt.Errorf("unknown region %q", v)
		}
		opt.Region = v
	}
	if v := q.Get("factor"); v != "" {
		f, err := dataset.ParseFactor(v)
		if err != nil {
			return opt, err
		}
		opt.Factor = f
	}
	if v := q.Get("country"); v != "" {
		if !slices.Contains(s.table.Countries(), v) {
			return opt, fmt.Errorf("unknown country %q", v)
		}
		opt.Country = v
	}
	if v := q.Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opt, fmt.Errorf("invalid top %q", v)
		}
		opt.TopN = n
	}
	return opt, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
