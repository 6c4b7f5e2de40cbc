package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dosecron/dosecron/engine"
)

// fileConfig mirrors the YAML config file accepted by `dosecron generate
// --config`. Every field is optional; flags override file values.
type fileConfig struct {
	Start           string `yaml:"start"`
	Interval        int    `yaml:"interval"`
	IntervalUnit    string `yaml:"interval_unit"`
	Duration        int    `yaml:"duration"`
	DurationUnit    string `yaml:"duration_unit"`
	ExcludeWeekends *bool  `yaml:"exclude_weekends"`
	ExcludeHolidays *bool  `yaml:"exclude_holidays"`
	Country         string `yaml:"country"`
	Title           string `yaml:"title"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return fc, nil
}

// apply copies the file values onto cfg, leaving unset fields alone.
func (fc fileConfig) apply(cfg *engine.RecurrenceConfig) {
	if fc.Start != "" {
		cfg.StartDate = fc.Start
	}
	if fc.Interval != 0 {
		cfg.Interval = fc.Interval
	}
	if fc.IntervalUnit != "" {
		cfg.IntervalUnit = engine.IntervalUnit(fc.IntervalUnit)
	}
	if fc.Duration != 0 {
		cfg.Duration = fc.Duration
	}
	if fc.DurationUnit != "" {
		cfg.DurationUnit = engine.DurationUnit(fc.DurationUnit)
	}
	if fc.ExcludeWeekends != nil {
		cfg.ExcludeWeekends = *fc.ExcludeWeekends
	}
	if fc.ExcludeHolidays != nil {
		cfg.ExcludeHolidays = *fc.ExcludeHolidays
	}
	if fc.Country != "" {
		cfg.CountryCode = fc.Country
	}
}
