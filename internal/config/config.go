package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SplitOverride pins the ratio for one split event up front, so batch runs
// never stop to ask the operator.
type SplitOverride struct {
	Instrument string `yaml:"instrument"`
	Date       string `yaml:"date"` // 2006-01-02
	Ratio      string `yaml:"ratio"`
}

type Config struct {
	GainsFile      string          `yaml:"gains_file"`
	LotsFile       string          `yaml:"lots_file"`
	DBFile         string          `yaml:"db_file"`
	LogLevel       string          `yaml:"log_level"`
	SplitOverrides []SplitOverride `yaml:"split_overrides"`
}

func Default() Config {
	return Config{
		GainsFile: "out_gains.csv",
		LotsFile:  "out_lots.csv",
		LogLevel:  "info",
	}
}

// Load reads the config file, applying defaults for anything unset. An
// empty filename returns the defaults. ESTIMATOR_LOG_LEVEL overrides the
// configured log level.
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return Config{}, fmt.Errorf("can't load config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("can't parse config %s: %w", filename, err)
		}
		if cfg.GainsFile == "" {
			cfg.GainsFile = Default().GainsFile
		}
		if cfg.LotsFile == "" {
			cfg.LotsFile = Default().LotsFile
		}
		if cfg.LogLevel == "" {
			cfg.LogLevel = Default().LogLevel
		}
	}

	if level := os.Getenv("ESTIMATOR_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.validateOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validateOverrides() error {
	for _, o := range c.SplitOverrides {
		if _, err := time.Parse("2006-01-02", o.Date); err != nil {
			return fmt.Errorf("split override for %s has bad date %q: %w", o.Instrument, o.Date, err)
		}
		if _, err := decimal.NewFromString(o.Ratio); err != nil {
			return fmt.Errorf("split override for %s has bad ratio %q: %w", o.Instrument, o.Ratio, err)
		}
	}
	return nil
}

// OverrideFor returns the declared ratio for an instrument and date, if
// any. Dates passed in are compared at day granularity.
func (c Config) OverrideFor(instrument string, date time.Time) (decimal.Decimal, bool) {
	day := date.Format("2006-01-02")
	for _, o := range c.SplitOverrides {
		if o.Instrument == instrument && o.Date == day {
			ratio, err := decimal.NewFromString(o.Ratio)
			if err != nil {
				return decimal.Zero, false // validated at load, can't happen
			}
			return ratio, true
		}
	}
	return decimal.Zero, false
}
