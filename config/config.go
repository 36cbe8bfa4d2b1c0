// Package config holds the single configuration surface of the quoting tool.
package config

import (
	"errors"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment key, e.g. OFFERTE_CALC_HOURLY_RATE.
// The bare key (HOURLY_RATE) is accepted as a fallback.
const Prefix = "OFFERTE"

type Config struct {
	LogLevel     string      `envconfig:"LOG_LEVEL" default:"info"`
	DefaultOwner string      `envconfig:"DEFAULT_OWNER" default:""`
	Calculation  Calculation `envconfig:"CALC"`
}

// Calculation carries the defaults every quote starts from. A quote's own
// settings override them field by field.
type Calculation struct {
	// TeamSize is the number of workers on site, 2 to 4.
	TeamSize int `envconfig:"TEAM_SIZE" default:"2"`
	// EffectiveHoursPerDay is productive time per worker per day.
	EffectiveHoursPerDay float64 `envconfig:"EFFECTIVE_HOURS_PER_DAY" default:"6"`
	// HourlyRate prices labor lines, excluding VAT.
	HourlyRate float64 `envconfig:"HOURLY_RATE" default:"45"`
	// MarginPercent is the global margin applied to every line.
	MarginPercent float64 `envconfig:"MARGIN_PERCENT" default:"15"`
	// TaxPercent is the VAT rate applied to the total excluding VAT.
	TaxPercent float64 `envconfig:"TAX_PERCENT" default:"21"`
}

func (c Calculation) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TeamSize, validation.Required, validation.Min(2), validation.Max(4)),
		validation.Field(&c.EffectiveHoursPerDay, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(24.0)),
		validation.Field(&c.HourlyRate, validation.Min(0.0)),
		validation.Field(&c.MarginPercent, validation.Min(0.0)),
		validation.Field(&c.TaxPercent, validation.Min(0.0), validation.Max(100.0)),
	)
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Calculation),
	)
}

// Defaults returns the configuration with every documented default applied
// and nothing read from the environment.
func Defaults() Calculation {
	return Calculation{
		TeamSize:             2,
		EffectiveHoursPerDay: 6,
		HourlyRate:           45,
		MarginPercent:        15,
		TaxPercent:           21,
	}
}

// Load reads environment variables, optionally from envFile first, and
// returns a validated Config. A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := new(Config)
	if err := envconfig.Process(Prefix, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
