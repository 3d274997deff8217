package conflict

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config tunes the detector's thresholds. The zero value is usable after
// Normalize; DefaultConfig returns the normalized defaults directly.
type Config struct {
	// MinTravelGapMinutes is the smallest acceptable gap, in minutes,
	// between an event's end and a dependent task's start before a
	// travel_time conflict fires.
	MinTravelGapMinutes int `yaml:"min_travel_gap_minutes"`

	// MaxConcurrent is the number of simultaneously active tasks and
	// events the household can absorb before family_overload fires.
	MaxConcurrent int `yaml:"max_concurrent"`

	// OverloadGranularityMinutes is the sampling step of the
	// family_overload pass. Coarser steps are cheaper but may miss
	// short-lived spikes.
	OverloadGranularityMinutes int `yaml:"overload_granularity_minutes"`

	// MaxScanWindowDays caps the detection window; longer windows are
	// clipped so a pathological request cannot run unbounded.
	MaxScanWindowDays int `yaml:"max_scan_window_days"`

	// Timezone is the IANA zone used for calendar-day matching (holiday
	// lookups). Defaults to Europe/Oslo.
	Timezone string `yaml:"timezone"`
}

// DefaultConfig returns the production defaults: 30 minute travel gap,
// at most 3 concurrent commitments, hourly overload sampling and a one
// year scan cap.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills zero values with defaults so partially specified configs
// behave correctly.
func (c *Config) Normalize() {
	if c.MinTravelGapMinutes <= 0 {
		c.MinTravelGapMinutes = 30
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 3
	}
	if c.OverloadGranularityMinutes <= 0 {
		c.OverloadGranularityMinutes = 60
	}
	if c.MaxScanWindowDays <= 0 {
		c.MaxScanWindowDays = 365
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/Oslo"
	}
}

// MinTravelGap returns the travel-gap threshold as a duration.
func (c Config) MinTravelGap() time.Duration {
	return time.Duration(c.MinTravelGapMinutes) * time.Minute
}

// OverloadGranularity returns the overload sampling step as a duration.
func (c Config) OverloadGranularity() time.Duration {
	return time.Duration(c.OverloadGranularityMinutes) * time.Minute
}

// MaxScanWindow returns the scan-window cap as a duration.
func (c Config) MaxScanWindow() time.Duration {
	return time.Duration(c.MaxScanWindowDays) * 24 * time.Hour
}

// LoadConfig reads a YAML config file and normalizes it.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}
