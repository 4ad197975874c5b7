// Package config loads the controller's calibration and thresholds.
// Values start from the built-in defaults and may be overridden by a YAML
// file. The file is only ever read.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/heater-controller/internal/control"
)

// Config mirrors control.Settings in a file-friendly shape.
type Config struct {
	Sensor           Sensor      `yaml:"sensor"`
	Calibration      Calibration `yaml:"calibration"`
	Hysteresis       Hysteresis  `yaml:"hysteresis"`
	FaultTemperature float64     `yaml:"fault_temperature"`
}

// Sensor is the presence window in raw counts.
type Sensor struct {
	LowThreshold  uint16 `yaml:"low_threshold"`
	HighThreshold uint16 `yaml:"high_threshold"`
}

// Calibration holds the linear sensor constants.
type Calibration struct {
	MaxRaw           float64 `yaml:"max_raw"`
	VoltageRef       float64 `yaml:"voltage_ref"`
	OffsetMillivolts float64 `yaml:"offset_mv"`
	Coefficient      float64 `yaml:"coefficient"`
}

// Hysteresis is the dead band in degrees.
type Hysteresis struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Default returns the stock configuration.
func Default() Config {
	return FromSettings(control.DefaultSettings())
}

// FromSettings converts control settings to a Config.
func FromSettings(s control.Settings) Config {
	return Config{
		Sensor: Sensor{
			LowThreshold:  uint16(s.Validator.Low),
			HighThreshold: uint16(s.Validator.High),
		},
		Calibration: Calibration{
			MaxRaw:           s.Calibration.MaxRaw,
			VoltageRef:       s.Calibration.VoltageRef,
			OffsetMillivolts: s.Calibration.OffsetMillivolts,
			Coefficient:      s.Calibration.Coefficient,
		},
		Hysteresis: Hysteresis{
			Low:  float64(s.Thresholds.Low),
			High: float64(s.Thresholds.High),
		},
		FaultTemperature: float64(s.FaultTemperature),
	}
}

// Settings converts the config into control settings.
func (c Config) Settings() control.Settings {
	return control.Settings{
		Validator: control.Validator{
			Low:  control.RawSample(c.Sensor.LowThreshold),
			High: control.RawSample(c.Sensor.HighThreshold),
		},
		Calibration: control.Calibration{
			MaxRaw:           c.Calibration.MaxRaw,
			VoltageRef:       c.Calibration.VoltageRef,
			OffsetMillivolts: c.Calibration.OffsetMillivolts,
			Coefficient:      c.Calibration.Coefficient,
		},
		Thresholds: control.Thresholds{
			Low:  control.Temperature(c.Hysteresis.Low),
			High: control.Temperature(c.Hysteresis.High),
		},
		FaultTemperature: control.Temperature(c.FaultTemperature),
	}
}

// Validate reports every inconsistent value at once.
func (c Config) Validate() error {
	var errs []error
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"calibration.max_raw", c.Calibration.MaxRaw},
		{"calibration.voltage_ref", c.Calibration.VoltageRef},
		{"calibration.offset_mv", c.Calibration.OffsetMillivolts},
		{"calibration.coefficient", c.Calibration.Coefficient},
		{"hysteresis.low", c.Hysteresis.Low},
		{"hysteresis.high", c.Hysteresis.High},
		{"fault_temperature", c.FaultTemperature},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %v", f.name, f.value))
		}
	}
	if c.Sensor.LowThreshold > c.Sensor.HighThreshold {
		errs = append(errs, fmt.Errorf("sensor.low_threshold %d above sensor.high_threshold %d",
			c.Sensor.LowThreshold, c.Sensor.HighThreshold))
	}
	if c.Calibration.MaxRaw <= 0 {
		errs = append(errs, fmt.Errorf("calibration.max_raw must be positive, got %v", c.Calibration.MaxRaw))
	}
	if c.Calibration.VoltageRef <= 0 {
		errs = append(errs, fmt.Errorf("calibration.voltage_ref must be positive, got %v", c.Calibration.VoltageRef))
	}
	// A non-positive coefficient would make the conversion non-increasing.
	if c.Calibration.Coefficient <= 0 {
		errs = append(errs, fmt.Errorf("calibration.coefficient must be positive, got %v", c.Calibration.Coefficient))
	}
	if c.Hysteresis.Low >= c.Hysteresis.High {
		errs = append(errs, fmt.Errorf("hysteresis.low %v must be below hysteresis.high %v",
			c.Hysteresis.Low, c.Hysteresis.High))
	}
	return errors.Join(errs...)
}

// Decode reads YAML from r over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults when path is empty, otherwise the file at path
// decoded over the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Decode(bytes.NewReader(data))
}
