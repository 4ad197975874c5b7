package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/heater-controller/internal/control"
)

func TestDefaultMatchesControlDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, control.DefaultSettings(), cfg.Settings())

	assert.Equal(t, uint16(0), cfg.Sensor.LowThreshold)
	assert.Equal(t, uint16(33000), cfg.Sensor.HighThreshold)
	assert.Equal(t, 65535.0, cfg.Calibration.MaxRaw)
	assert.Equal(t, 3.0, cfg.Calibration.VoltageRef)
	assert.Equal(t, 400.0, cfg.Calibration.OffsetMillivolts)
	assert.Equal(t, 19.5, cfg.Calibration.Coefficient)
	assert.Equal(t, 30.0, cfg.Hysteresis.Low)
	assert.Equal(t, 35.0, cfg.Hysteresis.High)
	assert.Equal(t, 0.0, cfg.FaultTemperature)
}

func TestDecodePartialOverride(t *testing.T) {
	src := `
hysteresis:
  low: 40
  high: 45
sensor:
  high_threshold: 30000
`
	cfg, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 40.0, cfg.Hysteresis.Low)
	assert.Equal(t, 45.0, cfg.Hysteresis.High)
	assert.Equal(t, uint16(30000), cfg.Sensor.HighThreshold)
	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Calibration, cfg.Calibration)

	s := cfg.Settings()
	assert.Equal(t, control.Thresholds{Low: 40, High: 45}, s.Thresholds)
	assert.Equal(t, control.RawSample(30000), s.Validator.High)
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeUnknownKey(t *testing.T) {
	_, err := Decode(strings.NewReader("hysteresis:\n  lo: 10\n"))
	assert.ErrorContains(t, err, "decode config")
}

func TestDecodeInvalidValues(t *testing.T) {
	src := `
hysteresis:
  low: 35
  high: 30
calibration:
  coefficient: 0
`
	_, err := Decode(strings.NewReader(src))
	require.Error(t, err)
	assert.ErrorContains(t, err, "hysteresis.low")
	assert.ErrorContains(t, err, "calibration.coefficient")
}

func TestValidateEachField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"sensor window", func(c *Config) { c.Sensor.LowThreshold = 40000 }, "sensor.low_threshold"},
		{"max raw", func(c *Config) { c.Calibration.MaxRaw = 0 }, "calibration.max_raw"},
		{"voltage ref", func(c *Config) { c.Calibration.VoltageRef = -1 }, "calibration.voltage_ref"},
		{"coefficient", func(c *Config) { c.Calibration.Coefficient = -19.5 }, "calibration.coefficient"},
		{"dead band", func(c *Config) { c.Hysteresis.High = c.Hysteresis.Low }, "hysteresis.low"},
		{"nan band low", func(c *Config) { c.Hysteresis.Low = math.NaN() }, "hysteresis.low must be finite"},
		{"nan band high", func(c *Config) { c.Hysteresis.High = math.NaN() }, "hysteresis.high must be finite"},
		{"inf band high", func(c *Config) { c.Hysteresis.High = math.Inf(1) }, "hysteresis.high must be finite"},
		{"nan fault", func(c *Config) { c.FaultTemperature = math.NaN() }, "fault_temperature must be finite"},
		{"inf fault", func(c *Config) { c.FaultTemperature = math.Inf(-1) }, "fault_temperature must be finite"},
		{"inf coefficient", func(c *Config) { c.Calibration.Coefficient = math.Inf(1) }, "calibration.coefficient must be finite"},
		{"nan offset", func(c *Config) { c.Calibration.OffsetMillivolts = math.NaN() }, "calibration.offset_mv must be finite"},
		{"inf voltage ref", func(c *Config) { c.Calibration.VoltageRef = math.Inf(1) }, "calibration.voltage_ref must be finite"},
		{"inf max raw", func(c *Config) { c.Calibration.MaxRaw = math.Inf(1) }, "calibration.max_raw must be finite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controller.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fault_temperature: 25\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.FaultTemperature)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestFromSettingsRoundTrip(t *testing.T) {
	s := control.DefaultSettings()
	s.FaultTemperature = 12.5
	assert.Equal(t, s, FromSettings(s).Settings())
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "controller.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsNonFiniteValues(t *testing.T) {
	for _, src := range []string{
		"hysteresis:\n  low: .nan\nfault_temperature: .nan\n",
		"hysteresis:\n  high: .inf\n",
		"calibration:\n  coefficient: .inf\n",
		"fault_temperature: -.inf\n",
	} {
		_, err := Decode(strings.NewReader(src))
		assert.ErrorContains(t, err, "must be finite", "config %q", src)
	}
}
