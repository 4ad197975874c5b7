package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/heater-controller/internal/report"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Sensor        string     `json:"sensor"`
	Raw           *uint16    `json:"raw,omitempty"`
	Temperature   *float64   `json:"temperature,omitempty"`
	Line          string     `json:"line"`
	Decision      string     `json:"decision"`
	Heater        string     `json:"heater"`
	Ready         bool       `json:"ready_lamp"`
	Active        bool       `json:"active_lamp"`
	Cycles        uint64     `json:"cycles"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	HeaterOn       int `json:"heater_on"`
	HeaterOff      int `json:"heater_off"`
	SensorLost     int `json:"sensor_lost"`
	SensorRestored int `json:"sensor_restored"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs           int64   `json:"poll_ms"`
	HeartbeatMs      int64   `json:"heartbeat_ms"`
	SensorLow        uint16  `json:"sensor_low"`
	SensorHigh       uint16  `json:"sensor_high"`
	BandLow          float64 `json:"band_low"`
	BandHigh         float64 `json:"band_high"`
	FaultTemperature float64 `json:"fault_temperature"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Sensor:        "UNKNOWN",
		Decision:      "UNKNOWN",
		Heater:        snap.Heater.String(),
		Ready:         snap.Output.Ready,
		Active:        snap.Output.Active,
		Cycles:        snap.Cycles,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counts: CountsJSON{
			HeaterOn:       snap.Counts.HeaterOn,
			HeaterOff:      snap.Counts.HeaterOff,
			SensorLost:     snap.Counts.SensorLost,
			SensorRestored: snap.Counts.SensorRestored,
		},
		Config: ConfigJSON{
			PollMs:           snap.Config.PollMs,
			HeartbeatMs:      snap.Config.HeartbeatMs,
			SensorLow:        uint16(snap.Config.Settings.Validator.Low),
			SensorHigh:       uint16(snap.Config.Settings.Validator.High),
			BandLow:          float64(snap.Config.Settings.Thresholds.Low),
			BandHigh:         float64(snap.Config.Settings.Thresholds.High),
			FaultTemperature: float64(snap.Config.Settings.FaultTemperature),
		},
	}

	if !snap.Sampled() {
		return inner
	}

	inner.Sensor = snap.Record.Status.String()
	inner.Decision = snap.Decision.String()
	inner.Line = report.FormatLine(snap.Record)
	if snap.Record.Present() {
		raw := uint16(snap.Record.Raw)
		temp := float64(snap.Record.Temperature)
		inner.Raw = &raw
		inner.Temperature = &temp
	}
	return inner
}

// FormatJSON returns the indented JSON status.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
