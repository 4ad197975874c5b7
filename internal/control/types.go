// Package control decides, once per cycle, whether the heater runs: it checks
// that the sensor is connected, turns the raw ADC count into degrees and
// applies the hysteresis band. Hardware, clocks and output formatting stay
// with the caller; sample times arrive inside Input.
package control

import "time"

// RawSample is a quantized reading from the analog temperature sensor.
type RawSample uint16

// MaxRaw is the largest value a RawSample can hold.
const MaxRaw RawSample = 65535

// SensorStatus classifies a raw sample as physically plausible or not.
type SensorStatus int

const (
	SensorPresent SensorStatus = iota
	SensorAbsent
)

func (s SensorStatus) String() string {
	if s == SensorAbsent {
		return "ABSENT"
	}
	return "PRESENT"
}

// Temperature is a value in degrees Celsius.
type Temperature float64

// HeaterState is the controller's only memory between cycles.
type HeaterState bool

const (
	HeaterOff HeaterState = false
	HeaterOn  HeaterState = true
)

func (h HeaterState) String() string {
	if h {
		return "ON"
	}
	return "OFF"
}

// Indicators are the two discrete status lamps.
type Indicators struct {
	Ready  bool // temperature is inside the dead band
	Active bool // heater is being driven
}

// Output is everything the actuator and indicator ports consume in one cycle.
type Output struct {
	Heater bool
	Indicators
}

// Decision is the branch the hysteresis policy took for a temperature.
type Decision int

const (
	DecisionHold Decision = iota
	DecisionShutdown
	DecisionActivate
)

func (d Decision) String() string {
	switch d {
	case DecisionShutdown:
		return "SHUTDOWN"
	case DecisionActivate:
		return "ACTIVATE"
	default:
		return "HOLD"
	}
}

// Record is the status handed to the report port. When Status is
// SensorAbsent, Raw and Temperature carry no meaning.
type Record struct {
	Status      SensorStatus
	Raw         RawSample
	Temperature Temperature
}

// Present reports whether the record carries a usable reading.
func (r Record) Present() bool {
	return r.Status == SensorPresent
}

// EventType represents a notable change between cycles.
type EventType string

const (
	EventHeaterOn       EventType = "HEATER_ON"
	EventHeaterOff      EventType = "HEATER_OFF"
	EventSensorLost     EventType = "SENSOR_LOST"
	EventSensorRestored EventType = "SENSOR_RESTORED"
)

// Event is emitted when the heater command or the sensor status changes.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Heater    HeaterState
	Sensor    SensorStatus
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	HeaterOn       int
	HeaterOff      int
	SensorLost     int
	SensorRestored int
}

// HeartbeatData contains information for a heartbeat log entry.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
