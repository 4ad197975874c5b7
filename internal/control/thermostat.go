package control

import "time"

// DefaultFaultTemperature is substituted for the reading while the sensor is
// absent. It sits below DefaultLow, so a lost sensor drives the heater on.
const DefaultFaultTemperature Temperature = 0

// Settings collects the constants of one control loop.
type Settings struct {
	Validator        Validator
	Calibration      Calibration
	Thresholds       Thresholds
	FaultTemperature Temperature
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		Validator:        DefaultValidator(),
		Calibration:      DefaultCalibration(),
		Thresholds:       DefaultThresholds(),
		FaultTemperature: DefaultFaultTemperature,
	}
}

// Input is a single raw sample and the time it was taken.
type Input struct {
	Raw  RawSample
	Time time.Time
}

// Result is everything one cycle produced.
type Result struct {
	Status      SensorStatus
	Temperature Temperature
	Decision    Decision
	Heater      HeaterState
	Output      Output
	Record      Record
	Events      []Event
}

// Thermostat runs the validate, convert, step sequence and tracks the
// changes worth reporting between cycles.
type Thermostat struct {
	settings      Settings
	controller    *Controller
	started       bool
	lastStatus    SensorStatus
	lastHeater    bool
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewThermostat creates a thermostat with the heater off.
// The startTime is used for calculating uptime in heartbeats.
func NewThermostat(s Settings, startTime time.Time) *Thermostat {
	return &Thermostat{
		settings:      s,
		controller:    NewController(s.Thresholds),
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process runs one control cycle for input.
func (t *Thermostat) Process(input Input) Result {
	status := t.settings.Validator.Validate(input.Raw)

	temp := t.settings.FaultTemperature
	if status == SensorPresent {
		temp = t.settings.Calibration.Convert(input.Raw)
	}

	decision, out := t.controller.Step(temp)
	heater := t.controller.State()

	record := Record{Status: status}
	if status == SensorPresent {
		record.Raw = input.Raw
		record.Temperature = temp
	}

	var events []Event
	emit := func(typ EventType) {
		events = append(events, Event{
			Timestamp: input.Time,
			Type:      typ,
			Heater:    heater,
			Sensor:    status,
		})
	}

	// Sensor first so a loss is reported before the heater reacts to it.
	if t.started && status != t.lastStatus || !t.started && status == SensorAbsent {
		if status == SensorAbsent {
			emit(EventSensorLost)
		} else {
			emit(EventSensorRestored)
		}
	}
	if out.Heater != t.lastHeater {
		if out.Heater {
			emit(EventHeaterOn)
		} else {
			emit(EventHeaterOff)
		}
	}

	for _, e := range events {
		switch e.Type {
		case EventHeaterOn:
			t.eventCounts.HeaterOn++
		case EventHeaterOff:
			t.eventCounts.HeaterOff++
		case EventSensorLost:
			t.eventCounts.SensorLost++
		case EventSensorRestored:
			t.eventCounts.SensorRestored++
		}
	}

	t.started = true
	t.lastStatus = status
	t.lastHeater = out.Heater

	return Result{
		Status:      status,
		Temperature: temp,
		Decision:    decision,
		Heater:      heater,
		Output:      out,
		Record:      record,
		Events:      events,
	}
}

// HeaterState returns the heater state carried into the next cycle.
func (t *Thermostat) HeaterState() HeaterState {
	return t.controller.State()
}

// Settings returns the settings the thermostat was built with.
func (t *Thermostat) Settings() Settings {
	return t.settings
}

// EventCountsSnapshot returns a copy of the current event counts.
func (t *Thermostat) EventCountsSnapshot() EventCounts {
	return t.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed,
// or if interval is <= 0 (disabled).
func (t *Thermostat) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(t.lastHeartbeat) < interval {
		return nil
	}

	t.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(t.startTime),
		Counts:    t.eventCounts,
	}
}
