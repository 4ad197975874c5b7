package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// Raw samples near interesting temperatures for the default calibration.
const (
	rawAbsent   RawSample = 40000 // above the presence window
	rawCold     RawSample = 16384 // ~17.95 degrees
	rawMidBand  RawSample = 22369 // ~32.0 degrees
	rawOverheat RawSample = 24100 // ~36.06 degrees
)

func newTestThermostat() *Thermostat {
	return NewThermostat(DefaultSettings(), t0)
}

func eventTypes(events []Event) []EventType {
	var out []EventType
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func TestScenarioSensorAbsentFromOff(t *testing.T) {
	th := newTestThermostat()

	res := th.Process(Input{Raw: rawAbsent, Time: t0})

	assert.Equal(t, SensorAbsent, res.Status)
	assert.Equal(t, Temperature(0), res.Temperature)
	assert.Equal(t, DecisionActivate, res.Decision)
	assert.Equal(t, HeaterOn, res.Heater)
	assert.Equal(t, Output{Heater: true, Indicators: Indicators{Ready: false, Active: true}}, res.Output)
	assert.False(t, res.Record.Present())
	assert.Equal(t, Record{Status: SensorAbsent}, res.Record)
}

func TestScenarioColdFromOn(t *testing.T) {
	th := newTestThermostat()
	th.Process(Input{Raw: rawCold, Time: t0})
	require.Equal(t, HeaterOn, th.HeaterState())

	res := th.Process(Input{Raw: rawCold, Time: t0.Add(100 * time.Millisecond)})

	assert.Equal(t, SensorPresent, res.Status)
	assert.InDelta(t, 17.95, float64(res.Temperature), 0.01)
	assert.Equal(t, HeaterOn, res.Heater)
	assert.Equal(t, Output{Heater: true, Indicators: Indicators{Active: true}}, res.Output)
	assert.True(t, res.Record.Present())
	assert.Equal(t, rawCold, res.Record.Raw)
	assert.Equal(t, res.Temperature, res.Record.Temperature)
	assert.Empty(t, res.Events)
}

func TestScenarioMidBandHoldsOn(t *testing.T) {
	th := newTestThermostat()
	th.Process(Input{Raw: rawCold, Time: t0})

	res := th.Process(Input{Raw: rawMidBand, Time: t0.Add(100 * time.Millisecond)})

	assert.InDelta(t, 32.0, float64(res.Temperature), 0.01)
	assert.Equal(t, DecisionHold, res.Decision)
	assert.Equal(t, HeaterOn, res.Heater)
	assert.Equal(t, Output{Heater: true, Indicators: Indicators{Ready: true, Active: true}}, res.Output)
}

func TestScenarioOverheatOverridesOn(t *testing.T) {
	th := newTestThermostat()
	th.Process(Input{Raw: rawCold, Time: t0})

	res := th.Process(Input{Raw: rawOverheat, Time: t0.Add(100 * time.Millisecond)})

	assert.Greater(t, float64(res.Temperature), 35.0)
	assert.Equal(t, DecisionShutdown, res.Decision)
	assert.Equal(t, HeaterOff, res.Heater)
	assert.Equal(t, Output{}, res.Output)
	assert.Equal(t, []EventType{EventHeaterOff}, eventTypes(res.Events))
}

func TestFirstCyclePresentSensorNoSensorEvent(t *testing.T) {
	th := newTestThermostat()

	res := th.Process(Input{Raw: rawMidBand, Time: t0})

	assert.Equal(t, HeaterOff, res.Heater)
	assert.Empty(t, res.Events)
}

func TestFirstCycleAbsentSensorEmitsLost(t *testing.T) {
	th := newTestThermostat()

	res := th.Process(Input{Raw: rawAbsent, Time: t0})

	require.Len(t, res.Events, 2)
	assert.Equal(t, EventSensorLost, res.Events[0].Type)
	assert.Equal(t, SensorAbsent, res.Events[0].Sensor)
	assert.Equal(t, EventHeaterOn, res.Events[1].Type)
	assert.Equal(t, HeaterOn, res.Events[1].Heater)
	assert.True(t, res.Events[1].Timestamp.Equal(t0))
}

func TestSensorReconnectIsRevalidated(t *testing.T) {
	th := newTestThermostat()
	th.Process(Input{Raw: rawMidBand, Time: t0})

	res := th.Process(Input{Raw: rawAbsent, Time: t0.Add(100 * time.Millisecond)})
	assert.Equal(t, []EventType{EventSensorLost, EventHeaterOn}, eventTypes(res.Events))

	// Absent for a while: no repeated events.
	for i := 2; i < 10; i++ {
		res = th.Process(Input{Raw: rawAbsent, Time: t0.Add(time.Duration(i) * 100 * time.Millisecond)})
		require.Empty(t, res.Events)
		require.Equal(t, HeaterOn, res.Heater)
	}

	res = th.Process(Input{Raw: rawOverheat, Time: t0.Add(time.Second)})
	assert.Equal(t, SensorPresent, res.Status)
	assert.Equal(t, []EventType{EventSensorRestored, EventHeaterOff}, eventTypes(res.Events))

	counts := th.EventCountsSnapshot()
	assert.Equal(t, EventCounts{HeaterOn: 1, HeaterOff: 1, SensorLost: 1, SensorRestored: 1}, counts)
}

func TestCustomFaultTemperature(t *testing.T) {
	s := DefaultSettings()
	s.FaultTemperature = 40
	th := NewThermostat(s, t0)

	res := th.Process(Input{Raw: rawAbsent, Time: t0})

	assert.Equal(t, Temperature(40), res.Temperature)
	assert.Equal(t, DecisionShutdown, res.Decision)
	assert.Equal(t, HeaterOff, res.Heater)
	assert.Equal(t, []EventType{EventSensorLost}, eventTypes(res.Events))
}

func TestSettingsAccessor(t *testing.T) {
	th := newTestThermostat()
	assert.Equal(t, DefaultSettings(), th.Settings())
}

func TestHeartbeatDisabled(t *testing.T) {
	th := newTestThermostat()
	assert.Nil(t, th.CheckHeartbeat(t0.Add(time.Hour), 0))
	assert.Nil(t, th.CheckHeartbeat(t0.Add(time.Hour), -time.Minute))
}

func TestHeartbeatInterval(t *testing.T) {
	th := newTestThermostat()
	th.Process(Input{Raw: rawCold, Time: t0})

	assert.Nil(t, th.CheckHeartbeat(t0.Add(14*time.Minute), 15*time.Minute))

	hb := th.CheckHeartbeat(t0.Add(15*time.Minute), 15*time.Minute)
	require.NotNil(t, hb)
	assert.Equal(t, 15*time.Minute, hb.Uptime)
	assert.Equal(t, 1, hb.Counts.HeaterOn)

	// Next one is measured from the previous heartbeat.
	assert.Nil(t, th.CheckHeartbeat(t0.Add(29*time.Minute), 15*time.Minute))
	hb = th.CheckHeartbeat(t0.Add(30*time.Minute), 15*time.Minute)
	require.NotNil(t, hb)
	assert.Equal(t, 30*time.Minute, hb.Uptime)
}
