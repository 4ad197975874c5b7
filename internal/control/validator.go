package control

// Default sensor-presence window. A disconnected or shorted sensor line
// reads above DefaultSensorHigh.
const (
	DefaultSensorLow  RawSample = 0
	DefaultSensorHigh RawSample = 33000
)

// Validator classifies raw samples against a plausibility window.
type Validator struct {
	Low  RawSample
	High RawSample
}

// DefaultValidator returns the validator for the stock sensor wiring.
func DefaultValidator() Validator {
	return Validator{Low: DefaultSensorLow, High: DefaultSensorHigh}
}

// Validate returns SensorAbsent when raw falls outside [Low, High].
func (v Validator) Validate(raw RawSample) SensorStatus {
	if raw < v.Low || raw > v.High {
		return SensorAbsent
	}
	return SensorPresent
}
