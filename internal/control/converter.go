package control

// Calibration maps raw ADC counts to degrees for a linear analog sensor
// (output millivolts = Offset + Coefficient * degrees).
type Calibration struct {
	MaxRaw           float64 // full-scale ADC count
	VoltageRef       float64 // volts at full scale
	OffsetMillivolts float64 // sensor output at 0 degrees
	Coefficient      float64 // millivolts per degree
}

// DefaultCalibration returns the constants for the stock sensor and ADC.
func DefaultCalibration() Calibration {
	return Calibration{
		MaxRaw:           float64(MaxRaw),
		VoltageRef:       3.0,
		OffsetMillivolts: 400,
		Coefficient:      19.5,
	}
}

// Voltage returns the sensor voltage represented by raw.
func (c Calibration) Voltage(raw RawSample) float64 {
	return float64(raw) / c.MaxRaw * c.VoltageRef
}

// Convert returns the temperature for raw. It has no notion of sensor
// absence; callers validate first.
func (c Calibration) Convert(raw RawSample) Temperature {
	return Temperature((c.Voltage(raw)*1000 - c.OffsetMillivolts) / c.Coefficient)
}
