// Package sensor provides analog temperature sampling with hardware abstraction.
// The real implementation reads a Linux IIO ADC channel through sysfs.
// The fake implementation allows testing without hardware.
package sensor

import "github.com/sweeney/heater-controller/internal/control"

// Reader samples the analog temperature sensor.
type Reader interface {
	// Read returns one sample scaled to the full 16-bit RawSample domain.
	Read() (control.RawSample, error)

	// Close releases sensor resources.
	Close() error
}

// Defaults for the stock board.
const (
	DefaultIIOPath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"
	DefaultADCBits = 12
)

// Scale widens an n-bit ADC count to the 16-bit sample domain so that
// full scale maps to control.MaxRaw. Counts above full scale saturate.
func Scale(count uint64, bits int) control.RawSample {
	if bits <= 0 || bits > 16 {
		bits = 16
	}
	full := uint64(1)<<uint(bits) - 1
	if count >= full {
		return control.MaxRaw
	}
	return control.RawSample(count * uint64(control.MaxRaw) / full)
}
