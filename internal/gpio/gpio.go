// Package gpio drives the heater and status lamps with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/heater-controller/internal/control"

// Writer applies one cycle's outputs to the heater and indicator lines.
type Writer interface {
	// Write drives the heater, ready and active lines. Active high.
	Write(out control.Output) error

	// Close drives every line low and releases GPIO resources.
	Close() error
}

// Default line offsets on gpiochip0 (BCM numbering).
const (
	DefaultChip      = "gpiochip0"
	DefaultPinHeater = 18 // heater relay / SSR
	DefaultPinReady  = 23 // green lamp
	DefaultPinActive = 24 // red lamp
)

// Pins names the line offsets for the three outputs.
type Pins struct {
	Heater int
	Ready  int
	Active int
}

// DefaultPins returns the stock wiring.
func DefaultPins() Pins {
	return Pins{Heater: DefaultPinHeater, Ready: DefaultPinReady, Active: DefaultPinActive}
}

func level(on bool) int {
	if on {
		return 1
	}
	return 0
}
