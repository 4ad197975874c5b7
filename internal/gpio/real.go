//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/heater-controller/internal/control"
)

// RealWriter drives output lines using Linux GPIO character device.
type RealWriter struct {
	chip   *gpiocdev.Chip
	heater *gpiocdev.Line
	ready  *gpiocdev.Line
	active *gpiocdev.Line
}

// NewRealWriter requests the three output lines on chipName, all driven low.
func NewRealWriter(chipName string, pins Pins) (*RealWriter, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	w := &RealWriter{chip: chip}

	// Lines start low so the heater is off until the first cycle decides.
	if w.heater, err = chip.RequestLine(pins.Heater, gpiocdev.AsOutput(0)); err != nil {
		w.Close()
		return nil, fmt.Errorf("request heater pin %d: %w", pins.Heater, err)
	}
	if w.ready, err = chip.RequestLine(pins.Ready, gpiocdev.AsOutput(0)); err != nil {
		w.Close()
		return nil, fmt.Errorf("request ready pin %d: %w", pins.Ready, err)
	}
	if w.active, err = chip.RequestLine(pins.Active, gpiocdev.AsOutput(0)); err != nil {
		w.Close()
		return nil, fmt.Errorf("request active pin %d: %w", pins.Active, err)
	}

	return w, nil
}

// Write sets the heater line first, then the lamps.
func (w *RealWriter) Write(out control.Output) error {
	if err := w.heater.SetValue(level(out.Heater)); err != nil {
		return fmt.Errorf("set heater pin: %w", err)
	}
	if err := w.ready.SetValue(level(out.Ready)); err != nil {
		return fmt.Errorf("set ready pin: %w", err)
	}
	if err := w.active.SetValue(level(out.Active)); err != nil {
		return fmt.Errorf("set active pin: %w", err)
	}
	return nil
}

// Close drives all lines low, then reconfigures them as inputs with
// pull-down (matching Pi boot defaults) before releasing them, so the heater
// cannot be left energised after the process exits.
func (w *RealWriter) Close() error {
	var errs []error

	for _, l := range []struct {
		name string
		line *gpiocdev.Line
	}{
		{"heater", w.heater},
		{"ready", w.ready},
		{"active", w.active},
	} {
		if l.line == nil {
			continue
		}
		if err := l.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear %s pin: %w", l.name, err))
		}
		if err := l.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s pin: %w", l.name, err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", l.name, err))
		}
	}
	if w.chip != nil {
		if err := w.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
