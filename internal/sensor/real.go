//go:build linux

package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sweeney/heater-controller/internal/control"
)

// RealReader reads an ADC channel exposed by the Linux IIO subsystem.
type RealReader struct {
	path string
	bits int
}

// NewRealReader creates a reader for the IIO raw attribute at path.
// bits is the resolution of the ADC behind it.
func NewRealReader(path string, bits int) (*RealReader, error) {
	if bits <= 0 || bits > 16 {
		return nil, fmt.Errorf("adc resolution %d bits out of range 1..16", bits)
	}
	// Probe once so a wrong path fails at startup, not on the first tick.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open adc channel: %w", err)
	}
	return &RealReader{path: path, bits: bits}, nil
}

// Read returns the current ADC count scaled to the 16-bit domain.
func (r *RealReader) Read() (control.RawSample, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return 0, fmt.Errorf("read adc channel: %w", err)
	}
	count, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse adc value %q: %w", strings.TrimSpace(string(data)), err)
	}
	return Scale(count, r.bits), nil
}

// Close is a no-op; every Read opens and closes the attribute.
func (r *RealReader) Close() error {
	return nil
}
