// Package report renders control records for the serial channel, the log and
// the display. The control core hands over a control.Record and knows nothing
// about text.
package report

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/sweeney/heater-controller/internal/control"
)

// AbsentLine is the status text while the sensor is missing.
const AbsentLine = "Sensor absence detected. Temperature reading not available."

// DisplayWidth is the number of characters the display shows per line.
const DisplayWidth = 49

// Reporter consumes one record per control cycle.
type Reporter interface {
	Report(rec control.Record) error
}

// FormatLine renders rec as a single status line.
func FormatLine(rec control.Record) string {
	if !rec.Present() {
		return AbsentLine
	}
	return fmt.Sprintf("Value is %-5d, temperature is %5.02f", rec.Raw, float64(rec.Temperature))
}

// Clip truncates line to at most width runes.
func Clip(line string, width int) string {
	r := []rune(line)
	if width < 0 || len(r) <= width {
		return line
	}
	return string(r[:width])
}

// LineReporter writes one status line per record, like a serial console.
type LineReporter struct {
	w io.Writer
}

// NewLineReporter creates a LineReporter writing to w.
func NewLineReporter(w io.Writer) *LineReporter {
	return &LineReporter{w: w}
}

// Report writes the formatted line followed by a newline.
func (r *LineReporter) Report(rec control.Record) error {
	if _, err := fmt.Fprintln(r.w, FormatLine(rec)); err != nil {
		return fmt.Errorf("write status line: %w", err)
	}
	return nil
}

// LogReporter emits each record as a structured log entry at debug level.
type LogReporter struct {
	logger log.FieldLogger
}

// NewLogReporter creates a LogReporter. A nil logger uses the standard logger.
func NewLogReporter(logger log.FieldLogger) *LogReporter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogReporter{logger: logger}
}

// Report logs rec.
func (r *LogReporter) Report(rec control.Record) error {
	entry := r.logger.WithField("sensor", rec.Status.String())
	if rec.Present() {
		entry = entry.WithFields(log.Fields{
			"raw":         uint16(rec.Raw),
			"temperature": float64(rec.Temperature),
		})
	}
	entry.Debug(FormatLine(rec))
	return nil
}

// Multi fans a record out to several reporters. Every reporter is called
// even if an earlier one fails.
type Multi []Reporter

// Report calls each reporter in order and joins their errors.
func (m Multi) Report(rec control.Record) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
