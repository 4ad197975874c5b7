package gpio

import "github.com/sweeney/heater-controller/internal/control"

// FakeWriter is a test double that records every output written.
type FakeWriter struct {
	// Writes contains every output passed to Write, in order.
	Writes []control.Output

	// Closed tracks if Close was called
	Closed bool

	// WriteError, if set, will be returned by Write()
	WriteError error
}

// NewFakeWriter creates an empty FakeWriter.
func NewFakeWriter() *FakeWriter {
	return &FakeWriter{}
}

// Write records out.
func (f *FakeWriter) Write(out control.Output) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, out)
	return nil
}

// Last returns the most recent output, or the zero Output if none was written.
func (f *FakeWriter) Last() control.Output {
	if len(f.Writes) == 0 {
		return control.Output{}
	}
	return f.Writes[len(f.Writes)-1]
}

// Close marks the writer as closed and records the all-off state.
func (f *FakeWriter) Close() error {
	f.Closed = true
	f.Writes = append(f.Writes, control.Output{})
	return nil
}

// Reset clears recorded writes.
func (f *FakeWriter) Reset() {
	f.Writes = nil
	f.Closed = false
	f.WriteError = nil
}
