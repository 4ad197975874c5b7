package report

import "github.com/sweeney/heater-controller/internal/control"

// FakeReporter records reports for test assertions.
type FakeReporter struct {
	// Records contains every record reported.
	Records []control.Record

	// Lines contains the formatted line for each record.
	Lines []string

	// ReportError, if set, will be returned by Report.
	ReportError error
}

// NewFakeReporter creates a FakeReporter for testing.
func NewFakeReporter() *FakeReporter {
	return &FakeReporter{}
}

// Report records rec.
func (f *FakeReporter) Report(rec control.Record) error {
	if f.ReportError != nil {
		return f.ReportError
	}
	f.Records = append(f.Records, rec)
	f.Lines = append(f.Lines, FormatLine(rec))
	return nil
}

// Reset clears recorded reports.
func (f *FakeReporter) Reset() {
	f.Records = nil
	f.Lines = nil
	f.ReportError = nil
}
