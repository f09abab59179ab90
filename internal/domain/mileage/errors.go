package mileage

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidCategory         = errors.New("invalid classification category")
	ErrCategoryNotConfigurable = errors.New("category is classified with the weekly table and cannot be configured")
)

// InvalidRangeError reports a date range whose start is after its end.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s is after end %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// ProviderError is any failure talking to the tracking provider. It aborts
// the whole report.
type ProviderError struct {
	Method    string
	Path      string
	Status    int
	DeviceIDs []int64
	Body      string
	Err       error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider request failed (%s %s)", e.Method, e.Path)
	if e.Status != 0 {
		msg += fmt.Sprintf(" [HTTP %d]", e.Status)
	}
	if len(e.DeviceIDs) > 0 {
		msg += fmt.Sprintf(" for %d devices", len(e.DeviceIDs))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// UnmatchedDeviceWarning describes a provider item that could not be tied to
// any requested device. It is logged and the item is dropped.
type UnmatchedDeviceWarning struct {
	DeviceIDRaw string
	DeviceName  string
	Label       string
}

func (w *UnmatchedDeviceWarning) Error() string {
	return fmt.Sprintf("unmatched provider item (id=%q, name=%q) in %q", w.DeviceIDRaw, w.DeviceName, w.Label)
}
