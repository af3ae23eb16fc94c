package models

import (
	"errors"
	"fmt"
)

// ErrSamplingGap is returned when no menu item is available for a slot.
// It is recoverable: the caller skips the customer and carries on.
var ErrSamplingGap = errors.New("no menu items available for slot")

// ConfigError reports malformed or missing configuration. It is fatal.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// RangeError reports values outside their permitted range, such as a start
// date after the end date or a negative rate. It is fatal.
type RangeError struct {
	Field  string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range error: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func rangeErrorf(field, format string, args ...interface{}) error {
	return &RangeError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
