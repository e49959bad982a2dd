// Package source defines the contract shared by the JSON backends under its
// subpackages. The root package re-exports it as ndjsonv.JSONDriver.
package source

// Driver parses one JSON value per call. Only success or failure and the
// failure message are consumed; the parsed value is discarded.
type Driver interface {
	// Name is the registry key the driver is usually selected by.
	Name() string
	// ParseValue returns nil iff b is exactly one complete JSON value
	// (RFC 8259) with optional surrounding whitespace.
	ParseValue(b []byte) error
}
