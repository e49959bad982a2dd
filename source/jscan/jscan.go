// Package jscan provides a validate-only driver backed by romshark/jscan.
package jscan

import (
	"github.com/romshark/jscan/v2"

	"github.com/reoring/ndjsonv/source"
)

// Driver returns a driver backed by jscan.Validate.
func Driver() source.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "jscan" }

func (driver) ParseValue(b []byte) error {
	if err := jscan.Validate(b); err.IsErr() {
		return err
	}
	return nil
}
