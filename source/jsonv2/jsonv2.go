//go:build goexperiment.jsonv2

// Package jsonv2 provides a driver backed by encoding/json/v2.
// Build with GOEXPERIMENT=jsonv2 to enable it.
package jsonv2

import (
	"encoding/json/jsontext"
	v2json "encoding/json/v2"

	"github.com/reoring/ndjsonv/source"
)

// v2 rejects duplicate object names by default; encoding/json does not.
var opts = jsontext.AllowDuplicateNames(true)

// Driver returns a driver backed by encoding/json/v2.
func Driver() source.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "jsonv2" }

func (driver) ParseValue(b []byte) error {
	var v any
	return v2json.Unmarshal(b, &v, opts)
}
