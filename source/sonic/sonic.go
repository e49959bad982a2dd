// Package sonic provides the "fast" driver backed by bytedance/sonic.
package sonic

import (
	"errors"

	"github.com/bytedance/sonic"

	"github.com/reoring/ndjsonv/source"
)

// api.Valid checks structure, number syntax and trailing data but never
// looks inside strings. Decoding with ValidateString rejects raw control
// characters, and unquoting rejects bad escapes. UseNumber keeps numbers as
// text so 1e999 is not refused as a float overflow.
var api = sonic.Config{ValidateString: true, UseNumber: true}.Froze()

// Driver returns a driver backed by sonic. On platforms without the JIT,
// sonic falls back to encoding/json internally.
func Driver() source.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "fast" }

// ParseValue requires both the decode and the structural check to pass.
func (driver) ParseValue(b []byte) error {
	var v any
	if err := api.Unmarshal(b, &v); err != nil {
		return err
	}
	if !api.Valid(b) {
		return errors.New("sonic: invalid JSON value")
	}
	return nil
}
