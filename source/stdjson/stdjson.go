// Package stdjson provides the "standard" driver backed by encoding/json.
package stdjson

import (
	"encoding/json"
	"errors"

	"github.com/reoring/ndjsonv/source"
)

// Driver returns a driver backed by encoding/json.
func Driver() source.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "standard" }

// ParseValue accepts b iff it holds exactly one JSON value surrounded by
// optional whitespace. The scanner-only json.Valid decides; Unmarshal runs
// only on rejection to recover a positioned message.
func (driver) ParseValue(b []byte) error {
	if json.Valid(b) {
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return errors.New("invalid JSON value")
}
