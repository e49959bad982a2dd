// Package fastjson provides a validate-only driver backed by valyala/fastjson.
package fastjson

import (
	"github.com/valyala/fastjson"

	"github.com/reoring/ndjsonv/source"
)

// Driver returns a driver backed by fastjson.ValidateBytes, which checks the
// grammar without building a value tree.
func Driver() source.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "fastjson" }

func (driver) ParseValue(b []byte) error { return fastjson.ValidateBytes(b) }
