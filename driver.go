package ndjsonv

import (
	"slices"
	"strings"
	"sync"

	"github.com/reoring/ndjsonv/source"
	"github.com/reoring/ndjsonv/source/fastjson"
	"github.com/reoring/ndjsonv/source/jscan"
	"github.com/reoring/ndjsonv/source/sonic"
	"github.com/reoring/ndjsonv/source/stdjson"
)

// JSONDriver is a pluggable JSON backend. Implementations must agree on
// accept/reject for every UTF-8 input and may differ only in diagnostics and
// speed.
type JSONDriver = source.Driver

// Names of the two reference backends.
const (
	DriverStandard = "standard"
	DriverFast     = "fast"
)

var (
	driversMu sync.RWMutex
	drivers   = map[string]JSONDriver{}
)

func init() {
	fast := sonic.Driver()
	for name, d := range map[string]JSONDriver{
		DriverStandard: stdjson.Driver(),
		DriverFast:     fast,
		"sonic":        fast,
		"fastjson":     fastjson.Driver(),
		"jscan":        jscan.Driver(),
	} {
		drivers[name] = d
	}
}

// RegisterDriver makes d selectable under name, replacing any previous
// registration. Names are case-insensitive; nil drivers are ignored.
func RegisterDriver(name string, d JSONDriver) {
	if d == nil {
		return
	}
	driversMu.Lock()
	drivers[normalizeDriverName(name)] = d
	driversMu.Unlock()
}

// SelectDriver maps a backend name to its driver. An empty name selects the
// standard backend.
func SelectDriver(name string) (JSONDriver, error) {
	key := normalizeDriverName(name)
	if key == "" {
		key = DriverStandard
	}
	driversMu.RLock()
	d, ok := drivers[key]
	driversMu.RUnlock()
	if !ok {
		return nil, &ConfigError{Field: "backend", Value: name, Err: ErrUnknownDriver}
	}
	return d, nil
}

// DriverNames lists the registered backend names in sorted order.
func DriverNames() []string {
	driversMu.RLock()
	names := make([]string, 0, len(drivers))
	for n := range drivers {
		names = append(names, n)
	}
	driversMu.RUnlock()
	slices.Sort(names)
	return names
}

func normalizeDriverName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
