//go:build goexperiment.jsonv2

package ndjsonv

import "github.com/reoring/ndjsonv/source/jsonv2"

func init() { RegisterDriver("jsonv2", jsonv2.Driver()) }
