// Package ndjsonv validates and cleans newline-delimited JSON files.
//
// Every line of an input file must be one complete JSON value. Valid lines
// are copied verbatim, in order, into a cleaned file of the same base name
// under an output directory; every invalid line yields an ErrorEntry with
// its 1-based line number and the backend's diagnostic.
//
// The JSON grammar is delegated to a pluggable JSONDriver selected by name
// ("standard" for encoding/json, "fast" for sonic, plus fastjson and
// jscan). Drivers agree on accept/reject and differ only in
// diagnostic wording and speed.
//
// Design policy:
//   - Keep the public API in the root package; put helpers under internal/.
//   - Place drivers under source/ and the CLI under cmd/ndjsonv.
//   - Per-line parse failures are data (Entries); I/O failures are errors
//     (*FileError); bad settings fail early (*ConfigError).
//
// Typical usage:
//
//	d, err := ndjsonv.SelectDriver("fast")
//	res, err := ndjsonv.Run(ctx, []string{"a.ndjson", "b.ndjson"}, "cleaned", d, ndjsonv.Options{})
//	for _, e := range res.Errors {
//		fmt.Println(e.File, e.LineNumber, e.Message)
//	}
package ndjsonv
