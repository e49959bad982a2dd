package ndjsonv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/ndjsonv/internal/lines"
)

// Error entry codes.
const (
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTooDeep      = "too_deep"
	CodeTooBig       = "too_big"
)

var (
	// ErrUnknownDriver is wrapped by the ConfigError returned for an
	// unregistered backend name.
	ErrUnknownDriver = errors.New("unknown JSON backend")
	// ErrInvalidText reports input that is not valid UTF-8 text.
	ErrInvalidText = lines.ErrInvalidUTF8
	// ErrNoFiles reports a directory without any NDJSON files.
	ErrNoFiles = errors.New("no NDJSON files found")
	// ErrDuplicateOutput reports two inputs that would write the same
	// cleaned file.
	ErrDuplicateOutput = errors.New("inputs share a base name")
	// ErrOverwriteInput reports a cleaned file that would replace its own
	// input.
	ErrOverwriteInput = errors.New("cleaned file would overwrite its input")
	// ErrBlankLine is returned by ClassifyLine for a skipped blank line.
	ErrBlankLine = errors.New("blank line")
)

// ErrorEntry records one invalid line.
type ErrorEntry struct {
	File       string `json:"file"`
	LineNumber int    `json:"line_number"`
	Code       string `json:"code"`
	Message    string `json:"error"`
	// Content is the raw offending line.
	Content string `json:"content"`
}

func (e ErrorEntry) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", e.File, e.LineNumber, e.Code, e.Message)
}

// Entries is an ordered list of error entries that implements error.
type Entries []ErrorEntry

// Error summarizes the first few entries.
func (es Entries) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(es)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		e := es[i]
		// e.g. parse_error at data.ndjson:2
		fmt.Fprintf(b, "%s at %s:%d", e.Code, e.File, e.LineNumber)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsEntries extracts Entries from an error using errors.As.
func AsEntries(err error) (Entries, bool) {
	if err == nil {
		return nil, false
	}
	var es Entries
	if errors.As(err, &es) {
		return es, true
	}
	return nil, false
}

// LineError is the diagnostic for a line classified INVALID.
type LineError struct {
	Code    string
	Message string
	Cause   error
}

func (e *LineError) Error() string { return e.Code + ": " + e.Message }

func (e *LineError) Unwrap() error { return e.Cause }

// FileError is an I/O failure that aborted processing of one file.
type FileError struct {
	Op   string // open, read, mkdir, write
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// ConfigError reports an invalid option. It is always raised before any
// file is touched.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return "config " + e.Field + ": " + e.Err.Error()
	}
	return fmt.Sprintf("config %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErrorf(field, value, format string, a ...any) *ConfigError {
	return &ConfigError{Field: field, Value: value, Err: fmt.Errorf(format, a...)}
}
