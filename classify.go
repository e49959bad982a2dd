package ndjsonv

import (
	"errors"
	"strconv"

	eng "github.com/reoring/ndjsonv/internal/engine"
	"github.com/reoring/ndjsonv/source/stdjson"
)

// ClassifyLine decides whether line is a single complete JSON value. It
// returns nil for a VALID line, ErrBlankLine for a blank line skipped under
// BlankSkip, and a *LineError otherwise. It has no side effects.
func ClassifyLine(line []byte, d JSONDriver, opt Options) error {
	if opt.BlankLines == BlankSkip && isBlank(line) {
		return ErrBlankLine
	}
	if limit := opt.Limits.MaxLineBytes; limit > 0 && len(line) > limit {
		return &LineError{
			Code:    CodeTooBig,
			Message: "line is " + strconv.Itoa(len(line)) + " bytes, limit is " + strconv.Itoa(limit),
		}
	}
	if eng.ExceedsDepth(line, NestingLimit) {
		return &LineError{
			Code:    CodeTooDeep,
			Message: "nesting deeper than " + strconv.Itoa(NestingLimit),
		}
	}
	if err := d.ParseValue(line); err != nil {
		return &LineError{Code: CodeParseError, Message: err.Error(), Cause: err}
	}
	return enforceLimits(line, opt.Limits)
}

// enforceLimits walks an accepted line with encoding/json tokens so that
// depth and duplicate-key checks do not depend on the backend.
func enforceLimits(line []byte, lim Limits) error {
	eo := eng.EnforceOptions{MaxDepth: lim.MaxDepth, RejectDuplicateKeys: lim.RejectDuplicateKeys}
	if !eo.Enabled() {
		return nil
	}
	err := eng.Drain(eng.WrapWithEnforcement(stdjson.Tokens(line), eo))
	if err == nil {
		return nil
	}
	var ie *eng.IssueError
	if errors.As(err, &ie) {
		code := CodeDuplicateKey
		if ie.Code == eng.CodeTooDeep {
			code = CodeTooDeep
		}
		return &LineError{Code: code, Message: ie.Error(), Cause: err}
	}
	return &LineError{Code: CodeParseError, Message: err.Error(), Cause: err}
}

// isBlank reports whether line holds only JSON whitespace.
func isBlank(line []byte) bool {
	for _, c := range line {
		switch c {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
