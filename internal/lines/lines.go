// Package lines splits NDJSON input into numbered lines.
package lines

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"unicode/utf8"
)

// ErrInvalidUTF8 reports a line that is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

const defaultBufSize = 64 << 10

// Reader yields lines separated by '\n'. A trailing '\r' stays part of the
// line. The last line is returned whether or not it ends with '\n', and a
// terminating '\n' does not start an extra empty line.
type Reader struct {
	br   *bufio.Reader
	num  int
	line []byte
	err  error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, defaultBufSize)}
}

// Next advances to the next line. It returns false at end of input or on
// error; check Err afterwards.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	line, err := r.br.ReadBytes('\n')
	if err != nil && err != io.EOF {
		r.err = err
		return false
	}
	if len(line) == 0 && err == io.EOF {
		return false
	}
	line = bytes.TrimSuffix(line, []byte{'\n'})
	r.num++
	if !utf8.Valid(line) {
		r.err = &Error{Line: r.num, Err: ErrInvalidUTF8}
		return false
	}
	r.line = line
	return true
}

// Bytes returns the current line without its '\n'. Each call to Next
// allocates a fresh slice, so callers may retain it.
func (r *Reader) Bytes() []byte { return r.line }

// Number returns the 1-based number of the current line.
func (r *Reader) Number() int { return r.num }

// Err returns the first error encountered, nil at clean end of input.
func (r *Reader) Err() error { return r.err }

// Error locates a read failure at a line.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string { return "line " + strconv.Itoa(e.Line) + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }
