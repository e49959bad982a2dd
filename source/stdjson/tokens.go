package stdjson

import (
	"bytes"
	"encoding/json"
	"io"

	eng "github.com/reoring/ndjsonv/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type tokenSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// Tokens wraps a single JSON document into an engine.TokenSource. Object keys
// are reported as KindKey so enforcement can track paths and duplicates.
func Tokens(b []byte) eng.TokenSource {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &tokenSource{dec: dec, lastOffset: -1}
}

func (s *tokenSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return s.token(eng.KindBeginObject, ""), nil
		case '}':
			s.pop()
			return s.token(eng.KindEndObject, ""), nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return s.token(eng.KindBeginArray, ""), nil
		case ']':
			s.pop()
			return s.token(eng.KindEndArray, ""), nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return s.token(eng.KindKey, v), nil
			}
		}
		s.valueDone()
		return s.token(eng.KindString, v), nil
	case bool:
		s.valueDone()
		return s.token(eng.KindBool, ""), nil
	case json.Number:
		s.valueDone()
		return s.token(eng.KindNumber, ""), nil
	case nil:
		s.valueDone()
		return s.token(eng.KindNull, ""), nil
	}

	s.valueDone()
	return s.token(eng.KindNull, ""), nil
}

func (s *tokenSource) token(k eng.Kind, str string) eng.Token {
	return eng.Token{Kind: k, String: str, Offset: s.lastOffset}
}

// pop closes the innermost container, which counts as a completed value for
// its parent.
func (s *tokenSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *tokenSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *tokenSource) Location() int64 { return s.lastOffset }
