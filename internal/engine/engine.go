package engine

import (
	"errors"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string // key or string value
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

var (
	// ErrTrailingData reports input left over after the first top-level value.
	ErrTrailingData = errors.New("unexpected data after top-level value")
	// ErrUnexpectedToken reports a token that cannot start or continue a value.
	ErrUnexpectedToken = errors.New("unexpected token")
)

// Drain consumes exactly one top-level value from src without materializing
// it. Empty input yields io.ErrUnexpectedEOF.
func Drain(src TokenSource) error {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if err := skipValue(src, tok); err != nil {
		return err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err == nil {
			return ErrTrailingData
		}
		return err
	}
	return nil
}

func skipValue(src TokenSource, tok Token) error {
	switch tok.Kind {
	case KindBeginObject:
		return skipObject(src)
	case KindBeginArray:
		return skipArray(src)
	case KindString, KindNumber, KindBool, KindNull:
		return nil
	default:
		return ErrUnexpectedToken
	}
}

func skipObject(src TokenSource) error {
	for {
		tok, err := next(src)
		if err != nil {
			return err
		}
		if tok.Kind == KindEndObject {
			return nil
		}
		if tok.Kind != KindKey {
			return ErrUnexpectedToken
		}
		vt, err := next(src)
		if err != nil {
			return err
		}
		if err := skipValue(src, vt); err != nil {
			return err
		}
	}
}

func skipArray(src TokenSource) error {
	for {
		tok, err := next(src)
		if err != nil {
			return err
		}
		if tok.Kind == KindEndArray {
			return nil
		}
		if err := skipValue(src, tok); err != nil {
			return err
		}
	}
}

// next treats EOF inside a container as truncation.
func next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if err == io.EOF {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}
