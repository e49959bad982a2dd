package ndjsonv_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ndjsonv"
)

func stdDriver(t *testing.T) ndjsonv.JSONDriver {
	t.Helper()
	d, err := ndjsonv.SelectDriver(ndjsonv.DriverStandard)
	require.NoError(t, err)
	return d
}

func TestClassifyLine_Valid(t *testing.T) {
	d := stdDriver(t)
	for _, line := range []string{
		`{"a":1}`,
		`[1,2,3]`,
		`"text"`,
		`42`,
		`-1.5e10`,
		`true`,
		`null`,
		`  {"padded": true}  `,
		`{"a":{"b":[{"c":null}]}}`,
		`{"name":"café"}`,
		"{\"a\":1}\r",
	} {
		assert.NoError(t, ndjsonv.ClassifyLine([]byte(line), d, ndjsonv.Options{}), "line %q", line)
	}
}

func TestClassifyLine_Invalid(t *testing.T) {
	d := stdDriver(t)
	for _, line := range []string{
		``,
		`   `,
		`not json`,
		`{"a":1`,
		`{"a":1}}`,
		`{'a':1}`,
		`{"a":1} {"b":2}`,
		`NaN`,
		`tru`,
		`{"a" 1}`,
		`[1 2]`,
		`01`,
		`[1,]`,
	} {
		err := ndjsonv.ClassifyLine([]byte(line), d, ndjsonv.Options{})
		require.Error(t, err, "line %q", line)
		var le *ndjsonv.LineError
		require.True(t, errors.As(err, &le), "line %q: %v", line, err)
		assert.Equal(t, ndjsonv.CodeParseError, le.Code)
		assert.NotEmpty(t, le.Message)
	}
}

func TestClassifyLine_BlankSkip(t *testing.T) {
	d := stdDriver(t)
	opt := ndjsonv.Options{BlankLines: ndjsonv.BlankSkip}
	for _, line := range []string{"", "  ", "\t", "\r"} {
		assert.ErrorIs(t, ndjsonv.ClassifyLine([]byte(line), d, opt), ndjsonv.ErrBlankLine, "line %q", line)
	}
	assert.NoError(t, ndjsonv.ClassifyLine([]byte(`{}`), d, opt))

	var le *ndjsonv.LineError
	require.ErrorAs(t, ndjsonv.ClassifyLine([]byte(`x`), d, opt), &le)
}

func TestClassifyLine_Limits(t *testing.T) {
	d := stdDriver(t)

	t.Run("too big", func(t *testing.T) {
		opt := ndjsonv.Options{Limits: ndjsonv.Limits{MaxLineBytes: 8}}
		assert.NoError(t, ndjsonv.ClassifyLine([]byte(`{"a":12}`), d, opt))
		var le *ndjsonv.LineError
		require.ErrorAs(t, ndjsonv.ClassifyLine([]byte(`{"a":123}`), d, opt), &le)
		assert.Equal(t, ndjsonv.CodeTooBig, le.Code)
	})

	t.Run("too deep", func(t *testing.T) {
		opt := ndjsonv.Options{Limits: ndjsonv.Limits{MaxDepth: 2}}
		assert.NoError(t, ndjsonv.ClassifyLine([]byte(`{"a":[1]}`), d, opt))
		var le *ndjsonv.LineError
		require.ErrorAs(t, ndjsonv.ClassifyLine([]byte(`{"a":[[1]]}`), d, opt), &le)
		assert.Equal(t, ndjsonv.CodeTooDeep, le.Code)
		assert.Contains(t, le.Message, "/a/0")
	})

	t.Run("duplicate keys", func(t *testing.T) {
		opt := ndjsonv.Options{Limits: ndjsonv.Limits{RejectDuplicateKeys: true}}
		assert.NoError(t, ndjsonv.ClassifyLine([]byte(`{"a":1,"b":{"a":2}}`), d, opt))
		var le *ndjsonv.LineError
		require.ErrorAs(t, ndjsonv.ClassifyLine([]byte(`[{"a":1,"a":2}]`), d, opt), &le)
		assert.Equal(t, ndjsonv.CodeDuplicateKey, le.Code)
		assert.Contains(t, le.Message, "/0/a")
	})

	t.Run("nesting cap applies without limits", func(t *testing.T) {
		n := ndjsonv.NestingLimit
		assert.NoError(t, ndjsonv.ClassifyLine([]byte(strings.Repeat("[", n)+strings.Repeat("]", n)), d, ndjsonv.Options{}))

		var le *ndjsonv.LineError
		deep := strings.Repeat(`{"k":`, n+1) + "0" + strings.Repeat("}", n+1)
		require.ErrorAs(t, ndjsonv.ClassifyLine([]byte(deep), rejectAll{}, ndjsonv.Options{}), &le)
		assert.Equal(t, ndjsonv.CodeTooDeep, le.Code)
		assert.Contains(t, le.Message, "1000")

		// brackets inside strings do not count
		quoted := `"` + strings.Repeat("[", 20000) + `"`
		assert.NoError(t, ndjsonv.ClassifyLine([]byte(quoted), d, ndjsonv.Options{}))
	})

	t.Run("duplicates allowed by default", func(t *testing.T) {
		assert.NoError(t, ndjsonv.ClassifyLine([]byte(`{"a":1,"a":2}`), d, ndjsonv.Options{}))
	})
}

func TestClassifyLine_Pure(t *testing.T) {
	d := stdDriver(t)
	line := []byte(`{"b":2,"a":1.50}`)
	orig := append([]byte(nil), line...)
	for i := 0; i < 3; i++ {
		require.NoError(t, ndjsonv.ClassifyLine(line, d, ndjsonv.Options{}))
	}
	assert.Equal(t, orig, line)
}
