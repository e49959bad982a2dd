package engine_test

import (
	"strings"
	"testing"

	eng "github.com/reoring/ndjsonv/internal/engine"
)

func TestExceedsDepth(t *testing.T) {
	cases := []struct {
		js    string
		limit int
		want  bool
	}{
		{`1`, 0, false},
		{`[]`, 1, false},
		{`[]`, 0, true},
		{`{"a":[{"b":[]}]}`, 4, false},
		{`{"a":[{"b":[]}]}`, 3, true},
		{`[[],[],[]]`, 2, false},
		{`"[[[[{{{{"`, 1, false},
		{`["\"[[[["]`, 1, false},
		{`["\\",[[]]]`, 2, true},
		{`]]]][`, 1, false},
		{strings.Repeat("[", 20000) + strings.Repeat("]", 20000), 1000, true},
		{strings.Repeat("[", 1000) + strings.Repeat("]", 1000), 1000, false},
	}
	for _, tc := range cases {
		if got := eng.ExceedsDepth([]byte(tc.js), tc.limit); got != tc.want {
			name := tc.js
			if len(name) > 40 {
				name = name[:40] + "..."
			}
			t.Fatalf("%s (limit %d): got %v want %v", name, tc.limit, got, tc.want)
		}
	}
}
