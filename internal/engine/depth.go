package engine

// ExceedsDepth reports whether b opens more than limit nested arrays or
// objects at any point. Brackets inside strings are ignored. The scan does
// not check syntax, so it is safe to run before a backend sees the input.
func ExceedsDepth(b []byte, limit int) bool {
	depth := 0
	inString, escaped := false, false
	for _, c := range b {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
			if depth > limit {
				return true
			}
		case ']', '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return false
}
