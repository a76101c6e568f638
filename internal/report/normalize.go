package report

import "strings"

// NormalizeStamp rewrites a compact iCalendar date-time token into the
// extended form by inserting date hyphens after positions 3 and 5 and time
// colons after positions 10 and 12 (0-indexed). Everything past position 12
// (a trailing zone marker or offset, if any) passes through unchanged.
//
// Example: 20220921T151530Z -> 2022-09-21T15:15:30Z
//
// No validation is performed; a malformed token comes out syntactically
// normalized and fails at the parse step that consumes the result.
func NormalizeStamp(token string) string {
	var b strings.Builder
	b.Grow(len(token) + 4)

	for i := 0; i < len(token); i++ {
		b.WriteByte(token[i])

		if i == 3 || i == 5 {
			b.WriteByte('-')
		}
		if i == 10 || i == 12 {
			b.WriteByte(':')
		}
	}

	return b.String()
}
