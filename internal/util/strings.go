package util

import (
	"fmt"
	"strings"
	"unicode"
)

// EscapeString renders s the way string literals appear in IR dumps: common
// control characters use their named escapes, everything else non-printable
// or non-ASCII becomes a \xNN escape.
func EscapeString(s string) string {
	sb := strings.Builder{}
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if unicode.IsPrint(r) && r < unicode.MaxASCII {
				sb.WriteRune(r)
			} else {
				sb.WriteString(fmt.Sprintf("\\x%02X", r))
			}
		}
	}
	return sb.String()
}
