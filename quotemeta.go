package rex2

import "strings"

const specialBytes = `\.+*?()|[]{}^$`

func isSpecialByte(b byte) bool {
	return strings.IndexByte(specialBytes, b) >= 0
}

// QuoteMeta returns a string that escapes all regular expression
// metacharacters inside the argument text; the returned string is a
// regular expression matching the literal text.
func QuoteMeta(s string) string {
	hasSpecial := false
	for i := 0; i < len(s); i++ {
		if isSpecialByte(s[i]) {
			hasSpecial = true
			break
		}
	}
	if !hasSpecial {
		return s
	}

	b := make([]byte, 2*len(s))
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecialByte(s[i]) {
			b[j] = '\\'
			j++
		}
		b[j] = s[i]
		j++
	}
	return string(b[:j])
}
