package archive

import "strings"

// Split breaks a line into tokens on the single space character.
//
// A line without a space is one token, so an empty line yields [""].
// Leading and repeated spaces yield empty tokens; trailing empty tokens
// are dropped.
func Split(line string) []string {
	if strings.IndexByte(line, ' ') < 0 {
		return []string{line}
	}

	parts := strings.Split(line, " ")
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return parts[:n]
}
