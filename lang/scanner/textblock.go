package scanner

import "strings"

// stripIndent applies text block layout rules to the raw content between
// the delimiters: a blank opening or closing line is dropped, the common
// leading whitespace of non-blank lines is removed, and trailing whitespace
// is trimmed from every line.
func stripIndent(raw string) string {
	lines := strings.Split(raw, "\n")
	if len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	if len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	indent := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		indent = 0
	}

	for i, line := range lines {
		if isBlank(line) {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimRight(line[indent:], " \t")
	}
	return strings.Join(lines, "\n")
}

func isBlank(line string) bool {
	return strings.TrimLeft(line, " \t\f") == ""
}

// decodeEscapes replaces escape sequences already validated by the scanner.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(escapeValue(s[i]))
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
