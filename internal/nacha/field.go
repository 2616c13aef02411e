package nacha

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldSpec locates one fixed-width field within a record line.
// Positions are 1-based and inclusive, as printed in the NACHA file layouts.
type FieldSpec struct {
	Start   int
	End     int
	Numeric bool
}

// Width returns the nominal width of the field.
func (s FieldSpec) Width() int {
	return s.End - s.Start + 1
}

// Raw returns the characters of line covered by the field, unmodified.
// A line shorter than End yields whatever part of the range exists, possibly "".
func (s FieldSpec) Raw(line string) string {
	return substring(line, s.Start-1, s.End)
}

// Str returns the raw value with surrounding whitespace removed.
func (s FieldSpec) Str(line string) string {
	return strings.TrimSpace(s.Raw(line))
}

// Int parses the raw value as a base-10 integer. Leading whitespace and a
// sign are accepted and parsing stops at the first non-digit. ok is false
// when no digits are found or the value overflows int64.
func (s FieldSpec) Int(line string) (n int64, ok bool) {
	return parseLeadingInt(s.Raw(line))
}

// substring clamps start and end to the line, counting characters not bytes.
func substring(line string, start, end int) string {
	if utf8.ValidString(line) && len(line) != utf8.RuneCountInString(line) {
		runes := []rune(line)
		start, end = clamp(start, end, len(runes))
		return string(runes[start:end])
	}
	start, end = clamp(start, end, len(line))
	return line[start:end]
}

func clamp(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

func parseLeadingInt(raw string) (int64, bool) {
	s := strings.TrimLeft(raw, " \t\r\n\v\f")
	sign := ""
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(sign+s[:i], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
