package field

import (
	"strings"
)

// Line is one input line split into fields. It is immutable once built.
type Line struct {
	fields []string
}

// Split parses raw into fields under sep. Any string parses.
func Split(raw string, sep Separator) Line {
	switch sep.Mode {
	case Char:
		return Line{fields: strings.Split(raw, string(sep.Char))}
	case WholeLine:
		return Line{fields: []string{raw}}
	default:
		return Line{fields: strings.Fields(raw)}
	}
}

// Field returns the field at index, or "" when the line has no such field.
func (l Line) Field(index int) string {
	if index < 0 || index >= len(l.fields) {
		return ""
	}
	return l.fields[index]
}

// Each calls fn for every field except the one at skip, in order.
func (l Line) Each(skip int, fn func(string)) {
	for i, f := range l.fields {
		if i != skip {
			fn(f)
		}
	}
}
