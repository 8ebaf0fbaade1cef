package field

import (
	"unicode/utf8"

	"github.com/kbukum/gojoin/errors"
)

// Mode is a field separator policy.
type Mode int

const (
	// Whitespace splits on runs of white space and drops empty tokens.
	Whitespace Mode = iota
	// Char splits on every occurrence of a single character.
	Char
	// WholeLine treats the entire line as one field.
	WholeLine
)

// String returns the policy name.
func (m Mode) String() string {
	switch m {
	case Whitespace:
		return "whitespace"
	case Char:
		return "char"
	case WholeLine:
		return "line"
	default:
		return "unknown"
	}
}

// Separator is the field separator policy of a run.
type Separator struct {
	Mode Mode
	// Char is the delimiter when Mode is Char.
	Char rune
}

// Blank is the default policy: fields separated by white space.
var Blank = Separator{Mode: Whitespace}

// ByChar returns a policy splitting on c.
func ByChar(c rune) Separator {
	return Separator{Mode: Char, Char: c}
}

// ByLine returns the whole-line policy.
func ByLine() Separator {
	return Separator{Mode: WholeLine}
}

// Output returns the delimiter written between output fields: the
// separator character in Char mode, a single space otherwise.
func (s Separator) Output() rune {
	if s.Mode == Char {
		return s.Char
	}
	return ' '
}

// String describes the policy for logs.
func (s Separator) String() string {
	if s.Mode == Char {
		return "char(" + string(s.Char) + ")"
	}
	return s.Mode.String()
}

// ParseSeparator converts a -t value into a policy. When set is false the
// value is ignored and the white-space policy is returned. An empty value
// selects the whole-line policy. More than one character is rejected, and so
// is a byte that is not valid UTF-8.
func ParseSeparator(value string, set bool) (Separator, error) {
	if !set {
		return Blank, nil
	}
	switch utf8.RuneCountInString(value) {
	case 0:
		return ByLine(), nil
	case 1:
		r, size := utf8.DecodeRuneInString(value)
		if r == utf8.RuneError && size == 1 {
			return Separator{}, errors.SeparatorTooLong(value)
		}
		return ByChar(r), nil
	default:
		return Separator{}, errors.SeparatorTooLong(value)
	}
}
