// Package collate orders join keys.
//
// Keys compare byte-wise. In ignore-case mode both keys are lower-cased
// first with full Unicode case mapping, so "Straße" and "STRASSE" differ
// but "ÉCOLE" and "école" are equal.
package collate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Comparator is a total order over keys, fixed for one run.
// A Comparator is not safe for concurrent use.
type Comparator struct {
	ignoreCase bool
	lower      cases.Caser
}

// New returns a Comparator; ignoreCase selects case-insensitive order.
func New(ignoreCase bool) *Comparator {
	c := &Comparator{ignoreCase: ignoreCase}
	if ignoreCase {
		c.lower = cases.Lower(language.Und)
	}
	return c
}

// IgnoreCase reports whether the comparator folds case.
func (c *Comparator) IgnoreCase() bool {
	return c.ignoreCase
}

// Compare returns -1, 0 or +1 as a sorts before, equal to, or after b.
func (c *Comparator) Compare(a, b string) int {
	if !c.ignoreCase {
		return strings.Compare(a, b)
	}
	if isLowerASCII(a) && isLowerASCII(b) {
		return strings.Compare(a, b)
	}
	return strings.Compare(c.lower.String(a), c.lower.String(b))
}

// Equal reports whether a and b are the same key.
func (c *Comparator) Equal(a, b string) bool {
	return c.Compare(a, b) == 0
}

// Compare orders a and b with a one-off comparator.
func Compare(a, b string, ignoreCase bool) int {
	return New(ignoreCase).Compare(a, b)
}

// isLowerASCII reports whether s is ASCII with no upper-case letters, in
// which case lower-casing is the identity.
func isLowerASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || ('A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}
