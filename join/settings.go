package join

import (
	"fmt"
	"strconv"

	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/field"
)

// Side identifies one of the two inputs.
type Side int

const (
	// SideNone selects neither input.
	SideNone Side = iota
	// Side1 is the first input.
	Side1
	// Side2 is the second input.
	Side2
)

// String returns "1", "2" or "none".
func (s Side) String() string {
	switch s {
	case Side1:
		return "1"
	case Side2:
		return "2"
	default:
		return "none"
	}
}

// ParseSide parses an unpaired file number. The empty string selects
// SideNone.
func ParseSide(value string) (Side, error) {
	switch value {
	case "":
		return SideNone, nil
	case "1":
		return Side1, nil
	case "2":
		return Side2, nil
	default:
		return SideNone, errors.InvalidFileNumber(value)
	}
}

// Settings is the immutable configuration of one run.
type Settings struct {
	// Key1 and Key2 are the zero-based join field of each side.
	Key1 int
	Key2 int
	// Unpaired selects the side whose unmatched lines are also written.
	Unpaired Side
	// IgnoreCase compares keys case-insensitively.
	IgnoreCase bool
	// Separator is the field policy for input and output.
	Separator field.Separator
	// CheckOrder fails the run when a side's keys decrease.
	CheckOrder bool
}

// DefaultSettings joins on the first field of each side, separated by
// white space.
func DefaultSettings() Settings {
	return Settings{Separator: field.Blank}
}

// Key returns the zero-based join field of side.
func (s Settings) Key(side Side) int {
	if side == Side2 {
		return s.Key2
	}
	return s.Key1
}

// Validate rejects settings no run could use.
func (s Settings) Validate() error {
	if s.Key1 < 0 || s.Key2 < 0 {
		return errors.InvalidFieldSpec(strconv.Itoa(min(s.Key1, s.Key2) + 1))
	}
	if s.Unpaired < SideNone || s.Unpaired > Side2 {
		return errors.InvalidFileNumber(strconv.Itoa(int(s.Unpaired)))
	}
	return nil
}

// ParseFieldNumber parses a 1-based field number. The empty string means the
// field was not given and yields 0.
func ParseFieldNumber(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, errors.InvalidFieldSpec(value)
	}
	return n, nil
}

// ResolveKey reconciles the field number given for both sides with the one
// given for a single side and returns the zero-based index. Both arguments
// are 1-based with 0 meaning not given.
func ResolveKey(shared, perSide int) (int, error) {
	if shared > 0 {
		if perSide > 0 && perSide != shared {
			return 0, errors.ConfigConflict(fmt.Sprintf("incompatible join fields %d, %d", shared, perSide)).
				WithDetails(map[string]any{"shared": shared, "side": perSide})
		}
		return shared - 1, nil
	}
	if perSide > 0 {
		return perSide - 1, nil
	}
	return 0, nil
}
