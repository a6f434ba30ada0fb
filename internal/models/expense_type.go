package models

import (
	"fmt"
	"strings"
	"time"
)

// ExpenseType is a closed enumeration. Values are ordered, so sorting by
// expense type follows declaration order.
type ExpenseType int

const (
	Food ExpenseType = iota
	Transportation
	Entertainment
	Utilities
	Other
)

// ExpenseTypes lists every member in ordinal order.
var ExpenseTypes = []ExpenseType{Food, Transportation, Entertainment, Utilities, Other}

func (t ExpenseType) String() string {
	switch t {
	case Food:
		return "Food"
	case Transportation:
		return "Transportation"
	case Entertainment:
		return "Entertainment"
	case Utilities:
		return "Utilities"
	case Other:
		return "Other"
	default:
		return fmt.Sprintf("ExpenseType(%d)", int(t))
	}
}

// Valid reports whether t is a declared member.
func (t ExpenseType) Valid() bool {
	return t >= Food && t <= Other
}

// ParseExpenseType matches a symbolic name, ignoring case.
func ParseExpenseType(s string) (ExpenseType, error) {
	for _, t := range ExpenseTypes {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown expense type %q", s)
}

func (t ExpenseType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid expense type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *ExpenseType) UnmarshalText(b []byte) error {
	parsed, err := ParseExpenseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Weekday serializes a time.Weekday by name. Ordinals follow time.Weekday,
// Sunday first.
type Weekday time.Weekday

func (d Weekday) String() string {
	return time.Weekday(d).String()
}

func (d Weekday) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(b []byte) error {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(string(b), wd.String()) {
			*d = Weekday(wd)
			return nil
		}
	}
	return fmt.Errorf("unknown weekday %q", string(b))
}
