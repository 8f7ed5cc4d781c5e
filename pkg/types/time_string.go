package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when a string is not a valid "HH:MM" time.
var ErrInvalidTimeFormat = errors.New("invalid time string format")

// ErrTimeOutOfRange is returned when time arithmetic leaves the 00:00-23:59 day range.
var ErrTimeOutOfRange = errors.New("time out of day range")

const minutesPerDay = 24 * 60

// TimeString represents a wall-clock time of day in "HH:MM" 24-hour format.
// It is the unit of all schedule arithmetic in the service and maps directly
// to TIME columns in PostgreSQL.
type TimeString string

// NewTimeString creates a TimeString from a time.Time, keeping only hours and minutes.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed "HH:MM" 24-hour time.
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
		}
	}
	hour := int(t[0]-'0')*10 + int(t[1]-'0')
	minute := int(t[3]-'0')*10 + int(t[4]-'0')
	if hour > 23 || minute > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	hour := int(t[0]-'0')*10 + int(t[1]-'0')
	minute := int(t[3]-'0')*10 + int(t[4]-'0')
	return hour*60 + minute, nil
}

// AddMinutes returns the time shifted forward by m minutes.
// The result must stay within the same day.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += m
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d minutes", ErrTimeOutOfRange, string(t), m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Invalid values compare as not-before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// InRange reports whether t lies within [start, end], inclusive on both bounds.
func (t TimeString) InRange(start, end TimeString) (bool, error) {
	v, err := t.Minutes()
	if err != nil {
		return false, err
	}
	lo, err := start.Minutes()
	if err != nil {
		return false, err
	}
	hi, err := end.Minutes()
	if err != nil {
		return false, err
	}
	return v >= lo && v <= hi, nil
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer for storing into TIME columns.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. PostgreSQL TIME columns come back either as
// strings ("10:00:00") or as time.Time depending on the driver.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		if len(v) > 5 {
			v = v[:5]
		}
		ts, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = ts
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeFormat, src)
	}
}
