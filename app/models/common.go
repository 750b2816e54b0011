package models

import (
	"time"
)

// DateLayout is the ISO calendar-date format used by every entity
const DateLayout = "2006-01-02"

// Now is the clock used to stamp new records
var Now = time.Now

// Date is a calendar date in YYYY-MM-DD form
type Date string

// Today returns the current local calendar date
func Today() Date {
	return Date(Now().Format(DateLayout))
}

// Time parses the date; invalid dates yield the zero time
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether d is a well-formed calendar date
func (d Date) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}
