package models

import (
	"encoding/json"
	"time"
)

const ISODate = "2006-01-02" // Date format used for (un)marshaling DueDate

// DueDate wraps time.Time to enable custom JSON marshaling/unmarshaling
// using the "YYYY-MM-DD" format (e.g., "2025-08-07").
type DueDate time.Time

// MarshalJSON serializes the DueDate to JSON in "YYYY-MM-DD" format.
func (d DueDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(ISODate))
}

// UnmarshalJSON parses a "YYYY-MM-DD" formatted string into a DueDate.
func (d *DueDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return err
	}
	*d = DueDate(t)
	return nil
}

// Time returns the underlying time.Time value of the DueDate.
func (d DueDate) Time() time.Time {
	return time.Time(d)
}

// Equal reports whether two due dates represent the same instant.
func (d DueDate) Equal(other DueDate) bool {
	return time.Time(d).Equal(time.Time(other))
}
