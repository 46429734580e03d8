package handler

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateOnly = "2006-01-02"

// optionalDate distinguishes an absent field (Set == false) from an explicit
// null (Set == true, Value == nil). Both RFC 3339 timestamps and plain dates
// are accepted.
type optionalDate struct {
	Set   bool
	Value *time.Time
}

func (d *optionalDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	if string(b) == "null" {
		d.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Value = nil
		return nil
	}

	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Value = &t
	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
