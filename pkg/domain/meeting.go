package domain

import (
	"fmt"
	"strings"
	"time"
)

// Meeting is a viewing or coordination slot between a bidder and a property.
// Admin meetings are internal coordination entries rather than scheduled
// viewings.
type Meeting struct {
	PropertyID ID     `json:"property_id"`
	BidderID   ID     `json:"bidder_id"`
	Venue      string `json:"venue"`
	Date       Date   `json:"date"`
	Start      Clock  `json:"start"`
	End        Clock  `json:"end"`
	Admin      bool   `json:"admin"`
}

// IsSame matches on property, bidder, date and start time.
func (m Meeting) IsSame(other Meeting) bool {
	return m.PropertyID.Matches(other.PropertyID) &&
		m.BidderID.Matches(other.BidderID) &&
		m.Date == other.Date &&
		m.Start == other.Start
}

func (m Meeting) Equal(other Meeting) bool { return m == other }

func (m Meeting) Clone() Meeting { return m }

// Overlaps reports whether both meetings share a date and their time ranges
// intersect.
func (m Meeting) Overlaps(other Meeting) bool {
	return m.Date == other.Date && m.Start < other.End && other.Start < m.End
}

// Validate checks the field-level constraints of a meeting.
func (m Meeting) Validate() error {
	switch {
	case m.PropertyID == "":
		return InvalidArgumentError{Field: "property_id", Reason: "required"}
	case m.BidderID == "":
		return InvalidArgumentError{Field: "bidder_id", Reason: "required"}
	case strings.TrimSpace(m.Venue) == "":
		return InvalidArgumentError{Field: "venue", Reason: "required"}
	case m.Date.IsZero():
		return InvalidArgumentError{Field: "date", Reason: "required"}
	case m.End <= m.Start:
		return InvalidArgumentError{Field: "end", Reason: "must be after start"}
	}
	return nil
}

// Date is a calendar day without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const isoDate = "2006-01-02"

// ParseDate accepts ISO dates (2021-08-03) and day-first dates (03-08-2021).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{isoDate, "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, InvalidArgumentError{Field: "date", Reason: fmt.Sprintf("cannot parse %q", s)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool { return d == Date{} }

// Compare orders dates chronologically.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(isoDate)
}

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock is a time of day in minutes after midnight.
type Clock int

// NewClock builds a Clock from hours and minutes.
func NewClock(hour, minute int) Clock { return Clock(hour*60 + minute) }

// ParseClock parses "15:04" formatted times.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, InvalidArgumentError{Field: "time", Reason: fmt.Sprintf("cannot parse %q", s)}
	}
	return NewClock(t.Hour(), t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
