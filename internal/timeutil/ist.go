package timeutil

import (
	"fmt"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Layouts for business dates. All domain dates are day-resolution strings.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// Today returns the current IST calendar day as YYYY-MM-DD
func Today() string {
	return Now().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD business date in IST
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, IST)
}

// ParseMonth parses a YYYY-MM month; the returned time is the first of the month in IST
func ParseMonth(s string) (time.Time, error) {
	return time.ParseInLocation(MonthLayout, s, IST)
}

// MonthOf returns the YYYY-MM month a YYYY-MM-DD date falls in
func MonthOf(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}

// InMonth reports whether a YYYY-MM-DD date falls inside a YYYY-MM month
func InMonth(date, month string) bool {
	return MonthOf(date) == month
}

// DaysInMonth returns the number of calendar days in a YYYY-MM month
func DaysInMonth(month string) (int, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return 0, err
	}
	return t.AddDate(0, 1, -1).Day(), nil
}

// LastDayOfMonth returns the YYYY-MM-DD of the month's final day
func LastDayOfMonth(month string) (string, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 1, -1).Format(DateLayout), nil
}

// MidMonthDate returns the 15th of a YYYY-MM month as YYYY-MM-DD
func MidMonthDate(month string) string {
	return fmt.Sprintf("%s-15", month)
}

// MonthsInclusive counts months from the month of `from` (YYYY-MM-DD) through
// the month `to` (YYYY-MM), inclusive on both ends, floored at zero.
func MonthsInclusive(from string, to string) (int, error) {
	start, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	end, err := ParseMonth(to)
	if err != nil {
		return 0, err
	}
	n := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if n < 0 {
		n = 0
	}
	return n, nil
}
