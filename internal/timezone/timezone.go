package timezone

import "time"

// DefaultTimezone is the club's home timezone; all human-facing
// timestamps (emails, exports) are rendered in it.
const DefaultTimezone = "America/New_York"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Eastern() *time.Location {
	return Location(DefaultTimezone)
}

func Now() time.Time {
	return time.Now().In(Eastern())
}

// FormatEastern renders "06/15/2025 at 6:30 PM (ET)".
func FormatEastern(t time.Time) string {
	return t.In(Eastern()).Format("01/02/2006 at 3:04 PM") + " (ET)"
}

// FormatEasternRange renders a start/end pair, collapsing the date
// when both ends fall on the same Eastern day.
func FormatEasternRange(start time.Time, end *time.Time) string {
	if end == nil {
		return FormatEastern(start)
	}

	s := start.In(Eastern())
	e := end.In(Eastern())
	if s.Year() == e.Year() && s.YearDay() == e.YearDay() {
		return s.Format("01/02/2006 at 3:04 PM") + " → " + e.Format("3:04 PM") + " (ET)"
	}
	return s.Format("01/02/2006 at 3:04 PM") + " → " + e.Format("01/02/2006 at 3:04 PM") + " (ET)"
}

// FormatEasternDate renders a bare date, "06/15/2025".
func FormatEasternDate(t time.Time) string {
	return t.In(Eastern()).Format("01/02/2006")
}
