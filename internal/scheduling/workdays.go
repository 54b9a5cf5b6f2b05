package scheduling

import "time"

// NextWorkingDate advances base one calendar day at a time until daysToAdd
// working days have been counted. Saturdays and Sundays are skipped. The
// result is formatted as an ISO date (YYYY-MM-DD).
func NextWorkingDate(daysToAdd int, base time.Time) string {
	date := base
	added := 0
	for added < daysToAdd {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return date.Format("2006-01-02")
}
