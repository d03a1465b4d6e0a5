package payroll

import "time"

// WeekStart returns the Monday on or before d, at midnight in d's location.
// Weeks are fixed Monday-starting, inclusive 7-day windows: a game on a
// boundary date belongs to the week whose Monday <= date <= Sunday.
func WeekStart(d time.Time) time.Time {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday of the week containing d.
func WeekEnd(d time.Time) time.Time {
	return WeekStart(d).AddDate(0, 0, 6)
}
