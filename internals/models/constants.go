package models

import (
	"regexp"
	"time"
)

const (
	LevelAAA    = "AAA"
	LevelMinors = "Minors"
	LevelMajors = "Majors"
)

var Levels = []string{LevelAAA, LevelMinors, LevelMajors}

// TimeSlots is the fixed daily schedule, in chronological order.
var TimeSlots = []string{"8:00", "10:15", "12:30", "2:45"}

// TimeSlotAll is the availability sentinel covering every slot of a date.
const TimeSlotAll = "all"

var Fields = []string{"A", "B", "C", "D", "E"}

const (
	PositionPlate = "plate"
	PositionBase  = "base"
	PositionSolo  = "solo"
)

var Positions = []string{PositionPlate, PositionBase, PositionSolo}

const (
	GameScheduled = "scheduled"
	GameCompleted = "completed"
	GamePostponed = "postponed"
	GameCancelled = "cancelled"
)

const (
	WorkedAssigned  = "assigned"
	WorkedWorked    = "worked"
	WorkedNoShow    = "no_show"
	WorkedCancelled = "cancelled"
)

const (
	AvailAvailable   = "available"
	AvailUnavailable = "unavailable"
	AvailPreferred   = "preferred"
)

// TimeSlotOrder ranks a slot chronologically; unknown slots sort last.
func TimeSlotOrder(slot string) int {
	for i, s := range TimeSlots {
		if s == slot {
			return i + 1
		}
	}
	return 99
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func ValidLevel(level string) bool    { return contains(Levels, level) }
func ValidTimeSlot(slot string) bool  { return contains(TimeSlots, slot) }
func ValidField(field string) bool    { return contains(Fields, field) }
func ValidPosition(pos string) bool   { return contains(Positions, pos) }
func ValidAvailability(s string) bool { return s == AvailAvailable || s == AvailUnavailable || s == AvailPreferred }

func ValidGameOutcome(s string) bool {
	return s == GameCompleted || s == GamePostponed || s == GameCancelled
}

func ValidWorkedOutcome(s string) bool {
	return s == WorkedWorked || s == WorkedNoShow || s == WorkedCancelled
}

var phoneRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)

func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// DateFormat is the wire format for all date fields.
const DateFormat = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// Today truncates the wall clock to a date in UTC, matching the stored
// date-typed columns.
func Today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
