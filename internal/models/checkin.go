package models

import (
	"time"
)

// Session identifies one of the fixed daily check-in windows
type Session string

const (
	// SessionNoon is the midday check-in window
	SessionNoon Session = "noon"

	// SessionEvening is the evening check-in window
	SessionEvening Session = "evening"
)

// AllSessions lists the sessions in display order
func AllSessions() []Session {
	return []Session{SessionNoon, SessionEvening}
}

// DateKey formats a timestamp as the calendar-day key used throughout the ledger
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// CheckIn records a single attendance event for one member in one session on one day
type CheckIn struct {
	// ID is the unique identifier for the check-in record
	ID string

	// GuildID is the Discord server/guild the check-in belongs to
	GuildID string

	// MemberID is the Discord user ID of the member who checked in
	MemberID string

	// Session is the window the member checked in during
	Session Session

	// Date is the calendar day of the check-in (2006-01-02, bot timezone)
	Date string

	// Timestamp is when the check-in was recorded
	Timestamp time.Time

	// DisplayTime is the HH:MM shown on the attendance board
	DisplayTime string
}
