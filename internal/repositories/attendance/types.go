package attendance

import (
	"github.com/lamdn/attendbot/internal/models"
)

// AddCheckInInput contains parameters for storing a check-in record
type AddCheckInInput struct {
	// Record is the check-in to store
	Record *models.CheckIn
}

// HasCheckInInput contains parameters for the duplicate check
type HasCheckInInput struct {
	GuildID  string
	Date     string
	Session  models.Session
	MemberID string
}

// HasCheckInOutput contains the result of the duplicate check
type HasCheckInOutput struct {
	// Exists indicates a record is already stored for the key
	Exists bool
}

// GetDayInput contains parameters for retrieving one day's sheet
type GetDayInput struct {
	GuildID string
	Date    string
}

// GetDayOutput contains one day's sheet
type GetDayOutput struct {
	// Day holds the sheet; sessions with no check-ins are empty slices
	Day *models.DaySessions
}

// GetDateRangeInput contains parameters for retrieving a span of days
type GetDateRangeInput struct {
	GuildID string

	// StartDate and EndDate bound the range, inclusive on both ends
	StartDate string
	EndDate   string
}

// GetDateRangeOutput contains the day sheets found in the range
type GetDateRangeOutput struct {
	// Days is sorted by date ascending; days with no stored state are absent
	Days []*models.DaySessions
}

// MarkDayRolledInput contains parameters for closing out a day
type MarkDayRolledInput struct {
	GuildID string
	Date    string
}

// MarkDayRolledOutput contains the result of closing out a day
type MarkDayRolledOutput struct {
	// AlreadyRolled indicates the day had been rolled before this call
	AlreadyRolled bool
}

// PurgeDaysBeforeInput contains parameters for purging old days
type PurgeDaysBeforeInput struct {
	GuildID string

	// CutoffDate is exclusive: days strictly before it are deleted
	CutoffDate string
}

// PurgeDaysBeforeOutput contains the result of a purge
type PurgeDaysBeforeOutput struct {
	// DaysPurged is the number of day-log entries deleted
	DaysPurged int
}

// ListGuildsOutput contains the guilds with recorded attendance state
type ListGuildsOutput struct {
	GuildIDs []string
}
