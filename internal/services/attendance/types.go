package attendance

import (
	"time"

	"github.com/lamdn/attendbot/internal/common/clock"
	"github.com/lamdn/attendbot/internal/common/uuid"
	"github.com/lamdn/attendbot/internal/models"
	attendanceRepo "github.com/lamdn/attendbot/internal/repositories/attendance"
	"github.com/lamdn/attendbot/internal/sessions"
)

// Config holds configuration for the attendance service
type Config struct {
	// Repository dependencies
	Repo attendanceRepo.Repository

	// Service dependencies
	Policy        *sessions.Policy
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CheckInInput contains parameters for recording a check-in
type CheckInInput struct {
	// GuildID is the Discord server/guild the check-in belongs to
	GuildID string

	// MemberID is the Discord user ID of the member checking in
	MemberID string

	// Eligible reports the caller's role-gate lookup. The service never
	// sees roles; when a guild gates check-in, the handler resolves the
	// role and passes the result here. Callers without a gate pass true.
	Eligible bool

	// At is when the check-in happened; zero means the clock's now
	At time.Time
}

// CheckInOutput contains the result of recording a check-in
type CheckInOutput struct {
	// Record is the stored check-in, including its display time
	Record *models.CheckIn

	// Session is the window the check-in landed in
	Session models.Session
}

// GetDaySheetInput contains parameters for reading a day's sheet
type GetDaySheetInput struct {
	GuildID string

	// Date selects the day; empty means the clock's today
	Date string
}

// GetDaySheetOutput contains a day's sheet
type GetDaySheetOutput struct {
	// Day holds the sheet; sessions with no check-ins are empty slices
	Day *models.DaySessions
}

// RollDayInput contains parameters for closing out a day
type RollDayInput struct {
	GuildID string
	Date    string
}

// RollDayOutput contains the result of closing out a day
type RollDayOutput struct {
	// AlreadyRolled indicates the day had been rolled before this call
	AlreadyRolled bool

	// Day is the closed day's sheet, for posting to a history channel
	Day *models.DaySessions
}

// AggregateWeekInput contains parameters for the weekly aggregate
type AggregateWeekInput struct {
	GuildID string

	// WeekStart and WeekEnd bound the range, inclusive on both ends
	WeekStart string
	WeekEnd   string

	// EligibleMemberIDs, when non-nil, restricts the aggregate to these
	// members; outsiders are excluded entirely, not zero-filled
	EligibleMemberIDs []string
}

// AggregateWeekOutput contains the weekly aggregate
type AggregateWeekOutput struct {
	// Aggregate maps member ID to sessions attended in the range
	Aggregate models.WeeklyAggregate

	// TotalCheckIns is the number of check-in records counted
	TotalCheckIns int
}

// PurgeBeforeInput contains parameters for purging old days
type PurgeBeforeInput struct {
	GuildID string

	// CutoffDate is exclusive: days strictly before it are deleted
	CutoffDate string
}

// PurgeBeforeOutput contains the result of a purge
type PurgeBeforeOutput struct {
	// DaysPurged is the number of day-log entries deleted
	DaysPurged int
}

// ListGuildsOutput contains the guilds with recorded attendance state
type ListGuildsOutput struct {
	GuildIDs []string
}
