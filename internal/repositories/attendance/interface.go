package attendance

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/lamdn/attendbot/internal/repositories/attendance Repository

// Repository defines the storage interface for the attendance day log
type Repository interface {
	// AddCheckIn durably stores a check-in record
	AddCheckIn(ctx context.Context, input *AddCheckInInput) error

	// HasCheckIn reports whether a member already checked in for a
	// (guild, date, session)
	HasCheckIn(ctx context.Context, input *HasCheckInInput) (*HasCheckInOutput, error)

	// GetDay retrieves one day's check-ins grouped by session
	GetDay(ctx context.Context, input *GetDayInput) (*GetDayOutput, error)

	// GetDateRange retrieves the day sheets recorded in an inclusive date range
	GetDateRange(ctx context.Context, input *GetDateRangeInput) (*GetDateRangeOutput, error)

	// MarkDayRolled records that a day has been closed out
	MarkDayRolled(ctx context.Context, input *MarkDayRolledInput) (*MarkDayRolledOutput, error)

	// PurgeDaysBefore deletes all day-log entries strictly before a cutoff date
	PurgeDaysBefore(ctx context.Context, input *PurgeDaysBeforeInput) (*PurgeDaysBeforeOutput, error)

	// ListGuilds returns the guilds with any recorded attendance state
	ListGuilds(ctx context.Context) (*ListGuildsOutput, error)
}
