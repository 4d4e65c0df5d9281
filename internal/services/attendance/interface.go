package attendance

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/lamdn/attendbot/internal/services/attendance Service

// Service defines the interface for the attendance ledger
type Service interface {
	// CheckIn records a member's attendance for the session the clock
	// currently falls in
	CheckIn(ctx context.Context, input *CheckInInput) (*CheckInOutput, error)

	// GetDaySheet returns one day's check-ins grouped by session
	GetDaySheet(ctx context.Context, input *GetDaySheetInput) (*GetDaySheetOutput, error)

	// RollDay closes out a finished day; idempotent
	RollDay(ctx context.Context, input *RollDayInput) (*RollDayOutput, error)

	// AggregateWeek sums per-member session counts across an inclusive date range
	AggregateWeek(ctx context.Context, input *AggregateWeekInput) (*AggregateWeekOutput, error)

	// PurgeBefore deletes day-log entries strictly before a cutoff date
	PurgeBefore(ctx context.Context, input *PurgeBeforeInput) (*PurgeBeforeOutput, error)

	// ListGuilds returns the guilds with any recorded attendance state
	ListGuilds(ctx context.Context) (*ListGuildsOutput, error)
}
