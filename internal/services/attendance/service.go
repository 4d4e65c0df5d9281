package attendance

import (
	"context"
	"fmt"
	"sync"

	"github.com/lamdn/attendbot/internal/common/clock"
	"github.com/lamdn/attendbot/internal/common/uuid"
	"github.com/lamdn/attendbot/internal/models"
	attendanceRepo "github.com/lamdn/attendbot/internal/repositories/attendance"
	"github.com/lamdn/attendbot/internal/sessions"
)

// service implements the Service interface
type service struct {
	repo          attendanceRepo.Repository
	policy        *sessions.Policy
	clock         clock.Clock
	uuidGenerator uuid.UUID

	// guildLocks serializes mutations per guild so the duplicate-check
	// then append sequence cannot race. Different guilds proceed in
	// parallel.
	mu         sync.Mutex
	guildLocks map[string]*sync.Mutex
}

// New creates a new attendance service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repo == nil {
		return nil, ErrNilRepository
	}

	if cfg.Policy == nil {
		return nil, ErrNilPolicy
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		repo:          cfg.Repo,
		policy:        cfg.Policy,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		guildLocks:    make(map[string]*sync.Mutex),
	}, nil
}

func (s *service) guildLock(guildID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.guildLocks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		s.guildLocks[guildID] = lock
	}
	return lock
}

// CheckIn records a member's attendance for the session the clock currently
// falls in. The session is always resolved here, never taken from the
// caller, so an out-of-window request cannot smuggle in a session hint.
// Success is only reported after the record is durably stored.
func (s *service) CheckIn(ctx context.Context, input *CheckInInput) (*CheckInOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	if input.GuildID == "" {
		return nil, ErrMissingGuildID
	}

	if input.MemberID == "" {
		return nil, ErrMissingMemberID
	}

	if !input.Eligible {
		return nil, ErrNotEligible
	}

	at := input.At
	if at.IsZero() {
		at = s.clock.Now()
	}

	session, ok := s.policy.Resolve(at)
	if !ok {
		return nil, ErrOutOfWindow
	}

	date := models.DateKey(at)

	lock := s.guildLock(input.GuildID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.repo.HasCheckIn(ctx, &attendanceRepo.HasCheckInInput{
		GuildID:  input.GuildID,
		Date:     date,
		Session:  session,
		MemberID: input.MemberID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing check-in: %w", err)
	}

	if existing.Exists {
		return nil, ErrDuplicateCheckIn
	}

	record := &models.CheckIn{
		ID:          s.uuidGenerator.NewUUID(),
		GuildID:     input.GuildID,
		MemberID:    input.MemberID,
		Session:     session,
		Date:        date,
		Timestamp:   at,
		DisplayTime: at.Format("15:04"),
	}

	// Persist before acknowledging; a failed write means no check-in
	if err := s.repo.AddCheckIn(ctx, &attendanceRepo.AddCheckInInput{
		Record: record,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist check-in: %w", err)
	}

	return &CheckInOutput{
		Record:  record,
		Session: session,
	}, nil
}

// GetDaySheet returns one day's check-ins grouped by session
func (s *service) GetDaySheet(ctx context.Context, input *GetDaySheetInput) (*GetDaySheetOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	if input.GuildID == "" {
		return nil, ErrMissingGuildID
	}

	date := input.Date
	if date == "" {
		date = models.DateKey(s.clock.Now())
	}

	output, err := s.repo.GetDay(ctx, &attendanceRepo.GetDayInput{
		GuildID: input.GuildID,
		Date:    date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get day sheet: %w", err)
	}

	return &GetDaySheetOutput{Day: output.Day}, nil
}

// RollDay closes out a finished day. The day's log entries remain for
// weekly aggregation until purge; rolling only marks the day closed and
// hands back the final sheet. Rolling an already-rolled day is a no-op.
func (s *service) RollDay(ctx context.Context, input *RollDayInput) (*RollDayOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	if input.GuildID == "" {
		return nil, ErrMissingGuildID
	}

	if input.Date == "" {
		return nil, ErrMissingDate
	}

	lock := s.guildLock(input.GuildID)
	lock.Lock()
	defer lock.Unlock()

	marked, err := s.repo.MarkDayRolled(ctx, &attendanceRepo.MarkDayRolledInput{
		GuildID: input.GuildID,
		Date:    input.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to roll day: %w", err)
	}

	day, err := s.repo.GetDay(ctx, &attendanceRepo.GetDayInput{
		GuildID: input.GuildID,
		Date:    input.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get rolled day sheet: %w", err)
	}

	return &RollDayOutput{
		AlreadyRolled: marked.AlreadyRolled,
		Day:           day.Day,
	}, nil
}

// AggregateWeek sums per-member session counts across an inclusive date
// range. When EligibleMemberIDs is non-nil, members outside the set are
// excluded entirely rather than zero-filled.
func (s *service) AggregateWeek(ctx context.Context, input *AggregateWeekInput) (*AggregateWeekOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	if input.GuildID == "" {
		return nil, ErrMissingGuildID
	}

	if input.WeekStart == "" || input.WeekEnd == "" {
		return nil, ErrMissingDate
	}

	if input.WeekStart > input.WeekEnd {
		return nil, ErrInvalidDateRange
	}

	var eligible map[string]struct{}
	if input.EligibleMemberIDs != nil {
		eligible = make(map[string]struct{}, len(input.EligibleMemberIDs))
		for _, id := range input.EligibleMemberIDs {
			eligible[id] = struct{}{}
		}
	}

	days, err := s.repo.GetDateRange(ctx, &attendanceRepo.GetDateRangeInput{
		GuildID:   input.GuildID,
		StartDate: input.WeekStart,
		EndDate:   input.WeekEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	aggregate := models.WeeklyAggregate{}
	total := 0

	for _, day := range days.Days {
		for _, records := range day.Sessions {
			for _, record := range records {
				if eligible != nil {
					if _, ok := eligible[record.MemberID]; !ok {
						continue
					}
				}
				aggregate[record.MemberID]++
				total++
			}
		}
	}

	return &AggregateWeekOutput{
		Aggregate:     aggregate,
		TotalCheckIns: total,
	}, nil
}

// PurgeBefore deletes day-log entries strictly before the cutoff date.
// Irreversible; callers run it only after the week's aggregate has been
// produced and delivered.
func (s *service) PurgeBefore(ctx context.Context, input *PurgeBeforeInput) (*PurgeBeforeOutput, error) {
	if input == nil {
		return nil, ErrNilConfig
	}

	if input.GuildID == "" {
		return nil, ErrMissingGuildID
	}

	if input.CutoffDate == "" {
		return nil, ErrMissingCutoffDate
	}

	lock := s.guildLock(input.GuildID)
	lock.Lock()
	defer lock.Unlock()

	output, err := s.repo.PurgeDaysBefore(ctx, &attendanceRepo.PurgeDaysBeforeInput{
		GuildID:    input.GuildID,
		CutoffDate: input.CutoffDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to purge days: %w", err)
	}

	return &PurgeBeforeOutput{DaysPurged: output.DaysPurged}, nil
}

// ListGuilds returns the guilds with any recorded attendance state
func (s *service) ListGuilds(ctx context.Context) (*ListGuildsOutput, error) {
	output, err := s.repo.ListGuilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}

	return &ListGuildsOutput{GuildIDs: output.GuildIDs}, nil
}
