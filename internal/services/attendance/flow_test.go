package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lamdn/attendbot/internal/common/uuid"
	"github.com/lamdn/attendbot/internal/models"
	attendanceRepo "github.com/lamdn/attendbot/internal/repositories/attendance"
	"github.com/lamdn/attendbot/internal/sessions"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

// stubClock lets the flow tests move wall time between calls
type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// AttendanceFlowTestSuite exercises the service against a real repository
// backed by miniredis
type AttendanceFlowTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	clock   *stubClock
	service Service
	ctx     context.Context
}

func (s *AttendanceFlowTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := attendanceRepo.NewRedis(&attendanceRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)

	s.clock = &stubClock{now: time.Date(2025, 6, 2, 12, 5, 0, 0, time.UTC)}

	service, err := New(&Config{
		Repo:          repo,
		Policy:        sessions.New(nil),
		Clock:         s.clock,
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)
	s.service = service

	s.ctx = context.Background()
}

func (s *AttendanceFlowTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestAttendanceFlowTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceFlowTestSuite))
}

func (s *AttendanceFlowTestSuite) TestCheckInDayRollAggregate() {
	// Member checks in at 12:05: lands in the noon session
	output, err := s.service.CheckIn(s.ctx, &CheckInInput{
		GuildID:  "guild-1",
		MemberID: "member-1",
		Eligible: true,
	})
	s.Require().NoError(err)
	s.Equal(models.SessionNoon, output.Session)
	s.Equal("12:05", output.Record.DisplayTime)

	// The board shows one entry under noon, none under evening
	sheet, err := s.service.GetDaySheet(s.ctx, &GetDaySheetInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Len(sheet.Day.Sessions[models.SessionNoon], 1)
	s.Empty(sheet.Day.Sessions[models.SessionEvening])

	// A second attempt in the same session is rejected
	s.clock.set(time.Date(2025, 6, 2, 12, 10, 0, 0, time.UTC))
	_, err = s.service.CheckIn(s.ctx, &CheckInInput{
		GuildID:  "guild-1",
		MemberID: "member-1",
		Eligible: true,
	})
	s.ErrorIs(err, ErrDuplicateCheckIn)

	// 17:00 falls outside every window
	s.clock.set(time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC))
	_, err = s.service.CheckIn(s.ctx, &CheckInInput{
		GuildID:  "guild-1",
		MemberID: "member-1",
		Eligible: true,
	})
	s.ErrorIs(err, ErrOutOfWindow)

	// Roll the day; rolling again is a no-op with the same sheet
	rolled, err := s.service.RollDay(s.ctx, &RollDayInput{GuildID: "guild-1", Date: "2025-06-02"})
	s.Require().NoError(err)
	s.False(rolled.AlreadyRolled)
	s.Equal(1, rolled.Day.Total())

	rolledAgain, err := s.service.RollDay(s.ctx, &RollDayInput{GuildID: "guild-1", Date: "2025-06-02"})
	s.Require().NoError(err)
	s.True(rolledAgain.AlreadyRolled)
	s.Equal(rolled.Day, rolledAgain.Day)

	// The rolled day still counts toward the weekly aggregate
	week, err := s.service.AggregateWeek(s.ctx, &AggregateWeekInput{
		GuildID:   "guild-1",
		WeekStart: "2025-06-02",
		WeekEnd:   "2025-06-08",
	})
	s.Require().NoError(err)
	s.Equal(models.WeeklyAggregate{"member-1": 1}, week.Aggregate)
}

func (s *AttendanceFlowTestSuite) TestConcurrentCheckInsOneWinner() {
	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.service.CheckIn(s.ctx, &CheckInInput{
				GuildID:  "guild-1",
				MemberID: "member-1",
				Eligible: true,
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	duplicates := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case err == ErrDuplicateCheckIn:
			duplicates++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}

	s.Equal(1, successes)
	s.Equal(attempts-1, duplicates)

	// Exactly one record was stored
	sheet, err := s.service.GetDaySheet(s.ctx, &GetDaySheetInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Len(sheet.Day.Sessions[models.SessionNoon], 1)
}

func (s *AttendanceFlowTestSuite) TestPurgeBoundary() {
	dates := []string{"2025-06-02", "2025-06-05", "2025-06-08", "2025-06-09"}
	for _, date := range dates {
		at, err := time.Parse("2006-01-02", date)
		s.Require().NoError(err)
		s.clock.set(at.Add(13 * time.Hour))

		_, err = s.service.CheckIn(s.ctx, &CheckInInput{
			GuildID:  "guild-1",
			MemberID: "member-1",
			Eligible: true,
		})
		s.Require().NoError(err)
	}

	output, err := s.service.PurgeBefore(s.ctx, &PurgeBeforeInput{
		GuildID:    "guild-1",
		CutoffDate: "2025-06-08",
	})
	s.Require().NoError(err)
	s.Equal(2, output.DaysPurged)

	// Dates >= cutoff are retained, exactly
	week, err := s.service.AggregateWeek(s.ctx, &AggregateWeekInput{
		GuildID:   "guild-1",
		WeekStart: "2025-06-01",
		WeekEnd:   "2025-06-30",
	})
	s.Require().NoError(err)
	s.Equal(2, week.TotalCheckIns)
}
