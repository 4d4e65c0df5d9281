package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/lamdn/attendbot/internal/common/clock/mocks"
	uuidMocks "github.com/lamdn/attendbot/internal/common/uuid/mocks"
	"github.com/lamdn/attendbot/internal/models"
	attendanceRepo "github.com/lamdn/attendbot/internal/repositories/attendance"
	repoMocks "github.com/lamdn/attendbot/internal/repositories/attendance/mocks"
	"github.com/lamdn/attendbot/internal/sessions"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AttendanceServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockRepo  *repoMocks.MockRepository
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	service   Service
	ctx       context.Context

	// Test data
	testNoon    time.Time
	testGuildID string
	testMember  string
}

func (s *AttendanceServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = repoMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	s.testNoon = time.Date(2025, 6, 2, 12, 5, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"
	s.testMember = "test-member-id"

	service, err := New(&Config{
		Repo:          s.mockRepo,
		Policy:        sessions.New(nil),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *AttendanceServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}

func (s *AttendanceServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{
		Policy:        sessions.New(nil),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.ErrorIs(err, ErrNilRepository)

	_, err = New(&Config{
		Repo:          s.mockRepo,
		Policy:        sessions.New(nil),
		UUIDGenerator: s.mockUUID,
	})
	s.ErrorIs(err, ErrNilClock)
}

func (s *AttendanceServiceTestSuite) TestCheckInSuccess() {
	s.mockClock.EXPECT().Now().Return(s.testNoon)
	s.mockUUID.EXPECT().NewUUID().Return("test-checkin-id")

	s.mockRepo.EXPECT().HasCheckIn(s.ctx, &attendanceRepo.HasCheckInInput{
		GuildID:  s.testGuildID,
		Date:     "2025-06-02",
		Session:  models.SessionNoon,
		MemberID: s.testMember,
	}).Return(&attendanceRepo.HasCheckInOutput{Exists: false}, nil)

	s.mockRepo.EXPECT().AddCheckIn(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, input *attendanceRepo.AddCheckInInput) error {
			s.Equal("test-checkin-id", input.Record.ID)
			s.Equal(s.testGuildID, input.Record.GuildID)
			s.Equal(s.testMember, input.Record.MemberID)
			s.Equal(models.SessionNoon, input.Record.Session)
			s.Equal("2025-06-02", input.Record.Date)
			s.Equal("12:05", input.Record.DisplayTime)
			return nil
		})

	output, err := s.service.CheckIn(s.ctx, &CheckInInput{
		GuildID:  s.testGuildID,
		MemberID: s.testMember,
		Eligible: true,
	})
	s.Require().NoError(err)

	s.Equal(models.SessionNoon, output.Session)
	s.Equal("test-checkin-id", output.Record.ID)
	s.Equal("12:05", output.Record.DisplayTime)
}

func (s *AttendanceServiceTestSuite) TestCheckInDuplicate() {
	s.mockClock.EXPECT().Now().Return(s.testNoon)

	s.mockRepo.EXPECT().HasCheckIn(s.ctx, gomock.Any()).
		Return(&attendanceRepo.HasCheckInOutput{Exists: true}, nil)

	// No AddCheckIn expected: the duplicate never reaches the store

	_, err := s.service.CheckIn(s.ctx, &CheckInInput{
		GuildID:  s.testGuildID,
		MemberID: s.testMember,
		Eligible: true,
	})
	s.ErrorIs(err, ErrDuplicateCheckIn)
}

func (s *AttendanceServiceTestSuite) TestCheckInOutOfWindow() {
	// 17:00 falls in the gap between the noon and evening windows
	s.mockClock.EXPECT().Now().Return(time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC))

	_, err := s.service.CheckIn(s.ctx, &CheckInInput{
		GuildID:  s.testGuildID,
		MemberID: s.testMember,
		Eligible: true,
	})
	s.ErrorIs(err, ErrOutOfWindow)
}

func (s *AttendanceServiceTestSuite) TestCheckInNotEligible() {
	_, err := s.service.CheckIn(s.ctx, &CheckInInput{
		GuildID:  s.testGuildID,
		MemberID: s.testMember,
		Eligible: false,
	})
	s.ErrorIs(err, ErrNotEligible)
}

func (s *AttendanceServiceTestSuite) TestCheckInExplicitTimestamp() {
	// The clock is not consulted when the caller supplies a timestamp
	at := time.Date(2025, 6, 2, 19, 30, 0, 0, time.UTC)

	s.mockUUID.EXPECT().NewUUID().Return("test-checkin-id")
	s.mockRepo.EXPECT().HasCheckIn(s.ctx, gomock.Any()).
		Return(&attendanceRepo.HasCheckInOutput{Exists: false}, nil)
	s.mockRepo.EXPECT().AddCheckIn(s.ctx, gomock.Any()).Return(nil)

	output, err := s.service.CheckIn(s.ctx, &CheckInInput{
		GuildID:  s.testGuildID,
		MemberID: s.testMember,
		Eligible: true,
		At:       at,
	})
	s.Require().NoError(err)
	s.Equal(models.SessionEvening, output.Session)
	s.Equal("19:30", output.Record.DisplayTime)
}

func (s *AttendanceServiceTestSuite) TestCheckInPersistFailure() {
	// No success may be reported on unpersisted state
	persistErr := errors.New("redis: connection refused")

	s.mockClock.EXPECT().Now().Return(s.testNoon)
	s.mockUUID.EXPECT().NewUUID().Return("test-checkin-id")
	s.mockRepo.EXPECT().HasCheckIn(s.ctx, gomock.Any()).
		Return(&attendanceRepo.HasCheckInOutput{Exists: false}, nil)
	s.mockRepo.EXPECT().AddCheckIn(s.ctx, gomock.Any()).Return(persistErr)

	output, err := s.service.CheckIn(s.ctx, &CheckInInput{
		GuildID:  s.testGuildID,
		MemberID: s.testMember,
		Eligible: true,
	})
	s.Nil(output)
	s.ErrorIs(err, persistErr)
}

func (s *AttendanceServiceTestSuite) TestGetDaySheetDefaultsToToday() {
	s.mockClock.EXPECT().Now().Return(s.testNoon)

	expected := models.NewDaySessions("2025-06-02")
	s.mockRepo.EXPECT().GetDay(s.ctx, &attendanceRepo.GetDayInput{
		GuildID: s.testGuildID,
		Date:    "2025-06-02",
	}).Return(&attendanceRepo.GetDayOutput{Day: expected}, nil)

	output, err := s.service.GetDaySheet(s.ctx, &GetDaySheetInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Equal(expected, output.Day)
}

func (s *AttendanceServiceTestSuite) TestRollDay() {
	day := models.NewDaySessions("2025-06-01")

	s.mockRepo.EXPECT().MarkDayRolled(s.ctx, &attendanceRepo.MarkDayRolledInput{
		GuildID: s.testGuildID,
		Date:    "2025-06-01",
	}).Return(&attendanceRepo.MarkDayRolledOutput{AlreadyRolled: false}, nil)
	s.mockRepo.EXPECT().GetDay(s.ctx, gomock.Any()).
		Return(&attendanceRepo.GetDayOutput{Day: day}, nil)

	output, err := s.service.RollDay(s.ctx, &RollDayInput{
		GuildID: s.testGuildID,
		Date:    "2025-06-01",
	})
	s.Require().NoError(err)
	s.False(output.AlreadyRolled)
	s.Equal(day, output.Day)
}

func (s *AttendanceServiceTestSuite) TestRollDayAlreadyRolled() {
	s.mockRepo.EXPECT().MarkDayRolled(s.ctx, gomock.Any()).
		Return(&attendanceRepo.MarkDayRolledOutput{AlreadyRolled: true}, nil)
	s.mockRepo.EXPECT().GetDay(s.ctx, gomock.Any()).
		Return(&attendanceRepo.GetDayOutput{Day: models.NewDaySessions("2025-06-01")}, nil)

	output, err := s.service.RollDay(s.ctx, &RollDayInput{
		GuildID: s.testGuildID,
		Date:    "2025-06-01",
	})
	s.Require().NoError(err)
	s.True(output.AlreadyRolled)
}

func (s *AttendanceServiceTestSuite) weekOfCheckIns() *attendanceRepo.GetDateRangeOutput {
	day1 := models.NewDaySessions("2025-06-02")
	day1.Sessions[models.SessionNoon] = []*models.CheckIn{
		{ID: "c1", MemberID: "member-a", Session: models.SessionNoon, Date: "2025-06-02"},
		{ID: "c2", MemberID: "member-b", Session: models.SessionNoon, Date: "2025-06-02"},
	}
	day1.Sessions[models.SessionEvening] = []*models.CheckIn{
		{ID: "c3", MemberID: "member-a", Session: models.SessionEvening, Date: "2025-06-02"},
	}

	day2 := models.NewDaySessions("2025-06-04")
	day2.Sessions[models.SessionNoon] = []*models.CheckIn{
		{ID: "c4", MemberID: "member-a", Session: models.SessionNoon, Date: "2025-06-04"},
		{ID: "c5", MemberID: "member-c", Session: models.SessionNoon, Date: "2025-06-04"},
	}

	return &attendanceRepo.GetDateRangeOutput{Days: []*models.DaySessions{day1, day2}}
}

func (s *AttendanceServiceTestSuite) TestAggregateWeek() {
	s.mockRepo.EXPECT().GetDateRange(s.ctx, &attendanceRepo.GetDateRangeInput{
		GuildID:   s.testGuildID,
		StartDate: "2025-06-02",
		EndDate:   "2025-06-08",
	}).Return(s.weekOfCheckIns(), nil)

	output, err := s.service.AggregateWeek(s.ctx, &AggregateWeekInput{
		GuildID:   s.testGuildID,
		WeekStart: "2025-06-02",
		WeekEnd:   "2025-06-08",
	})
	s.Require().NoError(err)

	s.Equal(models.WeeklyAggregate{
		"member-a": 3,
		"member-b": 1,
		"member-c": 1,
	}, output.Aggregate)

	// The per-member counts sum to the total records counted
	s.Equal(5, output.TotalCheckIns)
	s.Equal(output.TotalCheckIns, output.Aggregate.TotalSessions())
}

func (s *AttendanceServiceTestSuite) TestAggregateWeekEligibleFilter() {
	s.mockRepo.EXPECT().GetDateRange(s.ctx, gomock.Any()).Return(s.weekOfCheckIns(), nil)

	output, err := s.service.AggregateWeek(s.ctx, &AggregateWeekInput{
		GuildID:           s.testGuildID,
		WeekStart:         "2025-06-02",
		WeekEnd:           "2025-06-08",
		EligibleMemberIDs: []string{"member-a", "member-d"},
	})
	s.Require().NoError(err)

	// Outsiders are excluded entirely; eligible members with no
	// check-ins are not zero-filled
	s.Equal(models.WeeklyAggregate{"member-a": 3}, output.Aggregate)
	s.Equal(3, output.TotalCheckIns)
}

func (s *AttendanceServiceTestSuite) TestAggregateWeekInvalidRange() {
	_, err := s.service.AggregateWeek(s.ctx, &AggregateWeekInput{
		GuildID:   s.testGuildID,
		WeekStart: "2025-06-08",
		WeekEnd:   "2025-06-02",
	})
	s.ErrorIs(err, ErrInvalidDateRange)
}

func (s *AttendanceServiceTestSuite) TestPurgeBefore() {
	s.mockRepo.EXPECT().PurgeDaysBefore(s.ctx, &attendanceRepo.PurgeDaysBeforeInput{
		GuildID:    s.testGuildID,
		CutoffDate: "2025-06-09",
	}).Return(&attendanceRepo.PurgeDaysBeforeOutput{DaysPurged: 7}, nil)

	output, err := s.service.PurgeBefore(s.ctx, &PurgeBeforeInput{
		GuildID:    s.testGuildID,
		CutoffDate: "2025-06-09",
	})
	s.Require().NoError(err)
	s.Equal(7, output.DaysPurged)
}
