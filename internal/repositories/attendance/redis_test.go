package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lamdn/attendbot/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 6, 2, 12, 5, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) addCheckIn(id, guildID, memberID, date string, session models.Session, at time.Time) {
	err := s.repo.AddCheckIn(context.Background(), &AddCheckInInput{
		Record: &models.CheckIn{
			ID:          id,
			GuildID:     guildID,
			MemberID:    memberID,
			Session:     session,
			Date:        date,
			Timestamp:   at,
			DisplayTime: at.Format("15:04"),
		},
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestAddAndGetDay() {
	s.addCheckIn("checkin-1", "guild-1", "member-1", "2025-06-02", models.SessionNoon, s.testNow)
	s.addCheckIn("checkin-2", "guild-1", "member-2", "2025-06-02", models.SessionNoon, s.testNow.Add(time.Minute))

	output, err := s.repo.GetDay(context.Background(), &GetDayInput{
		GuildID: "guild-1",
		Date:    "2025-06-02",
	})
	s.Require().NoError(err)

	noon := output.Day.Sessions[models.SessionNoon]
	s.Require().Len(noon, 2)

	// Insertion order is preserved for board numbering
	s.Equal("member-1", noon[0].MemberID)
	s.Equal("member-2", noon[1].MemberID)
	s.Equal("12:05", noon[0].DisplayTime)

	// The evening session is present but empty, never nil
	s.Require().NotNil(output.Day.Sessions[models.SessionEvening])
	s.Empty(output.Day.Sessions[models.SessionEvening])
}

func (s *RedisRepositoryTestSuite) TestGetDayEmpty() {
	output, err := s.repo.GetDay(context.Background(), &GetDayInput{
		GuildID: "guild-1",
		Date:    "2025-06-02",
	})
	s.Require().NoError(err)

	s.Equal("2025-06-02", output.Day.Date)
	for _, session := range models.AllSessions() {
		s.Require().NotNil(output.Day.Sessions[session])
		s.Empty(output.Day.Sessions[session])
	}
}

func (s *RedisRepositoryTestSuite) TestHasCheckIn() {
	s.addCheckIn("checkin-1", "guild-1", "member-1", "2025-06-02", models.SessionNoon, s.testNow)

	output, err := s.repo.HasCheckIn(context.Background(), &HasCheckInInput{
		GuildID:  "guild-1",
		Date:     "2025-06-02",
		Session:  models.SessionNoon,
		MemberID: "member-1",
	})
	s.Require().NoError(err)
	s.True(output.Exists)

	// Same member, other session
	output, err = s.repo.HasCheckIn(context.Background(), &HasCheckInInput{
		GuildID:  "guild-1",
		Date:     "2025-06-02",
		Session:  models.SessionEvening,
		MemberID: "member-1",
	})
	s.Require().NoError(err)
	s.False(output.Exists)

	// Other member, same session
	output, err = s.repo.HasCheckIn(context.Background(), &HasCheckInInput{
		GuildID:  "guild-1",
		Date:     "2025-06-02",
		Session:  models.SessionNoon,
		MemberID: "member-2",
	})
	s.Require().NoError(err)
	s.False(output.Exists)
}

func (s *RedisRepositoryTestSuite) TestGetDateRange() {
	s.addCheckIn("checkin-1", "guild-1", "member-1", "2025-06-02", models.SessionNoon, s.testNow)
	s.addCheckIn("checkin-2", "guild-1", "member-1", "2025-06-03", models.SessionEvening, s.testNow.AddDate(0, 0, 1))
	s.addCheckIn("checkin-3", "guild-1", "member-2", "2025-06-08", models.SessionNoon, s.testNow.AddDate(0, 0, 6))

	output, err := s.repo.GetDateRange(context.Background(), &GetDateRangeInput{
		GuildID:   "guild-1",
		StartDate: "2025-06-02",
		EndDate:   "2025-06-07",
	})
	s.Require().NoError(err)

	s.Require().Len(output.Days, 2)
	s.Equal("2025-06-02", output.Days[0].Date)
	s.Equal("2025-06-03", output.Days[1].Date)
}

func (s *RedisRepositoryTestSuite) TestMarkDayRolled() {
	output, err := s.repo.MarkDayRolled(context.Background(), &MarkDayRolledInput{
		GuildID: "guild-1",
		Date:    "2025-06-02",
	})
	s.Require().NoError(err)
	s.False(output.AlreadyRolled)

	output, err = s.repo.MarkDayRolled(context.Background(), &MarkDayRolledInput{
		GuildID: "guild-1",
		Date:    "2025-06-02",
	})
	s.Require().NoError(err)
	s.True(output.AlreadyRolled)
}

func (s *RedisRepositoryTestSuite) TestPurgeDaysBefore() {
	s.addCheckIn("checkin-1", "guild-1", "member-1", "2025-06-02", models.SessionNoon, s.testNow)
	s.addCheckIn("checkin-2", "guild-1", "member-1", "2025-06-08", models.SessionNoon, s.testNow.AddDate(0, 0, 6))
	s.addCheckIn("checkin-3", "guild-1", "member-2", "2025-06-09", models.SessionEvening, s.testNow.AddDate(0, 0, 7))

	output, err := s.repo.PurgeDaysBefore(context.Background(), &PurgeDaysBeforeInput{
		GuildID:    "guild-1",
		CutoffDate: "2025-06-09",
	})
	s.Require().NoError(err)
	s.Equal(2, output.DaysPurged)

	// Days before the cutoff are gone
	day, err := s.repo.GetDay(context.Background(), &GetDayInput{GuildID: "guild-1", Date: "2025-06-02"})
	s.Require().NoError(err)
	s.Equal(0, day.Day.Total())

	// The cutoff day itself is retained
	day, err = s.repo.GetDay(context.Background(), &GetDayInput{GuildID: "guild-1", Date: "2025-06-09"})
	s.Require().NoError(err)
	s.Equal(1, day.Day.Total())

	// The record keys themselves are deleted, not just the indexes
	s.False(s.mr.Exists("checkin:checkin-1"))
	s.True(s.mr.Exists("checkin:checkin-3"))

	// Purged members may check in again on a fresh day
	has, err := s.repo.HasCheckIn(context.Background(), &HasCheckInInput{
		GuildID:  "guild-1",
		Date:     "2025-06-02",
		Session:  models.SessionNoon,
		MemberID: "member-1",
	})
	s.Require().NoError(err)
	s.False(has.Exists)
}

func (s *RedisRepositoryTestSuite) TestListGuilds() {
	output, err := s.repo.ListGuilds(context.Background())
	s.Require().NoError(err)
	s.Empty(output.GuildIDs)

	s.addCheckIn("checkin-1", "guild-b", "member-1", "2025-06-02", models.SessionNoon, s.testNow)
	s.addCheckIn("checkin-2", "guild-a", "member-1", "2025-06-02", models.SessionNoon, s.testNow)

	output, err = s.repo.ListGuilds(context.Background())
	s.Require().NoError(err)
	s.Equal([]string{"guild-a", "guild-b"}, output.GuildIDs)
}
