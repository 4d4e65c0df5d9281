package guildconfig

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
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	config := &models.GuildConfig{
		GuildID:                 "guild-1",
		BoardChannelID:          "channel-board",
		HistoryChannelID:        "channel-history",
		SummaryChannelID:        "channel-summary",
		EligibleRoleID:          "role-member",
		SanctionPrimaryRoleID:   "role-warned",
		SanctionSecondaryRoleID: "role-benched",
		QuotaThreshold:          3,
		UpdatedAt:               time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}

	err := s.repo.Save(context.Background(), &SaveInput{Config: config})
	s.Require().NoError(err)

	output, err := s.repo.Get(context.Background(), &GetInput{GuildID: "guild-1"})
	s.Require().NoError(err)

	s.Equal(config.GuildID, output.Config.GuildID)
	s.Equal(config.HistoryChannelID, output.Config.HistoryChannelID)
	s.Equal(config.EligibleRoleID, output.Config.EligibleRoleID)
	s.Equal(3, output.Config.Threshold())
}

func (s *RedisRepositoryTestSuite) TestGetUnconfiguredGuild() {
	output, err := s.repo.Get(context.Background(), &GetInput{GuildID: "guild-1"})
	s.Require().NoError(err)

	s.Require().NotNil(output.Config)
	s.Equal("guild-1", output.Config.GuildID)
	s.Empty(output.Config.HistoryChannelID)
	s.Equal(models.DefaultQuotaThreshold, output.Config.Threshold())
}

func (s *RedisRepositoryTestSuite) TestGetMalformedConfig() {
	s.Require().NoError(s.mr.Set("guild_config:guild-1", "{not json"))

	output, err := s.repo.Get(context.Background(), &GetInput{GuildID: "guild-1"})
	s.Require().NoError(err)

	// Falls back to defaults instead of failing
	s.Equal("guild-1", output.Config.GuildID)
	s.Equal(models.DefaultQuotaThreshold, output.Config.Threshold())
}

func (s *RedisRepositoryTestSuite) TestListGuilds() {
	output, err := s.repo.ListGuilds(context.Background())
	s.Require().NoError(err)
	s.Empty(output.GuildIDs)

	for _, guildID := range []string{"guild-b", "guild-a"} {
		err := s.repo.Save(context.Background(), &SaveInput{
			Config: &models.GuildConfig{GuildID: guildID},
		})
		s.Require().NoError(err)
	}

	output, err = s.repo.ListGuilds(context.Background())
	s.Require().NoError(err)
	s.Equal([]string{"guild-a", "guild-b"}, output.GuildIDs)
}
