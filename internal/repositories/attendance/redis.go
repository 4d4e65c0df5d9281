package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/lamdn/attendbot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	checkInKeyPrefix    = "checkin:"
	dayCheckInsPrefix   = "day_checkins:"
	dayMembersPrefix    = "day_members:"
	guildDatesPrefix    = "guild_dates:"
	rolledDaysPrefix    = "rolled_days:"
	attendanceGuildsKey = "attendance_guilds"
)

// ErrCheckInNotFound is returned when a check-in record is not found
var ErrCheckInNotFound = errors.New("check-in record not found")

// Config holds configuration for the Redis attendance repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed attendance repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func dayCheckInsKey(guildID, date string, session models.Session) string {
	return fmt.Sprintf("%s%s:%s:%s", dayCheckInsPrefix, guildID, date, session)
}

func dayMembersKey(guildID, date string, session models.Session) string {
	return fmt.Sprintf("%s%s:%s:%s", dayMembersPrefix, guildID, date, session)
}

// AddCheckIn durably stores a check-in record and indexes it for day,
// member and date lookups in a single pipeline
func (r *redisRepository) AddCheckIn(ctx context.Context, input *AddCheckInInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record

	if record.ID == "" {
		return errors.New("check-in record ID cannot be empty")
	}

	if record.GuildID == "" || record.MemberID == "" || record.Date == "" || record.Session == "" {
		return errors.New("check-in record guild, member, date and session cannot be empty")
	}

	// Marshal the record to JSON
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal check-in record: %w", err)
	}

	pipe := r.client.Pipeline()

	// Store the check-in record
	pipe.Set(ctx, checkInKeyPrefix+record.ID, recordJSON, 0)

	// Add to the day's sorted set, scored by check-in time so the board
	// numbering follows check-in order
	pipe.ZAdd(ctx, dayCheckInsKey(record.GuildID, record.Date, record.Session), redis.Z{
		Score:  float64(record.Timestamp.Unix()),
		Member: record.ID,
	})

	// Track the member for duplicate detection
	pipe.SAdd(ctx, dayMembersKey(record.GuildID, record.Date, record.Session), record.MemberID)

	// Index the date and the guild
	pipe.SAdd(ctx, guildDatesPrefix+record.GuildID, record.Date)
	pipe.SAdd(ctx, attendanceGuildsKey, record.GuildID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add check-in record: %w", err)
	}

	return nil
}

// HasCheckIn reports whether a member already checked in for a (guild, date, session)
func (r *redisRepository) HasCheckIn(ctx context.Context, input *HasCheckInInput) (*HasCheckInOutput, error) {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return nil, errors.New("input, guild ID and member ID cannot be empty")
	}

	exists, err := r.client.SIsMember(ctx, dayMembersKey(input.GuildID, input.Date, input.Session), input.MemberID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing check-in: %w", err)
	}

	return &HasCheckInOutput{Exists: exists}, nil
}

// GetDay retrieves one day's check-ins grouped by session
func (r *redisRepository) GetDay(ctx context.Context, input *GetDayInput) (*GetDayOutput, error) {
	if input == nil || input.GuildID == "" || input.Date == "" {
		return nil, errors.New("input, guild ID and date cannot be empty")
	}

	day, err := r.getDay(ctx, input.GuildID, input.Date)
	if err != nil {
		return nil, err
	}

	return &GetDayOutput{Day: day}, nil
}

func (r *redisRepository) getDay(ctx context.Context, guildID, date string) (*models.DaySessions, error) {
	day := models.NewDaySessions(date)

	for _, session := range models.AllSessions() {
		ids, err := r.client.ZRange(ctx, dayCheckInsKey(guildID, date, session), 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get check-in IDs for %s %s: %w", date, session, err)
		}

		if len(ids) == 0 {
			continue
		}

		// Fetch all records for the session in one pipeline
		pipe := r.client.Pipeline()
		commands := make([]*redis.StringCmd, len(ids))
		for i, id := range ids {
			commands[i] = pipe.Get(ctx, checkInKeyPrefix+id)
		}

		if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
			return nil, fmt.Errorf("failed to get check-in records: %w", err)
		}

		records := make([]*models.CheckIn, 0, len(ids))
		for _, cmd := range commands {
			recordJSON, err := cmd.Result()
			if err != nil {
				if err == redis.Nil {
					// Record deleted between the index read and the fetch
					continue
				}
				return nil, fmt.Errorf("failed to get check-in record: %w", err)
			}

			var record models.CheckIn
			if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
				// A corrupt record should not take the whole day down
				continue
			}

			records = append(records, &record)
		}

		day.Sessions[session] = records
	}

	return day, nil
}

// GetDateRange retrieves the day sheets recorded in an inclusive date range
func (r *redisRepository) GetDateRange(ctx context.Context, input *GetDateRangeInput) (*GetDateRangeOutput, error) {
	if input == nil || input.GuildID == "" || input.StartDate == "" || input.EndDate == "" {
		return nil, errors.New("input, guild ID and date range cannot be empty")
	}

	dates, err := r.guildDates(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	days := make([]*models.DaySessions, 0, len(dates))
	for _, date := range dates {
		// ISO dates compare chronologically as strings
		if date < input.StartDate || date > input.EndDate {
			continue
		}

		day, err := r.getDay(ctx, input.GuildID, date)
		if err != nil {
			return nil, err
		}

		days = append(days, day)
	}

	return &GetDateRangeOutput{Days: days}, nil
}

func (r *redisRepository) guildDates(ctx context.Context, guildID string) ([]string, error) {
	dates, err := r.client.SMembers(ctx, guildDatesPrefix+guildID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get dates for guild: %w", err)
	}

	sort.Strings(dates)
	return dates, nil
}

// MarkDayRolled records that a day has been closed out
func (r *redisRepository) MarkDayRolled(ctx context.Context, input *MarkDayRolledInput) (*MarkDayRolledOutput, error) {
	if input == nil || input.GuildID == "" || input.Date == "" {
		return nil, errors.New("input, guild ID and date cannot be empty")
	}

	added, err := r.client.SAdd(ctx, rolledDaysPrefix+input.GuildID, input.Date).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to mark day rolled: %w", err)
	}

	return &MarkDayRolledOutput{AlreadyRolled: added == 0}, nil
}

// PurgeDaysBefore deletes all day-log entries strictly before a cutoff date
func (r *redisRepository) PurgeDaysBefore(ctx context.Context, input *PurgeDaysBeforeInput) (*PurgeDaysBeforeOutput, error) {
	if input == nil || input.GuildID == "" || input.CutoffDate == "" {
		return nil, errors.New("input, guild ID and cutoff date cannot be empty")
	}

	dates, err := r.guildDates(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	purged := 0
	for _, date := range dates {
		if date >= input.CutoffDate {
			continue
		}

		pipe := r.client.Pipeline()

		for _, session := range models.AllSessions() {
			ids, err := r.client.ZRange(ctx, dayCheckInsKey(input.GuildID, date, session), 0, -1).Result()
			if err != nil {
				return nil, fmt.Errorf("failed to get check-in IDs for purge: %w", err)
			}

			for _, id := range ids {
				pipe.Del(ctx, checkInKeyPrefix+id)
			}

			pipe.Del(ctx, dayCheckInsKey(input.GuildID, date, session))
			pipe.Del(ctx, dayMembersKey(input.GuildID, date, session))
		}

		pipe.SRem(ctx, guildDatesPrefix+input.GuildID, date)
		pipe.SRem(ctx, rolledDaysPrefix+input.GuildID, date)

		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to purge day %s: %w", date, err)
		}

		purged++
	}

	return &PurgeDaysBeforeOutput{DaysPurged: purged}, nil
}

// ListGuilds returns the guilds with any recorded attendance state
func (r *redisRepository) ListGuilds(ctx context.Context) (*ListGuildsOutput, error) {
	guildIDs, err := r.client.SMembers(ctx, attendanceGuildsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}

	sort.Strings(guildIDs)
	return &ListGuildsOutput{GuildIDs: guildIDs}, nil
}
