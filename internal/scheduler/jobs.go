package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/lamdn/attendbot/internal/models"
	"github.com/lamdn/attendbot/internal/quota"
	"github.com/lamdn/attendbot/internal/repositories/guildconfig"
	"github.com/lamdn/attendbot/internal/services/attendance"
	"github.com/lamdn/attendbot/internal/sessions"
)

// Notifier receives the outbound events the jobs emit. Implementations
// render them to the guild (and, for SanctionDecided, apply the role
// change). Notifier failures are logged by the jobs and never prevent
// the ledger bookkeeping from completing.
type Notifier interface {
	// SessionOpened announces that a check-in window just opened
	SessionOpened(ctx context.Context, guildID string, session models.Session) error

	// DayRolled delivers a closed day's sheet to the guild's history channel
	DayRolled(ctx context.Context, guildID string, day *models.DaySessions) error

	// WeeklySummaryReady delivers the week's aggregate and the under-quota set
	WeeklySummaryReady(ctx context.Context, guildID, weekStart, weekEnd string, aggregate, underQuota models.WeeklyAggregate, threshold int) error

	// SanctionDecided announces and applies one member's sanction decision
	SanctionDecided(ctx context.Context, guildID, memberID string, count int, action quota.Action) error
}

// RoleDirectory exposes the role lookups the weekly job needs. The jobs
// only read through it; role mutation happens behind SanctionDecided.
type RoleDirectory interface {
	// MembersWithRole lists the members carrying a role
	MembersWithRole(ctx context.Context, guildID, roleID string) ([]string, error)

	// HasRole reports whether a member carries a role
	HasRole(ctx context.Context, guildID, memberID, roleID string) (bool, error)
}

// JobsConfig holds the dependencies for the scheduled jobs
type JobsConfig struct {
	Attendance attendance.Service
	Configs    guildconfig.Repository
	Policy     *sessions.Policy
	Quota      *quota.Evaluator
	Notifier   Notifier
	Roles      RoleDirectory
}

// Jobs builds the bot's three scheduled jobs over the attendance ledger
type Jobs struct {
	attendance attendance.Service
	configs    guildconfig.Repository
	policy     *sessions.Policy
	quota      *quota.Evaluator
	notifier   Notifier
	roles      RoleDirectory
}

// NewJobs creates the scheduled job set
func NewJobs(cfg *JobsConfig) (*Jobs, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Attendance == nil {
		return nil, errors.New("attendance service cannot be nil")
	}

	if cfg.Configs == nil {
		return nil, errors.New("guild config repository cannot be nil")
	}

	if cfg.Policy == nil {
		return nil, errors.New("session policy cannot be nil")
	}

	if cfg.Quota == nil {
		return nil, errors.New("quota evaluator cannot be nil")
	}

	if cfg.Notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}

	if cfg.Roles == nil {
		return nil, errors.New("role directory cannot be nil")
	}

	return &Jobs{
		attendance: cfg.Attendance,
		configs:    cfg.Configs,
		policy:     cfg.Policy,
		quota:      cfg.Quota,
		notifier:   cfg.Notifier,
		roles:      cfg.Roles,
	}, nil
}

// guilds returns every guild with attendance state or stored settings
func (j *Jobs) guilds(ctx context.Context) []string {
	seen := make(map[string]struct{})

	if output, err := j.attendance.ListGuilds(ctx); err != nil {
		log.Printf("scheduler: failed to list attendance guilds: %v", err)
	} else {
		for _, id := range output.GuildIDs {
			seen[id] = struct{}{}
		}
	}

	if output, err := j.configs.ListGuilds(ctx); err != nil {
		log.Printf("scheduler: failed to list configured guilds: %v", err)
	} else {
		for _, id := range output.GuildIDs {
			seen[id] = struct{}{}
		}
	}

	guildIDs := make([]string, 0, len(seen))
	for id := range seen {
		guildIDs = append(guildIDs, id)
	}
	sort.Strings(guildIDs)
	return guildIDs
}

// SessionOpenJob announces each session window as it opens
func (j *Jobs) SessionOpenJob() *Job {
	return &Job{
		Name: "session_open",
		Trigger: func(now time.Time) (string, bool) {
			hhmm := now.Format("15:04")
			if _, ok := j.policy.OpeningTimes()[hhmm]; !ok {
				return "", false
			}
			return fmt.Sprintf("%s %s", models.DateKey(now), hhmm), true
		},
		Run: func(ctx context.Context, now time.Time) error {
			session, ok := j.policy.OpeningTimes()[now.Format("15:04")]
			if !ok {
				return nil
			}

			for _, guildID := range j.guilds(ctx) {
				if err := j.notifier.SessionOpened(ctx, guildID, session); err != nil {
					log.Printf("scheduler: session open notice failed for guild %s: %v", guildID, err)
				}
			}
			return nil
		},
	}
}

// DayRollJob closes out the finished day at midnight and posts its sheet
// to each guild's history channel
func (j *Jobs) DayRollJob() *Job {
	return &Job{
		Name: "day_roll",
		Trigger: func(now time.Time) (string, bool) {
			if now.Format("15:04") != "00:00" {
				return "", false
			}
			return models.DateKey(now), true
		},
		Run: func(ctx context.Context, now time.Time) error {
			j.RunDayRoll(ctx, now)
			return nil
		},
	}
}

// RunDayRoll rolls yesterday for every guild. Notification failures are
// logged; the roll itself always completes.
func (j *Jobs) RunDayRoll(ctx context.Context, now time.Time) {
	yesterday := models.DateKey(now.AddDate(0, 0, -1))

	for _, guildID := range j.guilds(ctx) {
		output, err := j.attendance.RollDay(ctx, &attendance.RollDayInput{
			GuildID: guildID,
			Date:    yesterday,
		})
		if err != nil {
			log.Printf("scheduler: day roll failed for guild %s: %v", guildID, err)
			continue
		}

		if output.AlreadyRolled {
			continue
		}

		if err := j.notifier.DayRolled(ctx, guildID, output.Day); err != nil {
			log.Printf("scheduler: history post failed for guild %s: %v", guildID, err)
		}
	}
}

// WeeklySummaryJob summarizes the finished Monday-to-Sunday week shortly
// after it ends, flags under-quota members, then purges the summarized days
func (j *Jobs) WeeklySummaryJob() *Job {
	return &Job{
		Name: "weekly_summary",
		Trigger: func(now time.Time) (string, bool) {
			if now.Weekday() != time.Monday || now.Format("15:04") != "00:05" {
				return "", false
			}
			year, week := now.ISOWeek()
			return fmt.Sprintf("%04d-W%02d", year, week), true
		},
		Run: func(ctx context.Context, now time.Time) error {
			j.RunWeeklySummary(ctx, now, true)
			return nil
		},
	}
}

// weekBounds returns the Monday and Sunday of the Monday-start week
// containing ref
func weekBounds(ref time.Time) (time.Time, time.Time) {
	offset := (int(ref.Weekday()) + 6) % 7
	monday := ref.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// RunWeeklySummary aggregates the week containing yesterday, emits the
// summary and sanction decisions, and (when purge is set) deletes the
// summarized days. The scheduled Monday run summarizes the week that just
// ended; manual runs mid-week summarize the week so far without purging.
// Side-effect failures are logged and never block the purge bookkeeping.
func (j *Jobs) RunWeeklySummary(ctx context.Context, now time.Time, purge bool) {
	weekStartT, weekEndT := weekBounds(now.AddDate(0, 0, -1))
	weekStart := models.DateKey(weekStartT)
	weekEnd := models.DateKey(weekEndT)
	cutoff := models.DateKey(weekStartT.AddDate(0, 0, 7))

	for _, guildID := range j.guilds(ctx) {
		configOutput, err := j.configs.Get(ctx, &guildconfig.GetInput{GuildID: guildID})
		if err != nil {
			log.Printf("scheduler: failed to load config for guild %s: %v", guildID, err)
			continue
		}
		config := configOutput.Config

		// With a gate role configured the roster is its members; the
		// aggregate and the quota check both restrict to it
		var roster []string
		if config.EligibleRoleID != "" {
			roster, err = j.roles.MembersWithRole(ctx, guildID, config.EligibleRoleID)
			if err != nil {
				log.Printf("scheduler: roster lookup failed for guild %s: %v", guildID, err)
				roster = nil
			}
		}

		aggregate, err := j.attendance.AggregateWeek(ctx, &attendance.AggregateWeekInput{
			GuildID:           guildID,
			WeekStart:         weekStart,
			WeekEnd:           weekEnd,
			EligibleMemberIDs: roster,
		})
		if err != nil {
			log.Printf("scheduler: weekly aggregate failed for guild %s: %v", guildID, err)
			continue
		}

		threshold := config.Threshold()
		under := j.quota.Evaluate(aggregate.Aggregate, roster, threshold)

		if err := j.notifier.WeeklySummaryReady(ctx, guildID, weekStart, weekEnd, aggregate.Aggregate, under, threshold); err != nil {
			log.Printf("scheduler: weekly summary post failed for guild %s: %v", guildID, err)
		}

		for _, memberID := range sortedMembers(under) {
			already := false
			if config.SanctionPrimaryRoleID != "" {
				already, err = j.roles.HasRole(ctx, guildID, memberID, config.SanctionPrimaryRoleID)
				if err != nil {
					log.Printf("scheduler: sanction lookup failed for member %s in guild %s: %v", memberID, guildID, err)
					continue
				}
			}

			action := j.quota.SanctionAction(already)
			if err := j.notifier.SanctionDecided(ctx, guildID, memberID, under[memberID], action); err != nil {
				log.Printf("scheduler: sanction failed for member %s in guild %s: %v", memberID, guildID, err)
			}
		}

		if !purge {
			continue
		}

		purged, err := j.attendance.PurgeBefore(ctx, &attendance.PurgeBeforeInput{
			GuildID:    guildID,
			CutoffDate: cutoff,
		})
		if err != nil {
			log.Printf("scheduler: weekly purge failed for guild %s: %v", guildID, err)
			continue
		}

		log.Printf("scheduler: purged %d days before %s for guild %s", purged.DaysPurged, cutoff, guildID)
	}
}

func sortedMembers(aggregate models.WeeklyAggregate) []string {
	memberIDs := make([]string, 0, len(aggregate))
	for id := range aggregate {
		memberIDs = append(memberIDs, id)
	}
	sort.Strings(memberIDs)
	return memberIDs
}
