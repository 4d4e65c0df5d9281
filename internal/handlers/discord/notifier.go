package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/lamdn/attendbot/internal/models"
	"github.com/lamdn/attendbot/internal/quota"
	"github.com/lamdn/attendbot/internal/repositories/guildconfig"
	"github.com/lamdn/attendbot/internal/services/attendance"
)

// The scheduler's outbound events land here. The bot renders them into the
// guild's configured channels and, for sanctions, applies the role change.

func (b *Bot) guildConfig(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	output, err := b.configs.Get(ctx, &guildconfig.GetInput{GuildID: guildID})
	if err != nil {
		return nil, fmt.Errorf("failed to load config for guild %s: %w", guildID, err)
	}
	return output.Config, nil
}

// SessionOpened posts a fresh board with the check-in button to the guild's
// board channel
func (b *Bot) SessionOpened(ctx context.Context, guildID string, session models.Session) error {
	config, err := b.guildConfig(ctx, guildID)
	if err != nil {
		return err
	}

	if config.BoardChannelID == "" {
		return ErrBoardChannelNotConfigured
	}

	sheet, err := b.attendance.GetDaySheet(ctx, &attendance.GetDaySheetInput{GuildID: guildID})
	if err != nil {
		return fmt.Errorf("failed to load day sheet for guild %s: %w", guildID, err)
	}

	content := fmt.Sprintf("The %s check-in window is open!", sessionLabel(session))
	if window, ok := b.policy.Window(session); ok {
		content = fmt.Sprintf("The %s check-in window is open until %s!", sessionLabel(session), window.Close)
	}

	_, err = b.session.ChannelMessageSendComplex(config.BoardChannelID, &discordgo.MessageSend{
		Content:    content,
		Embeds:     []*discordgo.MessageEmbed{buildBoardEmbed(sheet.Day, b.policy.Windows())},
		Components: buildCheckInComponents(),
	})
	if err != nil {
		return fmt.Errorf("failed to post board for guild %s: %w", guildID, err)
	}

	return nil
}

// DayRolled posts a closed day's sheet to the guild's history channel
func (b *Bot) DayRolled(ctx context.Context, guildID string, day *models.DaySessions) error {
	config, err := b.guildConfig(ctx, guildID)
	if err != nil {
		return err
	}

	if config.HistoryChannelID == "" {
		return ErrHistoryChannelNotConfigured
	}

	embed := buildBoardEmbed(day, b.policy.Windows())
	embed.Title = "Attendance record"

	_, err = b.session.ChannelMessageSendEmbed(config.HistoryChannelID, embed)
	if err != nil {
		return fmt.Errorf("failed to post history for guild %s: %w", guildID, err)
	}

	return nil
}

// WeeklySummaryReady posts the week's totals and under-quota list to the
// guild's summary channel
func (b *Bot) WeeklySummaryReady(ctx context.Context, guildID, weekStart, weekEnd string, aggregate, underQuota models.WeeklyAggregate, threshold int) error {
	config, err := b.guildConfig(ctx, guildID)
	if err != nil {
		return err
	}

	if config.SummaryChannelID == "" {
		return ErrSummaryChannelNotConfigured
	}

	embed := buildSummaryEmbed(weekStart, weekEnd, aggregate, underQuota, threshold)

	_, err = b.session.ChannelMessageSendEmbed(config.SummaryChannelID, embed)
	if err != nil {
		return fmt.Errorf("failed to post weekly summary for guild %s: %w", guildID, err)
	}

	return nil
}

// SanctionDecided applies one member's sanction role change and announces it.
// Promote adds the primary role; escalate adds the secondary and removes the
// primary. The announcement is best effort once the roles have changed.
func (b *Bot) SanctionDecided(ctx context.Context, guildID, memberID string, count int, action quota.Action) error {
	config, err := b.guildConfig(ctx, guildID)
	if err != nil {
		return err
	}

	if config.SanctionPrimaryRoleID == "" || config.SanctionSecondaryRoleID == "" {
		return ErrSanctionRolesNotConfigured
	}

	switch action {
	case quota.ActionEscalate:
		if err := b.session.GuildMemberRoleAdd(guildID, memberID, config.SanctionSecondaryRoleID); err != nil {
			return fmt.Errorf("failed to add secondary sanction role to member %s: %w", memberID, err)
		}
		if err := b.session.GuildMemberRoleRemove(guildID, memberID, config.SanctionPrimaryRoleID); err != nil {
			return fmt.Errorf("failed to remove primary sanction role from member %s: %w", memberID, err)
		}
	default:
		if err := b.session.GuildMemberRoleAdd(guildID, memberID, config.SanctionPrimaryRoleID); err != nil {
			return fmt.Errorf("failed to add primary sanction role to member %s: %w", memberID, err)
		}
	}

	if config.SummaryChannelID == "" {
		return nil
	}

	if _, err := b.session.ChannelMessageSend(config.SummaryChannelID, sanctionMessage(memberID, count, action)); err != nil {
		log.Printf("Sanction applied but announcement failed for member %s in guild %s: %v", memberID, guildID, err)
	}

	return nil
}

// MembersWithRole lists the guild members carrying a role, paging through
// the member list
func (b *Bot) MembersWithRole(ctx context.Context, guildID, roleID string) ([]string, error) {
	var memberIDs []string
	after := ""

	for {
		members, err := b.session.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, fmt.Errorf("failed to list members for guild %s: %w", guildID, err)
		}

		if len(members) == 0 {
			break
		}

		for _, member := range members {
			for _, r := range member.Roles {
				if r == roleID {
					memberIDs = append(memberIDs, member.User.ID)
					break
				}
			}
		}

		after = members[len(members)-1].User.ID
		if len(members) < 1000 {
			break
		}
	}

	return memberIDs, nil
}

// HasRole reports whether a member carries a role
func (b *Bot) HasRole(ctx context.Context, guildID, memberID, roleID string) (bool, error) {
	member, err := b.session.GuildMember(guildID, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch member %s in guild %s: %w", memberID, guildID, err)
	}

	for _, r := range member.Roles {
		if r == roleID {
			return true, nil
		}
	}

	return false, nil
}
