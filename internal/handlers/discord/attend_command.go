package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lamdn/attendbot/internal/models"
	"github.com/lamdn/attendbot/internal/repositories/guildconfig"
	"github.com/lamdn/attendbot/internal/services/attendance"
)

// AttendCommand handles the /attend command
type AttendCommand struct {
	BaseCommand
	bot *Bot
}

// NewAttendCommand creates a new attend command handler
func NewAttendCommand(bot *Bot) *AttendCommand {
	return &AttendCommand{
		BaseCommand: BaseCommand{
			Name:        "attend",
			Description: "Attendance tracking commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "board",
					Description: "Post today's attendance board with a check-in button",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "Channel to post session boards to; omit to reply here",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history-channel",
					Description: "Set the channel that receives each closed day's sheet",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "History channel",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "summary-channel",
					Description: "Set the weekly summary channel and the check-in role gate",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "Summary channel",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "eligible-role",
							Description: "Role required to check in and counted in the weekly quota",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "sanction-roles",
					Description: "Set the two sanction tier roles",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "primary",
							Description: "Role given on the first missed quota",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "secondary",
							Description: "Role given when quota is missed again",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "threshold",
					Description: "Set the minimum weekly session count",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "sessions",
							Description: "Minimum sessions per week before sanctions apply",
							Required:    true,
							MinValue:    &thresholdMinValue,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end-day",
					Description: "Close out today's sheet now and post it to the history channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "week-summary",
					Description: "Run the weekly summary now, without purging",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "purge",
					Description: "Delete attendance days before a cutoff date",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "before",
							Description: "Cutoff date (YYYY-MM-DD); days strictly before it are deleted",
							Required:    true,
						},
					},
				},
			},
		},
		bot: bot,
	}
}

var thresholdMinValue = float64(1)

// Handle processes a Discord interaction for the attend command
func (c *AttendCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	// Every subcommand is admin-only
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		return RespondWithEphemeralMessage(s, i, "You need administrator permission to use this command.")
	}

	sub := data.Options[0]

	var err error
	switch sub.Name {
	case "board":
		err = c.handleBoard(s, i, sub.Options)
	case "history-channel":
		err = c.handleHistoryChannel(s, i, sub.Options)
	case "summary-channel":
		err = c.handleSummaryChannel(s, i, sub.Options)
	case "sanction-roles":
		err = c.handleSanctionRoles(s, i, sub.Options)
	case "threshold":
		err = c.handleThreshold(s, i, sub.Options)
	case "end-day":
		err = c.handleEndDay(s, i)
	case "week-summary":
		err = c.handleWeekSummary(s, i)
	case "purge":
		err = c.handlePurge(s, i, sub.Options)
	default:
		err = errors.New("unknown subcommand")
	}

	return err
}

// updateConfig applies a mutation to a guild's stored settings
func (c *AttendCommand) updateConfig(ctx context.Context, guildID string, mutate func(*models.GuildConfig)) error {
	output, err := c.bot.configs.Get(ctx, &guildconfig.GetInput{GuildID: guildID})
	if err != nil {
		return fmt.Errorf("failed to load guild config: %w", err)
	}

	config := output.Config
	mutate(config)
	config.UpdatedAt = c.bot.clock.Now()

	if err := c.bot.configs.Save(ctx, &guildconfig.SaveInput{Config: config}); err != nil {
		return fmt.Errorf("failed to save guild config: %w", err)
	}

	return nil
}

// handleBoard posts today's board. With a channel argument the channel is
// saved as the guild's board channel and the board is posted there; without
// one the board is posted as the command reply.
func (c *AttendCommand) handleBoard(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()
	guildID := i.GuildID

	sheet, err := c.bot.attendance.GetDaySheet(ctx, &attendance.GetDaySheetInput{GuildID: guildID})
	if err != nil {
		log.Printf("Error loading day sheet for guild %s: %v", guildID, err)
		return RespondWithError(s, i, "Could not load today's sheet. Try again in a moment.")
	}

	embed := buildBoardEmbed(sheet.Day, c.bot.policy.Windows())
	components := buildCheckInComponents()

	if len(options) == 0 {
		return RespondWithEmbedAndComponents(s, i, embed, components)
	}

	channel := options[0].ChannelValue(s)
	if err := c.updateConfig(ctx, guildID, func(config *models.GuildConfig) {
		config.BoardChannelID = channel.ID
	}); err != nil {
		log.Printf("Error saving board channel for guild %s: %v", guildID, err)
		return RespondWithError(s, i, "Could not save the board channel. Try again in a moment.")
	}

	_, err = s.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		log.Printf("Error posting board to channel %s: %v", channel.ID, err)
		return RespondWithError(s, i, "Saved the board channel, but posting the board failed.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Board posted to <#%s>. Session boards will be posted there.", channel.ID))
}

// handleHistoryChannel sets where closed day sheets are posted
func (c *AttendCommand) handleHistoryChannel(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()
	channel := options[0].ChannelValue(s)

	if err := c.updateConfig(ctx, i.GuildID, func(config *models.GuildConfig) {
		config.HistoryChannelID = channel.ID
	}); err != nil {
		log.Printf("Error saving history channel for guild %s: %v", i.GuildID, err)
		return RespondWithError(s, i, "Could not save the history channel. Try again in a moment.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Daily history will be posted to <#%s>.", channel.ID))
}

// handleSummaryChannel sets the weekly summary channel and the eligible role
func (c *AttendCommand) handleSummaryChannel(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()
	channel := options[0].ChannelValue(s)
	role := options[1].RoleValue(s, i.GuildID)

	if err := c.updateConfig(ctx, i.GuildID, func(config *models.GuildConfig) {
		config.SummaryChannelID = channel.ID
		config.EligibleRoleID = role.ID
	}); err != nil {
		log.Printf("Error saving summary channel for guild %s: %v", i.GuildID, err)
		return RespondWithError(s, i, "Could not save the summary settings. Try again in a moment.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Weekly summaries will be posted to <#%s>. Check-in is now limited to members with <@&%s>.",
		channel.ID, role.ID))
}

// handleSanctionRoles sets the two sanction tier roles
func (c *AttendCommand) handleSanctionRoles(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()
	primary := options[0].RoleValue(s, i.GuildID)
	secondary := options[1].RoleValue(s, i.GuildID)

	if primary.ID == secondary.ID {
		return RespondWithEphemeralMessage(s, i, "The primary and secondary sanction roles must be different.")
	}

	if err := c.updateConfig(ctx, i.GuildID, func(config *models.GuildConfig) {
		config.SanctionPrimaryRoleID = primary.ID
		config.SanctionSecondaryRoleID = secondary.ID
	}); err != nil {
		log.Printf("Error saving sanction roles for guild %s: %v", i.GuildID, err)
		return RespondWithError(s, i, "Could not save the sanction roles. Try again in a moment.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Sanction roles set: <@&%s> on the first miss, <@&%s> on a repeat.", primary.ID, secondary.ID))
}

// handleThreshold sets the weekly quota threshold
func (c *AttendCommand) handleThreshold(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()
	threshold := int(options[0].IntValue())

	if err := c.updateConfig(ctx, i.GuildID, func(config *models.GuildConfig) {
		config.QuotaThreshold = threshold
	}); err != nil {
		log.Printf("Error saving threshold for guild %s: %v", i.GuildID, err)
		return RespondWithError(s, i, "Could not save the threshold. Try again in a moment.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Weekly quota set to %d sessions.", threshold))
}

// handleEndDay closes out today's sheet immediately and posts it to the
// guild's history channel
func (c *AttendCommand) handleEndDay(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	guildID := i.GuildID
	today := models.DateKey(c.bot.clock.Now())

	output, err := c.bot.attendance.RollDay(ctx, &attendance.RollDayInput{
		GuildID: guildID,
		Date:    today,
	})
	if err != nil {
		log.Printf("Error rolling day for guild %s: %v", guildID, err)
		return RespondWithError(s, i, "Could not close out today. Try again in a moment.")
	}

	if output.AlreadyRolled {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Today (%s) was already closed out.", today))
	}

	if err := c.bot.DayRolled(ctx, guildID, output.Day); err != nil {
		if errors.Is(err, ErrHistoryChannelNotConfigured) {
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
				"Closed out %s with %d check-ins, but no history channel is set. %v",
				today, output.Day.Total(), err))
		}
		log.Printf("Error posting history for guild %s: %v", guildID, err)
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
			"Closed out %s with %d check-ins, but posting to the history channel failed.",
			today, output.Day.Total()))
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Closed out %s with %d check-ins and posted the sheet to the history channel.",
		today, output.Day.Total()))
}

// handleWeekSummary runs the weekly summary immediately. Manual runs never
// purge; the scheduled Monday run handles that.
func (c *AttendCommand) handleWeekSummary(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if c.bot.runner == nil {
		return RespondWithError(s, i, "The scheduler is not wired up yet. Try again in a moment.")
	}

	now := c.bot.clock.Now()
	go c.bot.runner.RunWeeklySummary(context.Background(), now, false)

	return RespondWithEphemeralMessage(s, i, "Running the weekly summary now. Results go to the summary channel.")
}

// handlePurge deletes attendance days strictly before a cutoff date
func (c *AttendCommand) handlePurge(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()
	cutoff := options[0].StringValue()

	if _, err := time.Parse("2006-01-02", cutoff); err != nil {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("%q is not a valid date. Use YYYY-MM-DD.", cutoff))
	}

	output, err := c.bot.attendance.PurgeBefore(ctx, &attendance.PurgeBeforeInput{
		GuildID:    i.GuildID,
		CutoffDate: cutoff,
	})
	if err != nil {
		log.Printf("Error purging days for guild %s: %v", i.GuildID, err)
		return RespondWithError(s, i, "Could not purge. Try again in a moment.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Purged %d days before %s.", output.DaysPurged, cutoff))
}
