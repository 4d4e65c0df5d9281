package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lamdn/attendbot/internal/common/clock"
	"github.com/lamdn/attendbot/internal/repositories/guildconfig"
	"github.com/lamdn/attendbot/internal/services/attendance"
	"github.com/lamdn/attendbot/internal/sessions"
)

// Runner exposes the scheduled work an admin can kick off by hand.
// The scheduler's job set implements it; the bot only delegates.
type Runner interface {
	RunWeeklySummary(ctx context.Context, now time.Time, purge bool)
}

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	attendance attendance.Service
	configs    guildconfig.Repository
	policy     *sessions.Policy
	clock      clock.Clock
	runner     Runner
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Attendance service
	Attendance attendance.Service

	// Guild settings repository
	Configs guildconfig.Repository

	// Session policy, for rendering window labels
	Policy *sessions.Policy

	// Clock, for timestamping manual runs
	Clock clock.Clock
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
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

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		attendance: cfg.Attendance,
		configs:    cfg.Configs,
		policy:     cfg.Policy,
		clock:      cfg.Clock,
		config:     cfg,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// SetRunner wires the scheduled job set in after construction. The jobs
// need the bot as their notifier, so neither side can be built first.
func (b *Bot) SetRunner(runner Runner) {
	b.runner = runner
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register the attend command
	attendCmd := NewAttendCommand(b)
	if err := b.RegisterCommand(attendCmd); err != nil {
		return fmt.Errorf("failed to register attend command: %w", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, guildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		} else {
			log.Printf("Successfully deleted command %s (ID: %s)", cmdName, cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// Register the command with Discord
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
		log.Printf("Registering command %s for guild %s", cmd.GetName(), guildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and other components
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	switch customID {
	case CheckInButtonID:
		return b.handleCheckInButton(s, i)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// handleCheckInButton records a check-in for the member who clicked the
// board's button, then refreshes the board message in place
func (b *Bot) handleCheckInButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	guildID := i.GuildID
	memberID := i.Member.User.ID

	configOutput, err := b.configs.Get(ctx, &guildconfig.GetInput{GuildID: guildID})
	if err != nil {
		log.Printf("Error loading config for guild %s: %v", guildID, err)
		return RespondWithError(s, i, "Could not load this server's settings. Try again in a moment.")
	}

	// Resolve the role gate here; the service only sees the verdict
	eligible := true
	if roleID := configOutput.Config.EligibleRoleID; roleID != "" {
		eligible = false
		for _, r := range i.Member.Roles {
			if r == roleID {
				eligible = true
				break
			}
		}
	}

	output, err := b.attendance.CheckIn(ctx, &attendance.CheckInInput{
		GuildID:  guildID,
		MemberID: memberID,
		Eligible: eligible,
	})
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrOutOfWindow):
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Check-in is closed right now. Windows: %s", b.windowLabels()))
		case errors.Is(err, attendance.ErrDuplicateCheckIn):
			return RespondWithEphemeralMessage(s, i, "You already checked in for this session.")
		case errors.Is(err, attendance.ErrNotEligible):
			return RespondWithEphemeralMessage(s, i, "You need the attendance role to check in.")
		default:
			log.Printf("Error recording check-in for member %s in guild %s: %v", memberID, guildID, err)
			return RespondWithError(s, i, "Could not record your check-in. Try again in a moment.")
		}
	}

	// Refresh the board the button lives on before acknowledging
	if i.Message != nil {
		b.refreshBoard(s, i.ChannelID, i.Message.ID, guildID)
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Checked in for the %s session at %s.",
		sessionLabel(output.Session), output.Record.DisplayTime))
}

// refreshBoard re-renders a posted board message with today's sheet
func (b *Bot) refreshBoard(s *discordgo.Session, channelID, messageID, guildID string) {
	ctx := context.Background()

	sheet, err := b.attendance.GetDaySheet(ctx, &attendance.GetDaySheetInput{GuildID: guildID})
	if err != nil {
		log.Printf("Error loading day sheet for guild %s: %v", guildID, err)
		return
	}

	embeds := []*discordgo.MessageEmbed{buildBoardEmbed(sheet.Day, b.policy.Windows())}
	components := buildCheckInComponents()

	_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		log.Printf("Error updating board message: %v", err)
	}
}

// windowLabels formats the check-in windows for user-facing messages
func (b *Bot) windowLabels() string {
	labels := ""
	for idx, w := range b.policy.Windows() {
		if idx > 0 {
			labels += ", "
		}
		labels += fmt.Sprintf("%s %s", sessionLabel(w.Session), w.Label())
	}
	return labels
}
