package guildconfig

import (
	"github.com/lamdn/attendbot/internal/models"
)

// SaveInput contains parameters for storing guild settings
type SaveInput struct {
	// Config is the settings to store
	Config *models.GuildConfig
}

// GetInput contains parameters for retrieving guild settings
type GetInput struct {
	GuildID string
}

// GetOutput contains a guild's settings
type GetOutput struct {
	// Config is never nil; an unconfigured guild yields a zero-value
	// config carrying only the guild ID
	Config *models.GuildConfig
}

// ListGuildsOutput contains the guilds with stored settings
type ListGuildsOutput struct {
	GuildIDs []string
}
