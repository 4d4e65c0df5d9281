package models

import (
	"time"
)

// DefaultQuotaThreshold is the minimum weekly session count a member must
// reach before being flagged, when a guild has not set its own threshold
const DefaultQuotaThreshold = 5

// GuildConfig holds per-guild settings for the attendance bot
type GuildConfig struct {
	// GuildID is the Discord server/guild these settings belong to
	GuildID string

	// BoardChannelID is where session-open boards are posted
	BoardChannelID string

	// HistoryChannelID receives the closed day's sheet at midnight
	HistoryChannelID string

	// SummaryChannelID receives the weekly summary and sanction notices
	SummaryChannelID string

	// EligibleRoleID gates check-in when set; empty means everyone may check in
	EligibleRoleID string

	// SanctionPrimaryRoleID is the first-tier marker for under-quota members
	SanctionPrimaryRoleID string

	// SanctionSecondaryRoleID is the escalation tier for repeat offenders
	SanctionSecondaryRoleID string

	// QuotaThreshold is the minimum weekly session count; 0 means use the default
	QuotaThreshold int

	// UpdatedAt is when the settings were last changed
	UpdatedAt time.Time
}

// Threshold returns the configured quota threshold, falling back to the default
func (c *GuildConfig) Threshold() int {
	if c.QuotaThreshold > 0 {
		return c.QuotaThreshold
	}
	return DefaultQuotaThreshold
}
