package discord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lamdn/attendbot/internal/models"
	"github.com/lamdn/attendbot/internal/quota"
	"github.com/lamdn/attendbot/internal/sessions"
)

// CheckInButtonID is the custom ID of the attendance board's check-in button.
// The button is stateless: guild and member come from the interaction.
const CheckInButtonID = "attend_checkin"

const emptySessionText = "Nobody has checked in yet"

func sessionLabel(session models.Session) string {
	switch session {
	case models.SessionNoon:
		return "Noon"
	case models.SessionEvening:
		return "Evening"
	default:
		return string(session)
	}
}

// buildBoardEmbed renders a day's attendance sheet: one field per session
// window with numbered check-ins and a daily total footer
func buildBoardEmbed(day *models.DaySessions, windows []sessions.Window) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Attendance",
		Description: fmt.Sprintf("Date: **%s**", day.Date),
		Color:       0x5865f2, // Blurple
	}

	for _, window := range windows {
		records := day.Sessions[window.Session]

		value := emptySessionText
		if len(records) > 0 {
			lines := make([]string, len(records))
			for i, record := range records {
				lines[i] = fmt.Sprintf("**%d.** <@%s> `%s`", i+1, record.MemberID, record.DisplayTime)
			}
			value = strings.Join(lines, "\n")
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (%s)", sessionLabel(window.Session), window.Label()),
			Value:  value,
			Inline: false,
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Today: %d check-ins | one per member per session", day.Total()),
	}

	return embed
}

// buildCheckInComponents returns the action row holding the check-in button
func buildCheckInComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Check in",
					Style:    discordgo.SuccessButton,
					CustomID: CheckInButtonID,
				},
			},
		},
	}
}

// buildSummaryEmbed renders the weekly summary: per-member totals ranked
// by attendance, plus the under-quota list
func buildSummaryEmbed(weekStart, weekEnd string, aggregate, underQuota models.WeeklyAggregate, threshold int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Weekly attendance summary",
		Description: fmt.Sprintf("Week **%s** to **%s**", weekStart, weekEnd),
		Color:       0x5865f2, // Blurple
	}

	totals := "No check-ins recorded this week"
	if len(aggregate) > 0 {
		memberIDs := make([]string, 0, len(aggregate))
		for id := range aggregate {
			memberIDs = append(memberIDs, id)
		}
		sort.Slice(memberIDs, func(i, j int) bool {
			if aggregate[memberIDs[i]] != aggregate[memberIDs[j]] {
				return aggregate[memberIDs[i]] > aggregate[memberIDs[j]]
			}
			return memberIDs[i] < memberIDs[j]
		})

		lines := make([]string, len(memberIDs))
		for i, id := range memberIDs {
			lines[i] = fmt.Sprintf("**%d.** <@%s> - %d sessions", i+1, id, aggregate[id])
		}
		totals = strings.Join(lines, "\n")
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Sessions attended",
		Value:  totals,
		Inline: false,
	})

	flagged := "Everyone made quota"
	if len(underQuota) > 0 {
		memberIDs := make([]string, 0, len(underQuota))
		for id := range underQuota {
			memberIDs = append(memberIDs, id)
		}
		sort.Strings(memberIDs)

		lines := make([]string, len(memberIDs))
		for i, id := range memberIDs {
			lines[i] = fmt.Sprintf("<@%s> - %d of %d sessions", id, underQuota[id], threshold)
		}
		flagged = strings.Join(lines, "\n")
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("Under quota (minimum %d)", threshold),
		Value:  flagged,
		Inline: false,
	})

	return embed
}

// sanctionMessage formats the announcement for one sanction decision
func sanctionMessage(memberID string, count int, action quota.Action) string {
	if action == quota.ActionEscalate {
		return fmt.Sprintf("<@%s> missed quota again (%d sessions) and has been escalated to the secondary sanction", memberID, count)
	}
	return fmt.Sprintf("<@%s> missed quota (%d sessions) and received the primary sanction", memberID, count)
}
