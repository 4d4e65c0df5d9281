package discord

// Error is a custom error type for Discord handler errors
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Define errors
const (
	// ErrBoardChannelNotConfigured means session-open boards have nowhere to go
	ErrBoardChannelNotConfigured Error = "no board channel configured; run /attend board first"

	// ErrHistoryChannelNotConfigured means the midnight history post has nowhere to go
	ErrHistoryChannelNotConfigured Error = "no history channel configured; run /attend history-channel first"

	// ErrSummaryChannelNotConfigured means the weekly summary has nowhere to go
	ErrSummaryChannelNotConfigured Error = "no summary channel configured; run /attend summary-channel first"

	// ErrSanctionRolesNotConfigured means sanction decisions cannot be applied
	ErrSanctionRolesNotConfigured Error = "no sanction roles configured; run /attend sanction-roles first"
)
