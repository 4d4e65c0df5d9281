package attendance

// Error is a custom error type for attendance-related errors
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Define errors
const (
	// Expected rejections, surfaced to the member rather than logged as faults
	ErrOutOfWindow      Error = "check-in is outside every session window"
	ErrDuplicateCheckIn Error = "member already checked in for this session"
	ErrNotEligible      Error = "member is not eligible to check in"

	ErrNilConfig         Error = "config cannot be nil"
	ErrNilRepository     Error = "attendance repository cannot be nil"
	ErrNilPolicy         Error = "session policy cannot be nil"
	ErrNilClock          Error = "clock cannot be nil"
	ErrNilUUIDGenerator  Error = "UUID generator cannot be nil"
	ErrMissingGuildID    Error = "guild ID cannot be empty"
	ErrMissingMemberID   Error = "member ID cannot be empty"
	ErrMissingDate       Error = "date cannot be empty"
	ErrInvalidDateRange  Error = "week start must not be after week end"
	ErrMissingCutoffDate Error = "cutoff date cannot be empty"
)
