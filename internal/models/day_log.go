package models

// DaySessions holds one day's check-ins grouped by session.
// Every session has an entry; sessions with no check-ins hold an empty
// slice, never nil. Slice order is check-in order and drives the
// numbering on the attendance board.
type DaySessions struct {
	// Date is the calendar day this sheet covers (2006-01-02)
	Date string

	// Sessions maps each session to its ordered check-ins
	Sessions map[Session][]*CheckIn
}

// NewDaySessions creates an empty sheet for a date with every session present
func NewDaySessions(date string) *DaySessions {
	sessions := make(map[Session][]*CheckIn, len(AllSessions()))
	for _, s := range AllSessions() {
		sessions[s] = []*CheckIn{}
	}

	return &DaySessions{
		Date:     date,
		Sessions: sessions,
	}
}

// Total returns the number of check-ins across all sessions
func (d *DaySessions) Total() int {
	total := 0
	for _, records := range d.Sessions {
		total += len(records)
	}
	return total
}

// WeeklyAggregate maps member ID to the number of sessions attended in a week
type WeeklyAggregate map[string]int

// TotalSessions returns the sum of all members' counts
func (a WeeklyAggregate) TotalSessions() int {
	total := 0
	for _, count := range a {
		total += count
	}
	return total
}
