package sessions

import (
	"fmt"
	"time"

	"github.com/lamdn/attendbot/internal/models"
)

// TimeOfDay is a wall-clock point within a day
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// String formats the time as HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Window is one session's daily check-in window. Both bounds are inclusive.
type Window struct {
	Session models.Session
	Open    TimeOfDay
	Close   TimeOfDay
}

// Label formats the window for display, e.g. "12:00 - 16:00"
func (w Window) Label() string {
	return fmt.Sprintf("%s - %s", w.Open, w.Close)
}

// Config for the session policy
type Config struct {
	// Optional window overrides; defaults match the standard noon/evening windows
	Windows []Window
}

// Policy maps a timestamp to the session window it falls in. Windows are
// fixed and guild-independent; they never overlap.
type Policy struct {
	windows []Window
}

// New creates a session policy
func New(cfg *Config) *Policy {
	windows := []Window{
		{Session: models.SessionNoon, Open: TimeOfDay{12, 0}, Close: TimeOfDay{16, 0}},
		{Session: models.SessionEvening, Open: TimeOfDay{18, 0}, Close: TimeOfDay{22, 0}},
	}

	if cfg != nil && len(cfg.Windows) > 0 {
		windows = cfg.Windows
	}

	return &Policy{windows: windows}
}

// Resolve returns the session whose window contains t. The second return is
// false when t falls outside every window, which is the normal
// "attendance rejected" signal rather than an error.
func (p *Policy) Resolve(t time.Time) (models.Session, bool) {
	m := t.Hour()*60 + t.Minute()

	for _, w := range p.windows {
		if m >= w.Open.minutes() && m <= w.Close.minutes() {
			return w.Session, true
		}
	}

	return "", false
}

// Windows returns the configured windows in display order
func (p *Policy) Windows() []Window {
	return p.windows
}

// Window returns the window for a session
func (p *Policy) Window(session models.Session) (Window, bool) {
	for _, w := range p.windows {
		if w.Session == session {
			return w, true
		}
	}
	return Window{}, false
}

// OpeningTimes maps each window's opening HH:MM to its session. The
// scheduler keys its session-open job on these.
func (p *Policy) OpeningTimes() map[string]models.Session {
	openings := make(map[string]models.Session, len(p.windows))
	for _, w := range p.windows {
		openings[w.Open.String()] = w.Session
	}
	return openings
}
