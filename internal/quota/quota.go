package quota

import (
	"github.com/lamdn/attendbot/internal/models"
)

// Action is the sanction decision for an under-quota member
type Action string

const (
	// ActionPromote applies the primary sanction marker
	ActionPromote Action = "promote"

	// ActionEscalate replaces the primary marker with the secondary one
	ActionEscalate Action = "escalate"
)

// Evaluator decides which members fall under the weekly quota and which
// tier of the sanction ladder applies. It never mutates ledger state and
// never touches roles; callers apply the returned decision.
type Evaluator struct {
	defaultThreshold int
}

// Config for the quota evaluator
type Config struct {
	// Optional threshold override; defaults to the standard weekly quota
	DefaultThreshold int
}

// New creates a new quota evaluator
func New(cfg *Config) *Evaluator {
	threshold := models.DefaultQuotaThreshold
	if cfg != nil && cfg.DefaultThreshold > 0 {
		threshold = cfg.DefaultThreshold
	}

	return &Evaluator{defaultThreshold: threshold}
}

// Evaluate returns the members whose weekly count falls below the
// threshold, with their counts. Roster members absent from the aggregate
// count as zero; with a nil roster only members present in the aggregate
// are considered. A threshold of 0 or less uses the default.
func (e *Evaluator) Evaluate(aggregate models.WeeklyAggregate, roster []string, threshold int) models.WeeklyAggregate {
	if threshold <= 0 {
		threshold = e.defaultThreshold
	}

	under := models.WeeklyAggregate{}

	if roster == nil {
		for memberID, count := range aggregate {
			if count < threshold {
				under[memberID] = count
			}
		}
		return under
	}

	for _, memberID := range roster {
		if count := aggregate[memberID]; count < threshold {
			under[memberID] = count
		}
	}

	return under
}

// SanctionAction returns the ladder decision for one member: members
// already carrying the primary marker escalate to the secondary tier,
// everyone else gets the primary marker.
func (e *Evaluator) SanctionAction(alreadySanctioned bool) Action {
	if alreadySanctioned {
		return ActionEscalate
	}
	return ActionPromote
}
